package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"dubmux/internal/muxplan"
)

// LockFileName is created in the destination directory while a merge run
// writes into it.
const LockFileName = ".dubmux.lock"

const defaultLockPoll = 250 * time.Millisecond

// RunLock serializes merge runs that target the same destination.
type RunLock struct {
	path string
	lock *flock.Flock
}

// AcquireRunLock creates destDir if needed and blocks until the destination
// lock is held or ctx ends. onWait, when set, is called once if another run
// already holds the lock.
func AcquireRunLock(ctx context.Context, destDir string, poll time.Duration, onWait func(path string)) (*RunLock, error) {
	if poll <= 0 {
		poll = defaultLockPoll
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}
	path := filepath.Join(destDir, LockFileName)
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		if onWait != nil {
			onWait(path)
		}
		ok, err = lock.TryLockContext(ctx, poll)
		if err != nil {
			return nil, fmt.Errorf("acquire run lock: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("acquire run lock: %s still held", path)
		}
	}
	return &RunLock{path: path, lock: lock}, nil
}

// Path returns the lock file location.
func (l *RunLock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks the destination. The lock file itself is left in place.
func (l *RunLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release run lock: %w", err)
	}
	return nil
}

// LockedMuxer takes the destination run lock on the first Mux call and holds
// it until Release. A run that skips every video never touches the
// destination.
type LockedMuxer struct {
	next    Muxer
	destDir string
	poll    time.Duration
	onWait  func(path string)

	once sync.Once
	lock *RunLock
	err  error
}

// NewLockedMuxer wraps next so merges into destDir are serialized with other
// runs. poll and onWait are passed to AcquireRunLock.
func NewLockedMuxer(next Muxer, destDir string, poll time.Duration, onWait func(path string)) *LockedMuxer {
	return &LockedMuxer{next: next, destDir: destDir, poll: poll, onWait: onWait}
}

// Mux acquires the run lock if this is the first call, then delegates. A
// failed acquisition is returned by every later call as well.
func (m *LockedMuxer) Mux(ctx context.Context, plan muxplan.Plan) error {
	m.once.Do(func() {
		m.lock, m.err = AcquireRunLock(ctx, m.destDir, m.poll, m.onWait)
	})
	if m.err != nil {
		return m.err
	}
	return m.next.Mux(ctx, plan)
}

// Held reports whether the run lock was acquired.
func (m *LockedMuxer) Held() bool {
	return m.lock != nil
}

// Release unlocks the destination if the lock was taken.
func (m *LockedMuxer) Release() error {
	return m.lock.Release()
}
