package muxer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"dubmux/internal/logging"
	"dubmux/internal/muxplan"
)

// DefaultBinary is resolved from PATH when no override is configured.
const DefaultBinary = "ffmpeg"

// stderr beyond this many bytes is dropped from the head.
const maxStderrBytes = 16 << 10

var commandContext = exec.CommandContext

// Error reports a failed ffmpeg run.
type Error struct {
	Output   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("ffmpeg %s: %v", filepath.Base(e.Output), e.Err)
	if e.ExitCode > 0 {
		msg = fmt.Sprintf("ffmpeg %s: exit status %d", filepath.Base(e.Output), e.ExitCode)
	}
	if e.Stderr != "" {
		msg += ": " + e.LastLine()
	}
	return msg
}

// LastLine returns the final non-empty stderr line, which is where ffmpeg
// reports the failing input.
func (e *Error) LastLine() string {
	s := strings.TrimSpace(e.Stderr)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Option configures the FFmpeg runner.
type Option func(*FFmpeg)

// WithBinary overrides the ffmpeg executable.
func WithBinary(binary string) Option {
	return func(f *FFmpeg) {
		if b := strings.TrimSpace(binary); b != "" {
			f.binary = b
		}
	}
}

// WithLogger sets the logging destination.
func WithLogger(logger *slog.Logger) Option {
	return func(f *FFmpeg) {
		f.logger = logging.NewComponentLogger(logger, "muxer")
	}
}

// FFmpeg executes mux plans with the ffmpeg CLI.
type FFmpeg struct {
	binary string
	logger *slog.Logger
}

// New constructs an FFmpeg runner.
func New(opts ...Option) *FFmpeg {
	f := &FFmpeg{binary: DefaultBinary, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Command renders the full command line for display.
func (f *FFmpeg) Command(plan muxplan.Plan) []string {
	return append([]string{f.binary}, plan.Args()...)
}

// Mux runs ffmpeg for plan and waits for it to exit. The output's parent
// directory is created first; an existing output file is overwritten.
func (f *FFmpeg) Mux(ctx context.Context, plan muxplan.Plan) error {
	if strings.TrimSpace(plan.Output) == "" {
		return errors.New("mux: output path required")
	}
	if len(plan.Inputs) == 0 {
		return errors.New("mux: plan has no inputs")
	}
	if err := os.MkdirAll(filepath.Dir(plan.Output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	args := plan.Args()
	f.logger.Debug("starting ffmpeg",
		logging.String("output", plan.Output),
		logging.Int("inputs", len(plan.Inputs)),
		logging.Strings("args", args),
	)

	var stderr bytes.Buffer
	cmd := commandContext(ctx, f.binary, args...) //nolint:gosec
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if err == nil {
		f.logger.Debug("ffmpeg finished",
			logging.String("output", plan.Output),
			logging.Duration("elapsed", time.Since(start)),
		)
		return nil
	}

	muxErr := &Error{
		Output:   plan.Output,
		ExitCode: -1,
		Stderr:   tail(strings.TrimSpace(stderr.String()), maxStderrBytes),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		muxErr.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		muxErr.Err = errors.Join(err, ctxErr)
	}
	return muxErr
}

// tail keeps at most limit bytes from the end of s, starting at a line
// boundary when one exists and never inside a UTF-8 sequence.
func tail(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	start := len(s) - limit
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	cut := s[start:]
	if i := strings.IndexByte(cut, '\n'); i >= 0 && i < len(cut)-1 {
		cut = cut[i+1:]
	}
	return cut
}
