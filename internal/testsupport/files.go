package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 creates an empty file.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := min(int64(chunkSize), remaining)
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// ReleaseTree creates a release folder in a temp dir holding the given
// slash-separated files and returns its path.
func ReleaseTree(t testing.TB, files ...string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "Show")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir release root: %v", err)
	}
	AddFiles(t, root, files...)
	return root
}

// AddFiles creates empty files below root.
func AddFiles(t testing.TB, root string, files ...string) {
	t.Helper()
	for _, name := range files {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(name)), 0)
	}
}
