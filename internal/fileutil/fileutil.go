package fileutil

import (
	"errors"
	"io/fs"
	"path"
)

// ErrNotDir is returned when a listing target exists but is not a directory.
var ErrNotDir = errors.New("not a directory")

// SubDirs returns the names of the immediate subdirectories of dir in directory
// order, including symlinks to directories. dir uses slash-separated fs.FS
// paths.
func SubDirs(fsys fs.FS, dir string) ([]string, error) {
	entries, err := readDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if mode, ok := resolvedMode(fsys, dir, entry); ok && mode.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Files returns the names of the regular files directly inside dir in
// directory order, including symlinks to regular files. Nested directories
// are not descended into.
func Files(fsys fs.FS, dir string) ([]string, error) {
	entries, err := readDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if mode, ok := resolvedMode(fsys, dir, entry); ok && mode.IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// resolvedMode returns the entry's type, following a symlink to its target.
// Dangling links report ok=false.
func resolvedMode(fsys fs.FS, dir string, entry fs.DirEntry) (fs.FileMode, bool) {
	mode := entry.Type()
	if mode&fs.ModeSymlink == 0 {
		return mode, true
	}
	info, err := fs.Stat(fsys, path.Join(clean(dir), entry.Name()))
	if err != nil {
		return 0, false
	}
	return info.Mode().Type(), true
}

// IsDir reports whether dir exists in fsys and is a directory.
func IsDir(fsys fs.FS, dir string) bool {
	info, err := fs.Stat(fsys, clean(dir))
	return err == nil && info.IsDir()
}

func readDir(fsys fs.FS, dir string) ([]fs.DirEntry, error) {
	dir = clean(dir)
	info, err := fs.Stat(fsys, dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: ErrNotDir}
	}
	return fs.ReadDir(fsys, dir)
}

func clean(dir string) string {
	if dir == "" {
		return "."
	}
	return path.Clean(dir)
}
