package preflight

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"golang.org/x/sys/unix"

	"dubmux/internal/config"
	"dubmux/internal/deps"
	"dubmux/internal/fileutil"
)

// CheckFFmpeg reports whether the muxing binary resolves and which version it is.
func CheckFFmpeg(ctx context.Context, binary string) Result {
	status := deps.CheckFFmpeg(ctx, binary)
	if !status.Available {
		return Result{Name: status.Name, Detail: status.Detail}
	}
	detail := status.Path
	if status.Version != "" {
		detail = fmt.Sprintf("%s (version %s)", status.Path, status.Version)
	}
	if status.Detail != "" {
		detail += "; " + status.Detail
	}
	return Result{Name: status.Name, Passed: true, Detail: detail}
}

// CheckDirectoryAccess verifies path is a directory the current user can
// read, write and traverse.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSourceLayout inspects a release folder: the source must be readable
// and contain videos; class directories are optional but reported with the
// groups they hold.
func CheckSourceLayout(source string, layout config.Layout) []Result {
	fsys := os.DirFS(source)

	names, err := fileutil.Files(fsys, ".")
	if err != nil {
		return []Result{{Name: "Source directory", Detail: fmt.Sprintf("%s (error: %v)", source, err)}}
	}
	if err := unix.Access(source, unix.R_OK|unix.X_OK); err != nil {
		return []Result{{Name: "Source directory", Detail: fmt.Sprintf("%s (error: not readable: %v)", source, err)}}
	}
	videos := 0
	for _, name := range names {
		if strings.HasSuffix(name, layout.VideoExt) {
			videos++
		}
	}
	results := []Result{{
		Name:   "Source directory",
		Passed: videos > 0,
		Detail: fmt.Sprintf("%s (%d %s videos)", source, videos, layout.VideoExt),
	}}

	results = append(results,
		checkClassRoot("Audio groups", fsys, layout.AudioDir, layout.SignsDir),
		checkClassRoot("Subtitle groups", fsys, layout.SubtitlesDir, ""),
	)
	if layout.SignsDir != "" {
		signs := path.Join(layout.AudioDir, layout.SignsDir)
		r := Result{Name: "Signs directory", Optional: true, Passed: fileutil.IsDir(fsys, signs)}
		if r.Passed {
			r.Detail = signs
		} else {
			r.Detail = signs + " (not present)"
		}
		results = append(results, r)
	}
	return results
}

func checkClassRoot(name string, fsys fs.FS, dir, exclude string) Result {
	result := Result{Name: name, Optional: true}
	groups, err := fileutil.SubDirs(fsys, dir)
	if err != nil {
		result.Detail = fmt.Sprintf("%s (not present)", dir)
		return result
	}
	kept := groups[:0]
	for _, g := range groups {
		if g != exclude {
			kept = append(kept, g)
		}
	}
	result.Passed = len(kept) > 0
	if len(kept) == 0 {
		result.Detail = fmt.Sprintf("%s (no group directories)", dir)
		return result
	}
	result.Detail = fmt.Sprintf("%s: %s", dir, strings.Join(kept, ", "))
	return result
}
