package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dubmux/internal/fileutil"
)

// DefaultVideoExt is the suffix a source file needs to count as a video.
const DefaultVideoExt = ".mkv"

// DiscoverVideos lists the regular files directly inside sourceDir whose name
// ends with ext, sorted by name. The comparison is case-sensitive.
func DiscoverVideos(sourceDir, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultVideoExt
	}
	names, err := fileutil.Files(os.DirFS(sourceDir), ".")
	if err != nil {
		return nil, fmt.Errorf("list source directory %s: %w", sourceDir, err)
	}
	videos := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasSuffix(name, ext) {
			videos = append(videos, filepath.Join(sourceDir, name))
		}
	}
	return videos, nil
}

// DefaultDestDir derives the destination from the source directory by
// appending suffix to its cleaned path.
func DefaultDestDir(sourceDir, suffix string) string {
	clean := filepath.Clean(sourceDir)
	if clean == "." {
		abs, err := filepath.Abs(clean)
		if err == nil {
			clean = abs
		}
	}
	return clean + suffix
}
