package matcher

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"dubmux/internal/fileutil"
	"dubmux/internal/logging"
	"dubmux/internal/media"
)

// ErrKeyUnresolved reports that no episode key could be derived from a video
// filename. The video should be skipped without searching for assets.
var ErrKeyUnresolved = errors.New("episode key unresolved")

// Layout names the class root directories inside the source directory.
type Layout struct {
	AudioDir    string
	SubtitleDir string
	// SignsDir is nested inside AudioDir and holds on-screen text tracks.
	SignsDir string
}

// DefaultLayout returns the directory names used by release groups that ship
// Russian dubs and subtitles alongside the video.
func DefaultLayout() Layout {
	return Layout{
		AudioDir:    "Rus Sound",
		SubtitleDir: "Rus Subs",
		SignsDir:    "надписи",
	}
}

// Options configures a Matcher.
type Options struct {
	Strategy       Strategy
	Layout         Layout
	AudioGroups    []string
	SubtitleGroups []string
	Logger         *slog.Logger
}

// Result lists the assets matched for one video, in enumeration order.
type Result struct {
	Key       media.EpisodeKey
	Audio     []media.Asset
	Subtitles []media.Asset
}

// Empty reports whether neither audio nor subtitles matched.
func (r Result) Empty() bool {
	return len(r.Audio) == 0 && len(r.Subtitles) == 0
}

// Matcher finds the auxiliary assets of a video below a source directory.
type Matcher struct {
	root           string
	fsys           fs.FS
	strategy       Strategy
	layout         Layout
	audioGroups    []string
	subtitleGroups []string
	logger         *slog.Logger
}

// New constructs a matcher for the source directory root. fsys lists files
// relative to root; when nil the host filesystem is used.
func New(root string, fsys fs.FS, opts Options) *Matcher {
	if fsys == nil {
		fsys = os.DirFS(root)
	}
	strategy := opts.Strategy
	if strategy == nil {
		strategy = NumericKey{}
	}
	layout := opts.Layout
	if layout == (Layout{}) {
		layout = DefaultLayout()
	}
	return &Matcher{
		root:           root,
		fsys:           fsys,
		strategy:       strategy,
		layout:         layout,
		audioGroups:    cleanGroups(opts.AudioGroups),
		subtitleGroups: cleanGroups(opts.SubtitleGroups),
		logger:         logging.NewComponentLogger(opts.Logger, "matcher"),
	}
}

// Match resolves the episode key of videoPath and collects matching audio and
// subtitle assets. It returns ErrKeyUnresolved when the strategy cannot derive
// a key; missing group directories are logged and skipped.
func (m *Matcher) Match(videoPath string) (Result, error) {
	name := filepath.Base(videoPath)
	key, ok := m.strategy.VideoKey(name)
	if !ok {
		return Result{}, fmt.Errorf("%s: %w", name, ErrKeyUnresolved)
	}

	result := Result{Key: key}
	result.Audio = m.searchClass(key, media.Audio, m.layout.AudioDir, m.audioGroups)
	result.Audio = append(result.Audio, m.searchSigns(key, media.Audio)...)
	result.Subtitles = m.searchClass(key, media.Subtitle, m.layout.SubtitleDir, m.subtitleGroups)
	result.Subtitles = append(result.Subtitles, m.searchSigns(key, media.Subtitle)...)

	m.logger.Debug("assets matched",
		logging.String("video", name),
		logging.String(logging.FieldEpisodeKey, string(key)),
		logging.String("strategy", m.strategy.Name()),
		logging.Int("audio_count", len(result.Audio)),
		logging.Int("subtitle_count", len(result.Subtitles)),
	)
	return result, nil
}

func (m *Matcher) searchClass(key media.EpisodeKey, class media.Class, classRoot string, allow []string) []media.Asset {
	var assets []media.Asset
	for _, group := range m.groups(class, classRoot, allow) {
		assets = append(assets, m.searchDir(key, class, path.Join(classRoot, group), group)...)
	}
	return assets
}

func (m *Matcher) searchSigns(key media.EpisodeKey, class media.Class) []media.Asset {
	if m.layout.SignsDir == "" {
		return nil
	}
	dir := path.Join(m.layout.AudioDir, m.layout.SignsDir)
	if !fileutil.IsDir(m.fsys, dir) {
		return nil
	}
	return m.searchDir(key, class, dir, path.Base(dir))
}

// groups lists the group directories to search for a class. An explicit
// allow-list is honoured in order; otherwise every immediate subdirectory of
// the class root is a group. The signs directory is never returned here.
func (m *Matcher) groups(class media.Class, classRoot string, allow []string) []string {
	if len(allow) > 0 {
		groups := make([]string, 0, len(allow))
		for _, name := range allow {
			if m.isSignsDir(classRoot, name) {
				continue
			}
			if !fileutil.IsDir(m.fsys, path.Join(classRoot, name)) {
				logging.WarnWithContext(m.logger, "group directory not found", "group_missing",
					logging.String("group", name),
					logging.String("class", class.String()),
					logging.String("dir", m.hostPath(path.Join(classRoot, name))),
					logging.String(logging.FieldErrorHint, "check the group name or drop it from the allow-list"),
					logging.String(logging.FieldImpact, "group skipped; remaining groups still searched"),
				)
				continue
			}
			groups = append(groups, name)
		}
		return groups
	}

	dirs, err := fileutil.SubDirs(m.fsys, classRoot)
	if err != nil {
		hint := "check the source directory layout"
		if !errors.Is(err, fs.ErrNotExist) {
			hint = "check directory permissions"
		}
		logging.WarnWithContext(m.logger, "class directory unavailable", "class_root_missing",
			logging.String("class", class.String()),
			logging.String("dir", m.hostPath(classRoot)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hint),
			logging.String(logging.FieldImpact, "no "+class.String()+" assets will be matched"),
		)
		return nil
	}
	groups := dirs[:0]
	for _, name := range dirs {
		if m.isSignsDir(classRoot, name) {
			continue
		}
		groups = append(groups, name)
	}
	return groups
}

func (m *Matcher) searchDir(key media.EpisodeKey, class media.Class, dir, group string) []media.Asset {
	files, err := fileutil.Files(m.fsys, dir)
	if err != nil {
		logging.WarnWithContext(m.logger, "group directory unreadable", "group_unreadable",
			logging.String("group", group),
			logging.String("dir", m.hostPath(dir)),
			logging.Error(err),
			logging.String(logging.FieldImpact, "group skipped; remaining groups still searched"),
		)
		return nil
	}
	var assets []media.Asset
	for _, name := range files {
		if !m.strategy.Matches(key, name, class) {
			continue
		}
		asset := media.Asset{
			Path:  m.hostPath(path.Join(dir, name)),
			Class: class,
			Key:   key,
			Group: group,
		}
		m.logger.Debug("asset found",
			logging.String("class", class.String()),
			logging.String("group", group),
			logging.String("path", asset.Path),
		)
		assets = append(assets, asset)
	}
	return assets
}

func (m *Matcher) isSignsDir(classRoot, name string) bool {
	return m.layout.SignsDir != "" && classRoot == m.layout.AudioDir && name == m.layout.SignsDir
}

func (m *Matcher) hostPath(rel string) string {
	return filepath.Join(m.root, filepath.FromSlash(rel))
}

func cleanGroups(groups []string) []string {
	if len(groups) == 0 {
		return nil
	}
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
