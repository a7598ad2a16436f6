package config

import (
	"fmt"
	"strings"

	"dubmux/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLayout()
	c.normalizeMatching()
	if err := c.normalizeMuxer(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// normalizeLayout trims names but keeps case; directory names and the video
// extension are compared byte for byte.
func (c *Config) normalizeLayout() {
	c.Layout.AudioDir = strings.TrimSpace(c.Layout.AudioDir)
	c.Layout.SubtitlesDir = strings.TrimSpace(c.Layout.SubtitlesDir)
	c.Layout.SignsDir = strings.TrimSpace(c.Layout.SignsDir)
	c.Layout.VideoExt = strings.TrimSpace(c.Layout.VideoExt)
	if c.Layout.VideoExt == "" {
		c.Layout.VideoExt = defaultVideoExt
	}
	if !strings.HasPrefix(c.Layout.VideoExt, ".") {
		c.Layout.VideoExt = "." + c.Layout.VideoExt
	}
}

func (c *Config) normalizeMatching() {
	c.Matching.Strategy = strings.ToLower(strings.TrimSpace(c.Matching.Strategy))
	if c.Matching.Strategy == "" {
		c.Matching.Strategy = defaultStrategy
	}
	c.Matching.AudioGroups = NormalizeGroups(c.Matching.AudioGroups)
	c.Matching.SubtitleGroups = NormalizeGroups(c.Matching.SubtitleGroups)
}

func (c *Config) normalizeMuxer() error {
	c.Muxer.Binary = strings.TrimSpace(c.Muxer.Binary)
	if c.Muxer.Binary == "" {
		c.Muxer.Binary = defaultMuxerBinary
	}
	var err error
	if c.Muxer.PrimaryLanguage, err = normalizeLanguage(c.Muxer.PrimaryLanguage, defaultPrimaryLanguage); err != nil {
		return fmt.Errorf("muxer.primary_language: %w", err)
	}
	if c.Muxer.TrackLanguage, err = normalizeLanguage(c.Muxer.TrackLanguage, defaultTrackLanguage); err != nil {
		return fmt.Errorf("muxer.track_language: %w", err)
	}
	return nil
}

func normalizeLanguage(value, fallback string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return language.Normalize(value)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = normalizeLevel(c.Logging.Level, defaultLogLevel)
	c.Logging.ConsoleLevel = normalizeLevel(c.Logging.ConsoleLevel, defaultConsoleLevel)
	c.Logging.File = strings.TrimSpace(c.Logging.File)
}

func normalizeLevel(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "":
		return fallback
	case "warning":
		return "warn"
	default:
		return value
	}
}

// NormalizeGroups trims names, splits comma lists and drops blanks and
// duplicates while keeping first-seen order. A nil result means no allow-list.
func NormalizeGroups(groups []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(groups))
	for _, entry := range groups {
		for _, name := range strings.Split(entry, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
