package config

import (
	"errors"
	"fmt"
	"strings"

	"dubmux/internal/matcher"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLayout(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLayout() error {
	if c.Layout.AudioDir == "" {
		return errors.New("layout.audio_dir must be set")
	}
	if c.Layout.SubtitlesDir == "" {
		return errors.New("layout.subtitles_dir must be set")
	}
	for key, value := range map[string]string{
		"layout.audio_dir":     c.Layout.AudioDir,
		"layout.subtitles_dir": c.Layout.SubtitlesDir,
		"layout.signs_dir":     c.Layout.SignsDir,
	} {
		if strings.ContainsAny(value, `/\`) {
			return fmt.Errorf("%s must be a single directory name, got %q", key, value)
		}
	}
	if c.Layout.AudioDir == c.Layout.SubtitlesDir {
		return errors.New("layout.audio_dir and layout.subtitles_dir must differ")
	}
	if c.Layout.DestSuffix == "" {
		return errors.New("layout.dest_suffix must be set so output never overwrites the source")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if _, err := matcher.ParseStrategy(c.Matching.Strategy); err != nil {
		return fmt.Errorf("matching.strategy: %w", err)
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.Workers < 1 {
		return fmt.Errorf("workflow.workers must be at least 1, got %d", c.Workflow.Workers)
	}
	if c.Workflow.LockPollMillis <= 0 {
		return errors.New("workflow.lock_poll_ms must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	for key, level := range map[string]string{
		"logging.level":         c.Logging.Level,
		"logging.console_level": c.Logging.ConsoleLevel,
	} {
		switch level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("%s: unsupported value %q", key, level)
		}
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging rotation limits must not be negative")
	}
	return nil
}
