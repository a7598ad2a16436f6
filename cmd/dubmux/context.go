package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dubmux/internal/config"
	"dubmux/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// openLogSession starts the console and file loggers for one invocation.
// Every record carries the run id.
func (c *commandContext) openLogSession(cfg *config.Config, console io.Writer) (*logging.Session, error) {
	consoleLevel := cfg.Logging.ConsoleLevel
	fileLevel := cfg.Logging.Level
	if c.logLevelFlag != nil {
		if override := strings.TrimSpace(*c.logLevelFlag); override != "" {
			consoleLevel = override
			fileLevel = override
		}
	}

	session, err := logging.Open(logging.Options{
		Level:   consoleLevel,
		Format:  "console",
		Console: console,
		File: logging.FileOptions{
			Path:       cfg.LogFilePath(),
			Level:      fileLevel,
			Format:     cfg.Logging.Format,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		},
		Attrs: []logging.Attr{logging.String(logging.FieldRunID, uuid.NewString())},
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	return session, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
