package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dubmux/internal/config"
	"dubmux/internal/language"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit [layout] if your release folders use different directory names.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file and print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if _, statErr := os.Stat(ctx.configPath); statErr != nil {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, renderTable([]column{{title: "Setting"}, {title: "Value"}}, settingsRows(cfg)))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func settingsRows(cfg *config.Config) [][]string {
	groups := func(names []string) string {
		if len(names) == 0 {
			return "(all)"
		}
		return strings.Join(names, ", ")
	}
	logFile := cfg.LogFilePath()
	if logFile == "" {
		logFile = "(disabled)"
	}
	signs := cfg.Layout.SignsDir
	if signs == "" {
		signs = "(disabled)"
	}
	return [][]string{
		{"layout.audio_dir", cfg.Layout.AudioDir},
		{"layout.subtitles_dir", cfg.Layout.SubtitlesDir},
		{"layout.signs_dir", signs},
		{"layout.video_ext", cfg.Layout.VideoExt},
		{"layout.dest_suffix", cfg.Layout.DestSuffix},
		{"matching.strategy", cfg.Matching.Strategy},
		{"matching.audio_groups", groups(cfg.Matching.AudioGroups)},
		{"matching.subtitle_groups", groups(cfg.Matching.SubtitleGroups)},
		{"muxer.binary", cfg.Muxer.Binary},
		{"muxer.primary_language", languageLabel(cfg.Muxer.PrimaryLanguage)},
		{"muxer.track_language", languageLabel(cfg.Muxer.TrackLanguage)},
		{"workflow.workers", strconv.Itoa(cfg.Workflow.Workers)},
		{"logging.file", logFile},
		{"logging.level", cfg.Logging.Level},
		{"logging.console_level", cfg.Logging.ConsoleLevel},
	}
}

func languageLabel(code string) string {
	return fmt.Sprintf("%s (%s)", code, language.DisplayName(code))
}
