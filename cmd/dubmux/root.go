package main

import (
	"github.com/spf13/cobra"
)

// runFlags holds the root command's flag values.
type runFlags struct {
	source         string
	dest           string
	check          bool
	threads        int
	audioGroups    []string
	subtitleGroups []string
	strategy       string
	logLevel       string
}

func newRootCommand() *cobra.Command {
	var configFlag string
	flags := &runFlags{}

	ctx := newCommandContext(&configFlag, &flags.logLevel)

	rootCmd := &cobra.Command{
		Use:   "dubmux",
		Short: "Merge dub audio tracks and subtitles into videos",
		Long: `dubmux pairs every video in a release folder with the matching dub audio
(.mka) and subtitle (.ass) files found in per-group directories and merges
them into a new container with ffmpeg, copying all streams without re-encoding.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, ctx, flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	rootCmd.Flags().StringVarP(&flags.source, "source", "s", ".", "Source directory")
	rootCmd.Flags().StringVarP(&flags.dest, "dest", "d", "", "Destination directory (default <source>_converted)")
	rootCmd.Flags().BoolVarP(&flags.check, "check", "c", false, "Only report what would be merged")
	rootCmd.Flags().IntVarP(&flags.threads, "threads", "t", 0, "Videos merged in parallel (default from config)")
	rootCmd.Flags().StringSliceVar(&flags.audioGroups, "audio-groups", nil, "Audio group directories to search, in order")
	rootCmd.Flags().StringSliceVar(&flags.subtitleGroups, "sub-groups", nil, "Subtitle group directories to search, in order")
	rootCmd.Flags().StringVar(&flags.strategy, "strategy", "", "Episode matching strategy: numeric or prefix (default from config)")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd
}
