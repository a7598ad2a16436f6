package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dubmux/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the muxing tools and, optionally, a release folder layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(out, line)
			}

			results := preflight.RunAll(runCtx, cfg, source)
			for _, r := range results {
				fmt.Fprintln(out, renderCheckLine(r, colorize))
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				noun := "check"
				if len(failed) > 1 {
					noun = "checks"
				}
				return fmt.Errorf("%d required %s failed", len(failed), noun)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&source, "source", "s", "", "Release folder whose layout should be inspected")
	return cmd
}
