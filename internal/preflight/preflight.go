package preflight

import (
	"context"
	"strings"

	"dubmux/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Optional failures are reported but do not block a run.
	Optional bool
	Detail   string
}

// RunAll executes the checks that apply to cfg. Source layout checks run
// only when source is non-empty.
func RunAll(ctx context.Context, cfg *config.Config, source string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckFFmpeg(ctx, cfg.Muxer.Binary)}

	if cfg.LogFilePath() != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	if strings.TrimSpace(source) != "" {
		results = append(results, CheckSourceLayout(source, cfg.Layout)...)
	}

	return results
}

// Failed returns the non-optional results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, r)
		}
	}
	return failed
}
