package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"dubmux/internal/config"
	"dubmux/internal/deps"
	"dubmux/internal/logging"
	"dubmux/internal/matcher"
	"dubmux/internal/muxer"
	"dubmux/internal/pipeline"
)

func runMerge(cmd *cobra.Command, ctx *commandContext, flags *runFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, cfg, flags); err != nil {
		return err
	}
	strategy, err := matcher.ParseStrategy(cfg.Matching.Strategy)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	colorize := shouldColorize(stdout)

	session, err := ctx.openLogSession(cfg, stderr)
	if err != nil {
		return err
	}
	defer session.Close()
	logger := session.Logger

	source := flags.source
	if info, err := os.Stat(source); err != nil || !info.IsDir() {
		return fmt.Errorf("source directory %q not found", source)
	}
	dest := flags.dest
	if strings.TrimSpace(dest) == "" {
		dest = pipeline.DefaultDestDir(source, cfg.Layout.DestSuffix)
	}

	videos, err := pipeline.DiscoverVideos(source, cfg.Layout.VideoExt)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return fmt.Errorf("no %s videos found in %s", cfg.Layout.VideoExt, source)
	}

	logger.Info("dubmux run",
		logging.String("source", source),
		logging.String("dest", dest),
		logging.Int("videos", len(videos)),
		logging.String("strategy", strategy.Name()),
		logging.Bool("check_only", flags.check),
		logging.String("config", ctx.configPath),
	)

	m := matcher.New(source, nil, matcher.Options{
		Strategy: strategy,
		Layout: matcher.Layout{
			AudioDir:    cfg.Layout.AudioDir,
			SubtitleDir: cfg.Layout.SubtitlesDir,
			SignsDir:    cfg.Layout.SignsDir,
		},
		AudioGroups:    cfg.Matching.AudioGroups,
		SubtitleGroups: cfg.Matching.SubtitleGroups,
		Logger:         logger,
	})

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}

	opts := pipeline.Options{
		DestDir:         dest,
		CheckOnly:       flags.check,
		Workers:         cfg.Workflow.Workers,
		PrimaryLanguage: cfg.Muxer.PrimaryLanguage,
		TrackLanguage:   cfg.Muxer.TrackLanguage,
		Logger:          logger,
	}

	if flags.check {
		fmt.Fprintln(stdout, "Check mode: nothing will be written.")
		summary := pipeline.New(m, nil, opts).Run(runCtx, videos)
		renderCheckReport(stdout, summary, muxer.New(muxer.WithBinary(cfg.Muxer.Binary)), colorize)
		return runCtx.Err()
	}

	if status := deps.CheckFFmpeg(runCtx, cfg.Muxer.Binary); !status.Available {
		logging.WarnWithContext(logger, "ffmpeg not available", "dependency_missing",
			logging.String("binary", status.Command),
			logging.String("detail", status.Detail),
			logging.String(logging.FieldErrorHint, "install ffmpeg or set muxer.binary"),
			logging.String(logging.FieldImpact, "every merge will fail"),
		)
	}

	ffmpeg := muxer.New(muxer.WithBinary(cfg.Muxer.Binary), muxer.WithLogger(logger))
	mux := pipeline.NewLockedMuxer(ffmpeg, dest, time.Duration(cfg.Workflow.LockPollMillis)*time.Millisecond, func(path string) {
		fmt.Fprintf(stderr, "Waiting for another dubmux run to release %s\n", path)
		logger.Info("waiting for destination lock", logging.String("lock", path))
	})
	defer func() {
		if err := mux.Release(); err != nil {
			logging.WarnWithContext(logger, "run lock release failed", "lock_release_failed", logging.Error(err))
		}
	}()

	progress := newRunProgress(stdout, stderr, len(videos), colorize)
	opts.Progress = progress.observe
	summary := pipeline.New(m, mux, opts).Run(runCtx, videos)
	progress.finish()

	renderSummary(stdout, summary, dest, colorize)
	if err := runCtx.Err(); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Done.")
	return nil
}

// applyRunFlags layers explicitly set flags over the loaded configuration.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, flags *runFlags) error {
	changed := cmd.Flags().Changed
	if changed("threads") {
		if flags.threads < 1 {
			return fmt.Errorf("--threads must be at least 1, got %d", flags.threads)
		}
		cfg.Workflow.Workers = flags.threads
	}
	if changed("strategy") {
		if _, err := matcher.ParseStrategy(flags.strategy); err != nil {
			return err
		}
		cfg.Matching.Strategy = strings.ToLower(strings.TrimSpace(flags.strategy))
	}
	if changed("audio-groups") {
		cfg.Matching.AudioGroups = config.NormalizeGroups(flags.audioGroups)
	}
	if changed("sub-groups") {
		cfg.Matching.SubtitleGroups = config.NormalizeGroups(flags.subtitleGroups)
	}
	if level := strings.ToLower(strings.TrimSpace(flags.logLevel)); level != "" {
		switch level {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("--log-level: unsupported value %q", flags.logLevel)
		}
	}
	return nil
}

// runProgress reports completed videos: a progress bar when stderr is a
// terminal, otherwise one status line per video on stdout.
type runProgress struct {
	mu       sync.Mutex
	bar      *progressbar.ProgressBar
	out      io.Writer
	colorize bool
}

func newRunProgress(stdout, stderr io.Writer, total int, colorize bool) *runProgress {
	p := &runProgress{out: stdout, colorize: colorize}
	if isTerminal(stderr) {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("Merging"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
		)
	}
	return p
}

func (p *runProgress) observe(outcome pipeline.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Add(1)
		return
	}
	fmt.Fprintln(p.out, renderOutcomeLine(outcome, p.colorize))
}

func (p *runProgress) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
