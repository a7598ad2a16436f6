package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"dubmux/internal/logging"
	"dubmux/internal/matcher"
	"dubmux/internal/media"
	"dubmux/internal/muxer"
	"dubmux/internal/muxplan"
)

// Status is the terminal state of one video.
type Status string

const (
	StatusMerged          Status = "merged"
	StatusPlanned         Status = "planned"
	StatusSkippedNoKey    Status = "skipped_no_key"
	StatusSkippedNoAssets Status = "skipped_no_assets"
	StatusFailed          Status = "failed"
)

// Skipped reports whether the video was passed over without running the muxer.
func (s Status) Skipped() bool {
	return s == StatusSkippedNoKey || s == StatusSkippedNoAssets
}

// Matcher finds the auxiliary assets for a video.
type Matcher interface {
	Match(videoPath string) (matcher.Result, error)
}

// Muxer executes a mux plan to completion.
type Muxer interface {
	Mux(ctx context.Context, plan muxplan.Plan) error
}

// Options configures a Pipeline.
type Options struct {
	DestDir   string
	CheckOnly bool
	Workers   int
	// PrimaryLanguage and TrackLanguage are ISO 639-2 codes forwarded to the
	// command builder.
	PrimaryLanguage string
	TrackLanguage   string
	Logger          *slog.Logger
	// Progress is called after each video finishes, from the worker goroutine.
	Progress func(Outcome)
}

// Outcome records what happened to one video.
type Outcome struct {
	Video     string
	Output    string
	Key       media.EpisodeKey
	Status    Status
	Audio     []media.Asset
	Subtitles []media.Asset
	Plan      muxplan.Plan
	Err       error
	Elapsed   time.Duration
}

// Summary aggregates a run.
type Summary struct {
	Outcomes []Outcome
	Elapsed  time.Duration
}

// Count returns how many outcomes ended in status.
func (s Summary) Count(status Status) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Pipeline drives match, plan and mux for a batch of videos.
type Pipeline struct {
	matcher Matcher
	muxer   Muxer
	opts    Options
	logger  *slog.Logger
}

// New constructs a Pipeline. mux may be nil in check-only mode.
func New(m Matcher, mux Muxer, opts Options) *Pipeline {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Pipeline{
		matcher: m,
		muxer:   mux,
		opts:    opts,
		logger:  logging.NewComponentLogger(opts.Logger, "pipeline"),
	}
}

// OutputPath returns where the merged file for video is written.
func (p *Pipeline) OutputPath(video string) string {
	return filepath.Join(p.opts.DestDir, filepath.Base(video))
}

// Process runs one video to completion. Problems with the video are reported
// through the outcome and the log; Process itself never fails.
func (p *Pipeline) Process(ctx context.Context, video string) Outcome {
	start := time.Now()
	outcome := Outcome{Video: video, Output: p.OutputPath(video)}
	logger := p.logger.With(logging.Video(video))

	finish := func(status Status) Outcome {
		outcome.Status = status
		outcome.Elapsed = time.Since(start)
		return outcome
	}

	result, err := p.matcher.Match(video)
	if err != nil {
		if errors.Is(err, matcher.ErrKeyUnresolved) {
			logging.WarnWithContext(logger, "episode key unresolved; skipping video", "episode_key_unresolved",
				logging.String(logging.FieldErrorHint, "rename the video so it carries an episode number or use --strategy prefix"),
				logging.String(logging.FieldImpact, "video not merged"),
			)
			outcome.Err = err
			return finish(StatusSkippedNoKey)
		}
		logging.ErrorWithContext(logger, "asset matching failed", "match_failed", logging.Error(err))
		outcome.Err = err
		return finish(StatusFailed)
	}

	outcome.Key = result.Key
	outcome.Audio = result.Audio
	outcome.Subtitles = result.Subtitles
	logger = logger.With(logging.String(logging.FieldEpisodeKey, string(result.Key)))

	outcome.Plan = muxplan.Build(muxplan.Request{
		Video:           video,
		Audio:           result.Audio,
		Subtitles:       result.Subtitles,
		Output:          outcome.Output,
		PrimaryLanguage: p.opts.PrimaryLanguage,
		TrackLanguage:   p.opts.TrackLanguage,
	})

	if p.opts.CheckOnly {
		logger.Info("assets planned",
			logging.Int("audio", len(result.Audio)),
			logging.Int("subtitles", len(result.Subtitles)),
		)
		return finish(StatusPlanned)
	}

	if result.Empty() {
		logging.WarnWithContext(logger, "no audio or subtitles matched; skipping video", "no_assets",
			logging.String(logging.FieldErrorHint, "check group directory names and episode numbering"),
			logging.String(logging.FieldImpact, "video not merged"),
		)
		return finish(StatusSkippedNoAssets)
	}

	if p.muxer == nil {
		outcome.Err = errors.New("muxer not configured")
		logging.ErrorWithContext(logger, "merge failed", "mux_failed", logging.Error(outcome.Err))
		return finish(StatusFailed)
	}

	logger.Info("merge started",
		logging.Int("audio", len(result.Audio)),
		logging.Int("subtitles", len(result.Subtitles)),
		logging.String("output", outcome.Output),
	)
	if err := p.muxer.Mux(ctx, outcome.Plan); err != nil {
		outcome.Err = err
		attrs := []logging.Attr{logging.Error(err), logging.String("output", outcome.Output)}
		var muxErr *muxer.Error
		if errors.As(err, &muxErr) {
			attrs = append(attrs,
				logging.Int("exit_code", muxErr.ExitCode),
				logging.String("stderr", muxErr.Stderr),
			)
		}
		attrs = append(attrs, logging.String(logging.FieldErrorHint, "inspect ffmpeg stderr for the failing input"))
		logging.ErrorWithContext(logger, "merge failed", "mux_failed", attrs...)
		return finish(StatusFailed)
	}

	outcome = finish(StatusMerged)
	logger.Info("merge completed",
		logging.String("output", outcome.Output),
		logging.Duration("elapsed", outcome.Elapsed),
	)
	return outcome
}

// Run processes videos on a bounded worker pool. Outcomes are returned in the
// order of videos regardless of completion order. Videos not yet started when
// ctx ends are recorded as failed with the context error.
func (p *Pipeline) Run(ctx context.Context, videos []string) Summary {
	start := time.Now()
	outcomes := make([]Outcome, len(videos))
	jobs := make(chan int)

	workers := p.opts.Workers
	if workers > len(videos) {
		workers = len(videos)
	}
	p.logger.Info("run started",
		logging.Int("videos", len(videos)),
		logging.Int("workers", workers),
		logging.Bool("check_only", p.opts.CheckOnly),
	)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				var outcome Outcome
				if err := ctx.Err(); err != nil {
					outcome = Outcome{Video: videos[idx], Output: p.OutputPath(videos[idx]), Status: StatusFailed, Err: err}
				} else {
					outcome = p.Process(ctx, videos[idx])
				}
				outcomes[idx] = outcome
				if p.opts.Progress != nil {
					p.opts.Progress(outcome)
				}
			}
		}()
	}

	for idx := range videos {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	summary := Summary{Outcomes: outcomes, Elapsed: time.Since(start)}
	p.logger.Info("run finished",
		logging.Int(string(StatusMerged), summary.Count(StatusMerged)),
		logging.Int(string(StatusPlanned), summary.Count(StatusPlanned)),
		logging.Int("skipped", summary.Count(StatusSkippedNoKey)+summary.Count(StatusSkippedNoAssets)),
		logging.Int(string(StatusFailed), summary.Count(StatusFailed)),
		logging.Duration("elapsed", summary.Elapsed),
	)
	if err := ctx.Err(); err != nil {
		logging.WarnWithContext(p.logger, "run interrupted", "run_interrupted",
			logging.Error(fmt.Errorf("run: %w", err)),
			logging.String(logging.FieldImpact, "remaining videos not processed"),
		)
	}
	return summary
}
