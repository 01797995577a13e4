package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonesrussell/opinion-pulse/internal/analyzer"
	"github.com/jonesrussell/opinion-pulse/internal/domain"
	"github.com/jonesrussell/opinion-pulse/internal/fetch"
	"github.com/jonesrussell/opinion-pulse/internal/logging"
	"github.com/jonesrussell/opinion-pulse/internal/telemetry"
)

// RunStore persists completed analysis runs.
type RunStore interface {
	Create(ctx context.Context, run *domain.AnalysisRun) error
}

// SummaryCache caches the latest run per subject.
type SummaryCache interface {
	SetLatest(ctx context.Context, subject string, run *domain.AnalysisRun) error
}

// Runner periodically fetches posts for the configured subjects, classifies
// them, and persists the resulting run. Aggregation happens strictly after
// the batch completes; partial batches are never summarized.
type Runner struct {
	fetcher   fetch.PostFetcher
	processor *BatchProcessor
	store     RunStore
	cache     SummaryCache
	telemetry *telemetry.Provider
	logger    logging.Logger

	subjects   []string
	fetchLimit int
	interval   time.Duration
	running    bool
	stopChan   chan struct{}
}

// RunnerConfig holds runner settings.
type RunnerConfig struct {
	Subjects   []string
	FetchLimit int
	Interval   time.Duration
}

// NewRunner creates a runner. Store, cache, and telemetry may be nil; the
// runner then only logs its results.
func NewRunner(
	fetcher fetch.PostFetcher,
	processor *BatchProcessor,
	store RunStore,
	cache SummaryCache,
	tp *telemetry.Provider,
	cfg RunnerConfig,
	logger logging.Logger,
) *Runner {
	return &Runner{
		fetcher:    fetcher,
		processor:  processor,
		store:      store,
		cache:      cache,
		telemetry:  tp,
		logger:     logger,
		subjects:   cfg.Subjects,
		fetchLimit: cfg.FetchLimit,
		interval:   cfg.Interval,
		stopChan:   make(chan struct{}),
	}
}

// Start begins the periodic loop.
func (r *Runner) Start(ctx context.Context) error {
	if r.running {
		return errors.New("runner is already running")
	}
	if len(r.subjects) == 0 {
		return errors.New("no subjects configured")
	}

	r.running = true
	r.logger.Info("Runner starting",
		logging.Any("subjects", r.subjects),
		logging.Int("fetch_limit", r.fetchLimit),
		logging.Duration("interval", r.interval),
	)

	go r.loop(ctx)
	return nil
}

// Stop halts the loop. Safe to call once.
func (r *Runner) Stop() {
	if !r.running {
		return
	}
	close(r.stopChan)
	r.running = false
}

func (r *Runner) loop(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.runAll(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Runner stopped: context cancelled")
			return
		case <-r.stopChan:
			r.logger.Info("Runner stopped")
			return
		case <-ticker.C:
			r.runAll(ctx)
		}
	}
}

func (r *Runner) runAll(ctx context.Context) {
	for _, subject := range r.subjects {
		if _, err := r.RunOnce(ctx, subject); err != nil {
			r.logger.Error("Analysis run failed",
				logging.String("subject", subject),
				logging.Error(err),
			)
		}
	}
}

// RunOnce fetches, classifies, summarizes, and persists a single run for
// the subject.
func (r *Runner) RunOnce(ctx context.Context, subject string) (*domain.AnalysisRun, error) {
	start := time.Now()

	posts, err := r.fetcher.FetchRecent(ctx, subject, r.fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch posts for %q: %w", subject, err)
	}
	if r.telemetry != nil {
		r.telemetry.RecordFetch(subject, len(posts))
	}

	outcomes := r.processor.Process(ctx, posts)
	results := analyzer.Results(outcomes)

	run := &domain.AnalysisRun{
		Subject:        subject,
		FetchedCount:   len(posts),
		AnalyzedCount:  len(results),
		RejectedCounts: analyzer.RejectionCounts(outcomes),
		Summary:        analyzer.Summarize(results),
		CreatedAt:      time.Now().UTC(),
	}

	if r.store != nil {
		if err := r.store.Create(ctx, run); err != nil {
			return nil, fmt.Errorf("persist run for %q: %w", subject, err)
		}
	}
	if r.cache != nil {
		if err := r.cache.SetLatest(ctx, subject, run); err != nil {
			// Cache refresh failure is not worth failing the run.
			r.logger.Warn("Failed to refresh summary cache",
				logging.String("subject", subject),
				logging.Error(err),
			)
		}
	}

	if r.telemetry != nil {
		r.telemetry.RecordRun(time.Since(start), len(posts))
	}

	r.logger.Info("Analysis run complete",
		logging.String("subject", subject),
		logging.Int("fetched", run.FetchedCount),
		logging.Int("analyzed", run.AnalyzedCount),
		logging.Duration("duration", time.Since(start)),
	)

	return run, nil
}
