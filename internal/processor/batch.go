// Package processor fans batches of posts out across a worker pool and runs
// scheduled analysis passes.
package processor

import (
	"context"
	"sync"
	"time"

	"github.com/jonesrussell/opinion-pulse/internal/analyzer"
	"github.com/jonesrussell/opinion-pulse/internal/domain"
	"github.com/jonesrussell/opinion-pulse/internal/logging"
)

const defaultConcurrency = 10

// BatchProcessor classifies posts in parallel. Posts flow through the
// pipeline independently with no shared mutable state, so the only
// synchronization is collecting results. Output order equals input order.
type BatchProcessor struct {
	analyzer    *analyzer.Analyzer
	concurrency int
	logger      logging.Logger
}

type job struct {
	index int
	post  domain.RawPost
}

// NewBatchProcessor creates a batch processor with the given worker count.
func NewBatchProcessor(a *analyzer.Analyzer, concurrency int, logger logging.Logger) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &BatchProcessor{
		analyzer:    a,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Process classifies every post in the batch and returns outcomes in input
// order. Per-post failures surface as rejections in the outcome, never as
// an aborted batch.
func (b *BatchProcessor) Process(ctx context.Context, posts []domain.RawPost) []*analyzer.Outcome {
	if len(posts) == 0 {
		return []*analyzer.Outcome{}
	}

	start := time.Now()
	outcomes := make([]*analyzer.Outcome, len(posts))
	jobs := make(chan job, len(posts))

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go b.worker(ctx, jobs, outcomes, &wg)
	}

	for i, post := range posts {
		jobs <- job{index: i, post: post}
	}
	close(jobs)
	wg.Wait()

	// Workers that stopped early on cancellation leave nil slots; drop
	// them so callers see only completed outcomes, still in input order.
	collected := outcomes[:0]
	for _, outcome := range outcomes {
		if outcome != nil {
			collected = append(collected, outcome)
		}
	}

	b.logger.Info("Batch processing complete",
		logging.Int("batch_size", len(posts)),
		logging.Int("processed", len(collected)),
		logging.Int("concurrency", b.concurrency),
		logging.Duration("duration", time.Since(start)),
	)

	return collected
}

func (b *BatchProcessor) worker(
	ctx context.Context,
	jobs <-chan job,
	outcomes []*analyzer.Outcome,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for j := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		outcomes[j.index] = b.analyzer.Analyze(ctx, j.post)
	}
}
