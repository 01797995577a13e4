package analyzer

import (
	"context"
	"fmt"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
	"github.com/jonesrussell/opinion-pulse/internal/logging"
	"github.com/jonesrussell/opinion-pulse/internal/sentiment"
	"github.com/jonesrussell/opinion-pulse/internal/telemetry"
)

// Analyzer orchestrates the per-post pipeline:
// normalize -> quality filter -> opinion detection -> sentiment scoring.
// It holds no mutable state between posts, so per-post calls are safe to
// run concurrently.
type Analyzer struct {
	normalizer *Normalizer
	filter     *QualityFilter
	opinions   *OpinionDetector
	scorer     *Scorer
	telemetry  *telemetry.Provider
	logger     logging.Logger
}

// Config holds the injected pipeline settings. Defaults live in the config
// package; the analyzer takes everything explicitly so tests can substitute
// fixtures.
type Config struct {
	TargetLanguage string
	MinTextLength  int
	NewsMarkers    []string
	OpinionTerms   []string
	OpinionBand    domain.ThresholdBand
	NonOpinionBand domain.ThresholdBand
}

// Outcome is the per-post result of running the pipeline. Exactly one of
// Rejection and Result is set.
type Outcome struct {
	Post           domain.NormalizedPost   `json:"post"`
	Rejection      *domain.Rejection       `json:"rejection,omitempty"`
	Classification *domain.Classification  `json:"classification,omitempty"`
	Result         *domain.SentimentResult `json:"result,omitempty"`
}

// New creates an analyzer. The telemetry provider may be nil.
func New(
	engine sentiment.Engine,
	cfg Config,
	tp *telemetry.Provider,
	logger logging.Logger,
) (*Analyzer, error) {
	filter, err := NewQualityFilter(FilterConfig{
		TargetLanguage: cfg.TargetLanguage,
		MinTextLength:  cfg.MinTextLength,
		NewsMarkers:    cfg.NewsMarkers,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("build quality filter: %w", err)
	}

	return &Analyzer{
		normalizer: NewNormalizer(),
		filter:     filter,
		opinions:   NewOpinionDetector(cfg.OpinionTerms),
		scorer: NewScorer(engine, ScorerConfig{
			OpinionBand:    cfg.OpinionBand,
			NonOpinionBand: cfg.NonOpinionBand,
		}, logger),
		telemetry: tp,
		logger:    logger,
	}, nil
}

// Analyze runs a single post through the pipeline. It never fails: malformed
// and filtered posts come back with a rejection, everything else with a
// sentiment result.
func (a *Analyzer) Analyze(ctx context.Context, post domain.RawPost) *Outcome {
	if a.telemetry != nil {
		span := a.telemetry.StartSpan(ctx, "analyzer.Analyze")
		defer span.End()
	}

	if err := post.Validate(); err != nil {
		a.logger.Warn("Skipping malformed post",
			logging.String("post_id", post.ID),
			logging.Error(err),
		)
		a.recordRejection(domain.ReasonMalformed)
		return &Outcome{
			Post:      domain.NormalizedPost{RawPost: post},
			Rejection: &domain.Rejection{Reason: domain.ReasonMalformed},
		}
	}

	normalized := a.normalizer.Normalize(post)

	if rejection := a.filter.Evaluate(&normalized); rejection != nil {
		a.recordRejection(rejection.Reason)
		return &Outcome{Post: normalized, Rejection: rejection}
	}

	classification := &domain.Classification{
		HasOpinion: a.opinions.Detect(normalized.CleanText),
		IsNews:     false, // news posts never get past the filter
	}

	result := a.scorer.Score(normalized.ID, normalized.CleanText, classification.HasOpinion)
	if a.telemetry != nil {
		a.telemetry.RecordClassification(string(result.Label))
	}

	a.logger.Debug("Post classified",
		logging.String("post_id", normalized.ID),
		logging.String("label", string(result.Label)),
		logging.Float64("compound", result.CompoundScore),
		logging.Float64("confidence", result.Confidence),
		logging.Bool("has_opinion", result.HasOpinion),
	)

	return &Outcome{
		Post:           normalized,
		Classification: classification,
		Result:         &result,
	}
}

// ClassifyBatch runs every post through the pipeline in input order. The
// pipeline is stateless, so re-running the same input yields an identical
// outcome sequence.
func (a *Analyzer) ClassifyBatch(ctx context.Context, posts []domain.RawPost) []*Outcome {
	outcomes := make([]*Outcome, len(posts))
	for i, post := range posts {
		outcomes[i] = a.Analyze(ctx, post)
	}
	return outcomes
}

// Results extracts the sentiment results from a batch of outcomes,
// preserving order and skipping rejected posts.
func Results(outcomes []*Outcome) []domain.SentimentResult {
	results := make([]domain.SentimentResult, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Result != nil {
			results = append(results, *outcome.Result)
		}
	}
	return results
}

// RejectionCounts tallies rejected posts by reason.
func RejectionCounts(outcomes []*Outcome) map[domain.RejectReason]int {
	counts := make(map[domain.RejectReason]int)
	for _, outcome := range outcomes {
		if outcome.Rejection != nil {
			counts[outcome.Rejection.Reason]++
		}
	}
	return counts
}

func (a *Analyzer) recordRejection(reason domain.RejectReason) {
	if a.telemetry != nil {
		a.telemetry.RecordRejection(string(reason))
	}
}
