package analyzer

import (
	"github.com/jonesrussell/opinion-pulse/internal/domain"
	"github.com/jonesrussell/opinion-pulse/internal/logging"
	"github.com/jonesrussell/opinion-pulse/internal/sentiment"
)

// Scorer turns clean text into a three-way sentiment label plus confidence.
// The threshold band depends on whether the post expresses an opinion:
// opinion posts get a narrower neutral band because their sentiment is
// expected to be clearer.
type Scorer struct {
	engine         sentiment.Engine
	opinionBand    domain.ThresholdBand
	nonOpinionBand domain.ThresholdBand
	logger         logging.Logger
}

// ScorerConfig holds the injected threshold pairs.
type ScorerConfig struct {
	OpinionBand    domain.ThresholdBand
	NonOpinionBand domain.ThresholdBand
}

// NewScorer creates a scorer over the given engine. Band validity is
// enforced by config validation before any batch runs.
func NewScorer(engine sentiment.Engine, cfg ScorerConfig, logger logging.Logger) *Scorer {
	return &Scorer{
		engine:         engine,
		opinionBand:    cfg.OpinionBand,
		nonOpinionBand: cfg.NonOpinionBand,
		logger:         logger,
	}
}

// Score classifies cleanText. If the engine cannot score the text the post
// degrades to Neutral with confidence 0; one bad post never aborts a batch.
func (s *Scorer) Score(postID, cleanText string, hasOpinion bool) domain.SentimentResult {
	scores, err := s.engine.Score(cleanText)
	if err != nil {
		s.logger.Warn("Sentiment engine could not score post; degrading to neutral",
			logging.String("post_id", postID),
			logging.Error(err),
		)
		return domain.SentimentResult{
			PostID:     postID,
			Label:      domain.LabelNeutral,
			HasOpinion: hasOpinion,
		}
	}

	band := s.nonOpinionBand
	if hasOpinion {
		band = s.opinionBand
	}

	return domain.SentimentResult{
		PostID:        postID,
		Label:         classify(scores.Compound, band),
		CompoundScore: scores.Compound,
		Confidence:    confidence(scores.Compound, band),
		HasOpinion:    hasOpinion,
	}
}

// classify maps a compound score to exactly one label under the given band.
func classify(compound float64, band domain.ThresholdBand) domain.Label {
	switch {
	case compound >= band.Positive:
		return domain.LabelPositive
	case compound <= band.Negative:
		return domain.LabelNegative
	default:
		return domain.LabelNeutral
	}
}

// confidence maps |compound| to [0, 1], piecewise-linear around the band
// threshold on the score's sign side: 0 at compound 0, 0.5 exactly at the
// threshold, 1 at the extremes. Strictly increasing in |compound|, and a
// narrower band yields higher confidence for the same score.
func confidence(compound float64, band domain.ThresholdBand) float64 {
	magnitude := compound
	threshold := band.Positive
	if compound < 0 {
		magnitude = -compound
		threshold = -band.Negative
	}

	var conf float64
	if magnitude <= threshold {
		conf = 0.5 * magnitude / threshold
	} else {
		conf = 0.5 + 0.5*(magnitude-threshold)/(1-threshold)
	}

	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}
