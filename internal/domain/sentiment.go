package domain

// Label is the three-way sentiment classification of a post.
type Label string

// Sentiment labels.
const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// Labels lists all sentiment labels in display order.
var Labels = []Label{LabelPositive, LabelNegative, LabelNeutral}

// Scores holds the component intensities returned by the sentiment engine.
// Compound is a normalized scalar in [-1, 1] summarizing overall polarity.
type Scores struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Compound float64 `json:"compound"`
}

// ThresholdBand defines the neutral region around a zero compound score.
// Compound scores >= Positive map to LabelPositive, <= Negative to
// LabelNegative, everything in between to LabelNeutral.
type ThresholdBand struct {
	Positive float64 `json:"positive" yaml:"positive"`
	Negative float64 `json:"negative" yaml:"negative"`
}

// SentimentResult is the final per-post classification. Immutable once
// produced.
type SentimentResult struct {
	PostID        string  `json:"post_id"`
	Label         Label   `json:"label"`
	CompoundScore float64 `json:"compound_score"`
	Confidence    float64 `json:"confidence"`
	HasOpinion    bool    `json:"has_opinion"`
}

// AnalysisSummary is a pure fold over a finite batch of sentiment results.
// It is always rebuilt from scratch, never incrementally mutated.
type AnalysisSummary struct {
	Total          int               `json:"total"`
	Counts         map[Label]int     `json:"counts"`
	Percentages    map[Label]float64 `json:"percentages"`
	MeanConfidence map[Label]float64 `json:"mean_confidence"`
}
