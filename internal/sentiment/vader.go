package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
)

// VaderEngine scores text with the VADER lexicon, the same engine the
// sentiment thresholds were tuned against.
type VaderEngine struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderEngine builds the VADER analyzer once; scoring is read-only
// afterwards.
func NewVaderEngine() *VaderEngine {
	return &VaderEngine{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns VADER component intensities and the normalized compound
// score in [-1, 1]. Empty or whitespace-only text returns ErrEmptyText.
func (e *VaderEngine) Score(text string) (domain.Scores, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Scores{}, ErrEmptyText
	}

	s := e.analyzer.PolarityScores(text)
	return domain.Scores{
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Compound: s.Compound,
	}, nil
}
