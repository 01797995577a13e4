// Package sentiment wraps the lexicon-based sentiment engine behind a
// swappable capability so the scorer can be tested with deterministic fakes.
package sentiment

import (
	"errors"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
)

// ErrEmptyText indicates there was nothing left to score after
// normalization.
var ErrEmptyText = errors.New("empty text")

// Engine produces intensity scores for a piece of text. Implementations
// must be pure: same text, same scores, no side effects.
type Engine interface {
	Score(text string) (domain.Scores, error)
}
