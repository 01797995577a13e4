// Package analyzer implements the opinion-filtering and adaptive sentiment
// classification pipeline: normalize, filter, detect opinion, score,
// aggregate.
package analyzer

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
)

// urlPattern matches URL substrings through the next whitespace. Bare
// www-prefixed links are stripped as well.
var urlPattern = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+`)

// Normalizer strips URLs and collapses whitespace while preserving the
// semantic content of a post. Deterministic and total: empty input yields
// empty output.
type Normalizer struct{}

// NewNormalizer creates a text normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Clean returns the normalized form of text.
func (n *Normalizer) Clean(text string) string {
	withoutURLs := urlPattern.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(withoutURLs), " ")
}

// Normalize derives a NormalizedPost from a raw post.
func (n *Normalizer) Normalize(post domain.RawPost) domain.NormalizedPost {
	return domain.NormalizedPost{
		RawPost:   post,
		CleanText: n.Clean(post.Text),
	}
}
