package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
	"github.com/jonesrussell/opinion-pulse/internal/logging"
)

// QualityFilter rejects posts that are duplicates, off-language, headline
// style, or too short to carry sentiment. Rules apply in order; the first
// match wins.
type QualityFilter struct {
	targetBase  language.Base
	minLength   int
	newsMarkers []string
	logger      logging.Logger
}

// FilterConfig holds the injected filter settings.
type FilterConfig struct {
	// TargetLanguage is a BCP 47 tag; posts whose base language differs
	// are rejected.
	TargetLanguage string
	// MinTextLength is the minimum clean-text length in characters.
	MinTextLength int
	// NewsMarkers are leading markers identifying headline-style posts,
	// compared case-insensitively.
	NewsMarkers []string
}

// NewQualityFilter creates a filter from the injected configuration.
// The target language must parse; threshold validation happens at startup.
func NewQualityFilter(cfg FilterConfig, logger logging.Logger) (*QualityFilter, error) {
	tag, err := language.Parse(cfg.TargetLanguage)
	if err != nil {
		return nil, fmt.Errorf("parse target language %q: %w", cfg.TargetLanguage, err)
	}
	base, _ := tag.Base()

	markers := make([]string, len(cfg.NewsMarkers))
	for i, m := range cfg.NewsMarkers {
		markers[i] = strings.ToLower(m)
	}

	return &QualityFilter{
		targetBase:  base,
		minLength:   cfg.MinTextLength,
		newsMarkers: markers,
		logger:      logger,
	}, nil
}

// Evaluate returns nil if the post passes, or the rejection that dropped it.
func (f *QualityFilter) Evaluate(post *domain.NormalizedPost) *domain.Rejection {
	if rejection := f.evaluate(post); rejection != nil {
		f.logger.Debug("Post rejected",
			logging.String("post_id", post.ID),
			logging.String("reason", string(rejection.Reason)),
		)
		return rejection
	}
	return nil
}

func (f *QualityFilter) evaluate(post *domain.NormalizedPost) *domain.Rejection {
	if post.IsRetweet {
		return &domain.Rejection{Reason: domain.ReasonDuplicate}
	}
	if !f.languageMatches(post.Language) {
		return &domain.Rejection{Reason: domain.ReasonLanguage}
	}
	if f.isNews(post.CleanText) {
		return &domain.Rejection{Reason: domain.ReasonNews}
	}
	if utf8.RuneCountInString(post.CleanText) < f.minLength {
		return &domain.Rejection{Reason: domain.ReasonTooShort}
	}
	return nil
}

// languageMatches compares the post's declared language against the target
// by base tag, so regional variants ("en-GB") still pass an "en" target.
func (f *QualityFilter) languageMatches(code string) bool {
	if code == "" {
		return false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	return base == f.targetBase
}

func (f *QualityFilter) isNews(cleanText string) bool {
	folded := strings.ToLower(cleanText)
	for _, marker := range f.newsMarkers {
		if strings.HasPrefix(folded, marker) {
			return true
		}
	}
	return false
}
