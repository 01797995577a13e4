package analyzer

import (
	"strings"
	"testing"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
	"github.com/jonesrussell/opinion-pulse/internal/logging"
)

func newTestFilter(t *testing.T) *QualityFilter {
	t.Helper()
	filter, err := NewQualityFilter(FilterConfig{
		TargetLanguage: "en",
		MinTextLength:  20,
		NewsMarkers:    []string{"BREAKING:", "UPDATE:", "WATCH:", "NEW:", "EXCLUSIVE:", "REPORT:", "JUST IN:"},
	}, logging.Nop())
	if err != nil {
		t.Fatalf("NewQualityFilter: %v", err)
	}
	return filter
}

func normalized(text, lang string, retweet bool) *domain.NormalizedPost {
	return &domain.NormalizedPost{
		RawPost: domain.RawPost{
			ID:        "post-1",
			Text:      text,
			Language:  lang,
			IsRetweet: retweet,
		},
		CleanText: text,
	}
}

func TestQualityFilter_RejectsRetweetAsDuplicate(t *testing.T) {
	filter := newTestFilter(t)

	rejection := filter.Evaluate(normalized("RT @fan: I think she is the best artist alive", "en", true))
	if rejection == nil {
		t.Fatal("expected rejection for retweet")
	}
	if rejection.Reason != domain.ReasonDuplicate {
		t.Errorf("reason = %q, want %q", rejection.Reason, domain.ReasonDuplicate)
	}
}

func TestQualityFilter_RetweetPrecedesOtherRules(t *testing.T) {
	filter := newTestFilter(t)

	// Retweet that would also fail every later rule.
	rejection := filter.Evaluate(normalized("BREAKING: kurz", "de", true))
	if rejection == nil || rejection.Reason != domain.ReasonDuplicate {
		t.Errorf("rejection = %+v, want duplicate", rejection)
	}
}

func TestQualityFilter_RejectsWrongLanguage(t *testing.T) {
	filter := newTestFilter(t)

	cases := []struct {
		lang string
		want domain.RejectReason
	}{
		{"fr", domain.ReasonLanguage},
		{"de", domain.ReasonLanguage},
		{"", domain.ReasonLanguage},
		{"not-a-tag!", domain.ReasonLanguage},
	}
	for _, tc := range cases {
		rejection := filter.Evaluate(normalized("this text is long enough to pass the length rule", tc.lang, false))
		if rejection == nil || rejection.Reason != tc.want {
			t.Errorf("lang %q: rejection = %+v, want %q", tc.lang, rejection, tc.want)
		}
	}
}

func TestQualityFilter_AcceptsRegionalVariant(t *testing.T) {
	filter := newTestFilter(t)

	rejection := filter.Evaluate(normalized("honestly I feel this album is her strongest yet", "en-GB", false))
	if rejection != nil {
		t.Errorf("en-GB post rejected with %q, want pass", rejection.Reason)
	}
}

func TestQualityFilter_RejectsNewsPrefix(t *testing.T) {
	filter := newTestFilter(t)

	cases := []string{
		"BREAKING: singer announces new world tour dates",
		"breaking: singer announces new world tour dates",
		"Just In: the label confirmed the release this morning",
		"UPDATE: venue change announced for the opening show",
		// News wins even when the headline carries opinion terms.
		"EXCLUSIVE: critics think this is her best album yet",
	}
	for _, text := range cases {
		rejection := filter.Evaluate(normalized(text, "en", false))
		if rejection == nil || rejection.Reason != domain.ReasonNews {
			t.Errorf("%q: rejection = %+v, want news", text, rejection)
		}
	}
}

func TestQualityFilter_NewsMarkerMidTextPasses(t *testing.T) {
	filter := newTestFilter(t)

	rejection := filter.Evaluate(normalized("I heard the BREAKING: style headlines are overrated", "en", false))
	if rejection != nil {
		t.Errorf("mid-text marker rejected with %q, want pass", rejection.Reason)
	}
}

func TestQualityFilter_NewsPrecedesTooShort(t *testing.T) {
	filter := newTestFilter(t)

	// Shorter than the minimum length but carrying a news marker.
	rejection := filter.Evaluate(normalized("WATCH: clip", "en", false))
	if rejection == nil || rejection.Reason != domain.ReasonNews {
		t.Errorf("rejection = %+v, want news before too-short", rejection)
	}
}

func TestQualityFilter_RejectsTooShort(t *testing.T) {
	filter := newTestFilter(t)

	rejection := filter.Evaluate(normalized("love her", "en", false))
	if rejection == nil || rejection.Reason != domain.ReasonTooShort {
		t.Errorf("rejection = %+v, want too-short", rejection)
	}

	// Exactly at the minimum passes.
	exact := normalized("12345678901234567890", "en", false)
	if r := filter.Evaluate(exact); r != nil {
		t.Errorf("20-char post rejected with %q, want pass", r.Reason)
	}
}

func TestQualityFilter_TooShortCountsRunesNotBytes(t *testing.T) {
	filter := newTestFilter(t)

	// Ten emoji runes is 40 bytes but still far below the 20-character
	// minimum.
	rejection := filter.Evaluate(normalized("🎸🎸🎸🎸🎸🎸🎸🎸🎸🎸", "en", false))
	if rejection == nil || rejection.Reason != domain.ReasonTooShort {
		t.Errorf("rejection = %+v, want too-short for 10-rune post", rejection)
	}

	// Twenty multibyte runes meets the minimum.
	accents := normalized(strings.Repeat("é", 20), "en", false)
	if r := filter.Evaluate(accents); r != nil {
		t.Errorf("20-rune post rejected with %q, want pass", r.Reason)
	}
}

func TestQualityFilter_PassesCleanPost(t *testing.T) {
	filter := newTestFilter(t)

	rejection := filter.Evaluate(normalized("I think the new record is genuinely her best work", "en", false))
	if rejection != nil {
		t.Errorf("clean post rejected with %q, want pass", rejection.Reason)
	}
}

func TestNewQualityFilter_InvalidLanguage(t *testing.T) {
	_, err := NewQualityFilter(FilterConfig{TargetLanguage: "!!bad"}, logging.Nop())
	if err == nil {
		t.Fatal("expected error for invalid target language")
	}
}
