package analyzer

import (
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// OpinionDetector decides whether text expresses a personal opinion via a
// flat keyword-membership check over a configurable term set. No negation
// handling and no stemming.
//
// Terms are matched case-insensitively on word boundaries: both the text and
// the terms are folded and space-delimited before the Aho-Corasick pass, so
// "think" never matches inside "unthinkable".
type OpinionDetector struct {
	matcher *ahocorasick.Matcher
}

// NewOpinionDetector builds the matcher from the injected term set.
func NewOpinionDetector(terms []string) *OpinionDetector {
	padded := make([]string, 0, len(terms))
	for _, term := range terms {
		folded := foldTokens(term)
		if folded == "" {
			continue
		}
		padded = append(padded, " "+folded+" ")
	}

	var matcher *ahocorasick.Matcher
	if len(padded) > 0 {
		matcher = ahocorasick.NewStringMatcher(padded)
	}
	return &OpinionDetector{matcher: matcher}
}

// Detect reports whether cleanText contains at least one opinion term.
func (d *OpinionDetector) Detect(cleanText string) bool {
	if d.matcher == nil {
		return false
	}
	folded := foldTokens(cleanText)
	if folded == "" {
		return false
	}
	// Match mutates matcher state for hit dedup; MatchThreadSafe keeps the
	// detector shareable across batch workers.
	hits := d.matcher.MatchThreadSafe([]byte(" " + folded + " "))
	return len(hits) > 0
}

// foldTokens lowercases s and replaces every non-alphanumeric rune with a
// space, collapsing runs, so token boundaries become single spaces.
func foldTokens(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}
