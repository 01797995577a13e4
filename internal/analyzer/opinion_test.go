package analyzer

import (
	"sync"
	"testing"
)

var testOpinionTerms = []string{
	"think", "feel", "believe", "love", "hate", "overrated", "underrated",
	"amazing", "terrible", "best", "worst", "good", "bad",
}

func TestOpinionDetector_Detect(t *testing.T) {
	detector := NewOpinionDetector(testOpinionTerms)

	cases := []struct {
		name string
		text string
		want bool
	}{
		{"plain opinion", "I think she is a great performer", true},
		{"uppercase term", "I LOVE the new album", true},
		{"term at end", "that show was amazing", true},
		{"term with punctuation", "best!", true},
		{"no terms", "the concert starts at eight tonight", false},
		{"term inside word", "an unthinkable turn of events", false},
		{"term as prefix of word", "the tour was badly organised", false},
		{"empty text", "", false},
		{"multiple terms", "I believe this is the worst take ever", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := detector.Detect(tc.text); got != tc.want {
				t.Errorf("Detect(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestOpinionDetector_EmptyTermSet(t *testing.T) {
	detector := NewOpinionDetector(nil)

	if detector.Detect("I think I love this") {
		t.Error("detector with no terms should never match")
	}
}

func TestOpinionDetector_ConcurrentDetect(t *testing.T) {
	detector := NewOpinionDetector(testOpinionTerms)

	// One detector is shared by every batch worker; concurrent matching must
	// not lose hits.
	texts := []string{
		"I think she is a great performer",
		"the concert starts at eight tonight",
		"honestly this tour is overrated",
		"tickets go on sale tomorrow morning",
	}
	want := []bool{true, false, true, false}

	const goroutines = 16
	const iterations = 200

	var wg sync.WaitGroup
	errs := make(chan string, goroutines)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				for j, text := range texts {
					if got := detector.Detect(text); got != want[j] {
						errs <- text
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for text := range errs {
		t.Errorf("concurrent Detect returned the wrong answer for %q", text)
	}
}

func TestOpinionDetector_Deterministic(t *testing.T) {
	detector := NewOpinionDetector(testOpinionTerms)

	text := "honestly I feel this is underrated"
	first := detector.Detect(text)
	for i := 0; i < 10; i++ {
		if detector.Detect(text) != first {
			t.Fatal("Detect is not deterministic for identical input")
		}
	}
}
