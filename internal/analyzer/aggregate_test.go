package analyzer

import (
	"math"
	"testing"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
)

func results(label domain.Label, confidence float64, n int) []domain.SentimentResult {
	out := make([]domain.SentimentResult, n)
	for i := range out {
		out[i] = domain.SentimentResult{Label: label, Confidence: confidence}
	}
	return out
}

func TestSummarize(t *testing.T) {
	batch := append(results(domain.LabelPositive, 0.8, 5),
		append(results(domain.LabelNegative, 0.6, 3),
			results(domain.LabelNeutral, 0.0, 2)...)...)

	summary := Summarize(batch)

	if summary.Total != 10 {
		t.Fatalf("total = %d, want 10", summary.Total)
	}

	wantCounts := map[domain.Label]int{
		domain.LabelPositive: 5,
		domain.LabelNegative: 3,
		domain.LabelNeutral:  2,
	}
	wantPercent := map[domain.Label]float64{
		domain.LabelPositive: 50,
		domain.LabelNegative: 30,
		domain.LabelNeutral:  20,
	}
	wantConfidence := map[domain.Label]float64{
		domain.LabelPositive: 0.8,
		domain.LabelNegative: 0.6,
		domain.LabelNeutral:  0.0,
	}

	for _, label := range domain.Labels {
		if summary.Counts[label] != wantCounts[label] {
			t.Errorf("count[%s] = %d, want %d", label, summary.Counts[label], wantCounts[label])
		}
		if math.Abs(summary.Percentages[label]-wantPercent[label]) > 1e-9 {
			t.Errorf("percent[%s] = %v, want %v", label, summary.Percentages[label], wantPercent[label])
		}
		if math.Abs(summary.MeanConfidence[label]-wantConfidence[label]) > 1e-9 {
			t.Errorf("mean_confidence[%s] = %v, want %v", label, summary.MeanConfidence[label], wantConfidence[label])
		}
	}
}

func TestSummarize_PercentagesSumTo100(t *testing.T) {
	batch := append(results(domain.LabelPositive, 0.9, 1),
		append(results(domain.LabelNegative, 0.7, 1),
			results(domain.LabelNeutral, 0.1, 1)...)...)

	summary := Summarize(batch)

	var sum float64
	for _, label := range domain.Labels {
		sum += summary.Percentages[label]
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100", sum)
	}
}

func TestSummarize_EmptyBatch(t *testing.T) {
	summary := Summarize(nil)

	if summary.Total != 0 {
		t.Errorf("total = %d, want 0", summary.Total)
	}
	for _, label := range domain.Labels {
		if _, ok := summary.Counts[label]; !ok {
			t.Errorf("count map missing label %s", label)
		}
		if summary.Counts[label] != 0 || summary.Percentages[label] != 0 || summary.MeanConfidence[label] != 0 {
			t.Errorf("label %s not zeroed: %d %v %v",
				label, summary.Counts[label], summary.Percentages[label], summary.MeanConfidence[label])
		}
	}
}

func TestSummarize_MissingLabelsStillPresent(t *testing.T) {
	summary := Summarize(results(domain.LabelPositive, 0.5, 3))

	for _, label := range domain.Labels {
		if _, ok := summary.Percentages[label]; !ok {
			t.Errorf("percentages missing label %s", label)
		}
	}
	if summary.Percentages[domain.LabelPositive] != 100 {
		t.Errorf("positive percent = %v, want 100", summary.Percentages[domain.LabelPositive])
	}
	if summary.MeanConfidence[domain.LabelNegative] != 0 {
		t.Errorf("negative mean confidence = %v, want 0", summary.MeanConfidence[domain.LabelNegative])
	}
}

func TestSummarize_PureRebuild(t *testing.T) {
	batch := results(domain.LabelNegative, 0.4, 4)

	first := Summarize(batch)
	second := Summarize(batch)

	if first.Total != second.Total || first.Counts[domain.LabelNegative] != second.Counts[domain.LabelNegative] {
		t.Error("repeated summarize of the same batch differs")
	}
}
