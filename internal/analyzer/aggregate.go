package analyzer

import "github.com/jonesrussell/opinion-pulse/internal/domain"

const percentScale = 100.0

// Summarize folds a finite batch of sentiment results into summary
// statistics. It is a pure function: the summary is rebuilt from scratch on
// every call and an empty batch yields a zeroed summary. Every label appears
// in each map even when its count is zero.
func Summarize(results []domain.SentimentResult) domain.AnalysisSummary {
	summary := domain.AnalysisSummary{
		Total:          len(results),
		Counts:         make(map[domain.Label]int, len(domain.Labels)),
		Percentages:    make(map[domain.Label]float64, len(domain.Labels)),
		MeanConfidence: make(map[domain.Label]float64, len(domain.Labels)),
	}

	confidenceSums := make(map[domain.Label]float64, len(domain.Labels))
	for _, label := range domain.Labels {
		summary.Counts[label] = 0
		summary.Percentages[label] = 0
		summary.MeanConfidence[label] = 0
	}

	for _, result := range results {
		summary.Counts[result.Label]++
		confidenceSums[result.Label] += result.Confidence
	}

	if summary.Total == 0 {
		return summary
	}

	for _, label := range domain.Labels {
		count := summary.Counts[label]
		summary.Percentages[label] = float64(count) / float64(summary.Total) * percentScale
		if count > 0 {
			summary.MeanConfidence[label] = confidenceSums[label] / float64(count)
		}
	}

	return summary
}
