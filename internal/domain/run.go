package domain

import "time"

// AnalysisRun records one completed fetch-and-classify pass for a subject.
type AnalysisRun struct {
	ID             string               `json:"id"`
	Subject        string               `json:"subject"`
	FetchedCount   int                  `json:"fetched_count"`
	AnalyzedCount  int                  `json:"analyzed_count"`
	RejectedCounts map[RejectReason]int `json:"rejected_counts"`
	Summary        AnalysisSummary      `json:"summary"`
	CreatedAt      time.Time            `json:"created_at"`
}
