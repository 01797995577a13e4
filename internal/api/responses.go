package api

import (
	"time"

	"github.com/jonesrussell/opinion-pulse/internal/analyzer"
	"github.com/jonesrussell/opinion-pulse/internal/domain"
)

// AnalyzeRequest asks for a fetch-and-classify run on a subject.
type AnalyzeRequest struct {
	Subject string `json:"subject" binding:"required"`
}

// ClassifyBatchRequest carries caller-supplied posts to classify.
type ClassifyBatchRequest struct {
	Posts []domain.RawPost `json:"posts" binding:"required,min=1,max=500"`
}

// ClassifyBatchResponse returns per-post outcomes plus the batch summary.
type ClassifyBatchResponse struct {
	Outcomes []*analyzer.Outcome    `json:"outcomes"`
	Summary  domain.AnalysisSummary `json:"summary"`
	Total    int                    `json:"total"`
	Analyzed int                    `json:"analyzed"`
	Rejected int                    `json:"rejected"`
}

// RunResponse is the API shape of a persisted analysis run.
type RunResponse struct {
	ID             string                 `json:"id"`
	Subject        string                 `json:"subject"`
	FetchedCount   int                    `json:"fetched_count"`
	AnalyzedCount  int                    `json:"analyzed_count"`
	RejectedCounts map[string]int         `json:"rejected_counts"`
	Summary        domain.AnalysisSummary `json:"summary"`
	CreatedAt      time.Time              `json:"created_at"`
}

func toRunResponse(run *domain.AnalysisRun) RunResponse {
	rejected := make(map[string]int, len(run.RejectedCounts))
	for reason, count := range run.RejectedCounts {
		rejected[string(reason)] = count
	}

	return RunResponse{
		ID:             run.ID,
		Subject:        run.Subject,
		FetchedCount:   run.FetchedCount,
		AnalyzedCount:  run.AnalyzedCount,
		RejectedCounts: rejected,
		Summary:        run.Summary,
		CreatedAt:      run.CreatedAt,
	}
}
