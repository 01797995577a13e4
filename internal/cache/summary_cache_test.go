package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
)

func newTestCache(t *testing.T) *SummaryCache {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := New(ctx, Config{URL: "localhost:6379", TTL: time.Minute})
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSummaryCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	subject := "test-subject-" + uuid.NewString()
	run := &domain.AnalysisRun{
		ID:            uuid.NewString(),
		Subject:       subject,
		FetchedCount:  5,
		AnalyzedCount: 4,
		RejectedCounts: map[domain.RejectReason]int{
			domain.ReasonTooShort: 1,
		},
		Summary: domain.AnalysisSummary{
			Total:  4,
			Counts: map[domain.Label]int{domain.LabelPositive: 4},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	if err := c.SetLatest(ctx, subject, run); err != nil {
		t.Fatalf("SetLatest: %v", err)
	}

	got, err := c.GetLatest(ctx, subject)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if got == nil {
		t.Fatal("expected cached run, got miss")
	}
	if got.ID != run.ID || got.Subject != subject {
		t.Errorf("got run %+v", got)
	}
	if got.RejectedCounts[domain.ReasonTooShort] != 1 {
		t.Errorf("rejected counts = %+v", got.RejectedCounts)
	}
	if !got.CreatedAt.Equal(run.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
}

func TestSummaryCache_MissReturnsNil(t *testing.T) {
	c := newTestCache(t)

	got, err := c.GetLatest(context.Background(), "never-cached-"+uuid.NewString())
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil on miss, got %+v", got)
	}
}

func TestSummaryCache_SubjectKeyIsCaseInsensitive(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	subject := "Mixed-Case-" + uuid.NewString()
	run := &domain.AnalysisRun{ID: uuid.NewString(), Subject: subject}

	if err := c.SetLatest(ctx, subject, run); err != nil {
		t.Fatalf("SetLatest: %v", err)
	}

	got, err := c.GetLatest(ctx, "mixed-case-"+subject[len("Mixed-Case-"):])
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if got == nil || got.ID != run.ID {
		t.Error("lookup with different casing should hit the same key")
	}
}
