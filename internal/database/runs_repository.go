package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/opinion-pulse/internal/domain"
)

// ErrRunNotFound indicates no analysis run exists for the given key.
var ErrRunNotFound = errors.New("analysis run not found")

// RunsRepository handles persistence of analysis runs.
type RunsRepository struct {
	db *sqlx.DB
}

// NewRunsRepository creates a runs repository.
func NewRunsRepository(db *sqlx.DB) *RunsRepository {
	return &RunsRepository{db: db}
}

// OverallStats aggregates across all stored runs.
type OverallStats struct {
	TotalRuns          int     `json:"total_runs" db:"total_runs"`
	TotalPostsAnalyzed int     `json:"total_posts_analyzed" db:"total_posts_analyzed"`
	AvgPositivePct     float64 `json:"avg_positive_pct" db:"avg_positive_pct"`
	AvgNegativePct     float64 `json:"avg_negative_pct" db:"avg_negative_pct"`
	AvgNeutralPct      float64 `json:"avg_neutral_pct" db:"avg_neutral_pct"`
}

// Create inserts a run, assigning an ID when the run has none.
func (r *RunsRepository) Create(ctx context.Context, run *domain.AnalysisRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	rejected, err := json.Marshal(run.RejectedCounts)
	if err != nil {
		return fmt.Errorf("marshal rejected counts: %w", err)
	}

	query := `
		INSERT INTO analysis_runs (
			id, subject, fetched_count, analyzed_count, rejected_counts,
			positive_count, negative_count, neutral_count,
			positive_pct, negative_pct, neutral_pct,
			positive_mean_confidence, negative_mean_confidence, neutral_mean_confidence
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`

	s := run.Summary
	err = r.db.QueryRowContext(
		ctx,
		query,
		run.ID,
		run.Subject,
		run.FetchedCount,
		run.AnalyzedCount,
		rejected,
		s.Counts[domain.LabelPositive],
		s.Counts[domain.LabelNegative],
		s.Counts[domain.LabelNeutral],
		s.Percentages[domain.LabelPositive],
		s.Percentages[domain.LabelNegative],
		s.Percentages[domain.LabelNeutral],
		s.MeanConfidence[domain.LabelPositive],
		s.MeanConfidence[domain.LabelNegative],
		s.MeanConfidence[domain.LabelNeutral],
	).Scan(&run.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert analysis run: %w", err)
	}
	return nil
}

// GetByID retrieves a single run.
func (r *RunsRepository) GetByID(ctx context.Context, id string) (*domain.AnalysisRun, error) {
	row := r.db.QueryRowContext(ctx, selectRunQuery+" WHERE id = $1", id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("get analysis run: %w", err)
	}
	return run, nil
}

// GetLatestBySubject retrieves the most recent run for a subject.
func (r *RunsRepository) GetLatestBySubject(ctx context.Context, subject string) (*domain.AnalysisRun, error) {
	row := r.db.QueryRowContext(
		ctx,
		selectRunQuery+" WHERE subject = $1 ORDER BY created_at DESC LIMIT 1",
		subject,
	)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: subject %s", ErrRunNotFound, subject)
		}
		return nil, fmt.Errorf("get latest analysis run: %w", err)
	}
	return run, nil
}

// ListBySubject retrieves recent runs for a subject, newest first.
func (r *RunsRepository) ListBySubject(ctx context.Context, subject string, limit int) ([]*domain.AnalysisRun, error) {
	rows, err := r.db.QueryContext(
		ctx,
		selectRunQuery+" WHERE subject = $1 ORDER BY created_at DESC LIMIT $2",
		subject, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.AnalysisRun
	for rows.Next() {
		run, scanErr := scanRun(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan analysis run: %w", scanErr)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analysis runs: %w", err)
	}
	return runs, nil
}

// GetStats aggregates statistics across all runs.
func (r *RunsRepository) GetStats(ctx context.Context) (*OverallStats, error) {
	var stats OverallStats
	query := `
		SELECT
			COUNT(*) AS total_runs,
			COALESCE(SUM(analyzed_count), 0) AS total_posts_analyzed,
			COALESCE(AVG(positive_pct), 0) AS avg_positive_pct,
			COALESCE(AVG(negative_pct), 0) AS avg_negative_pct,
			COALESCE(AVG(neutral_pct), 0) AS avg_neutral_pct
		FROM analysis_runs
	`

	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("get run stats: %w", err)
	}
	return &stats, nil
}

const selectRunQuery = `
	SELECT id, subject, fetched_count, analyzed_count, rejected_counts,
	       positive_count, negative_count, neutral_count,
	       positive_pct, negative_pct, neutral_pct,
	       positive_mean_confidence, negative_mean_confidence, neutral_mean_confidence,
	       created_at
	FROM analysis_runs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.AnalysisRun, error) {
	var (
		run      domain.AnalysisRun
		rejected []byte
		counts   [3]int
		pcts     [3]float64
		confs    [3]float64
	)

	err := row.Scan(
		&run.ID,
		&run.Subject,
		&run.FetchedCount,
		&run.AnalyzedCount,
		&rejected,
		&counts[0], &counts[1], &counts[2],
		&pcts[0], &pcts[1], &pcts[2],
		&confs[0], &confs[1], &confs[2],
		&run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(rejected) > 0 {
		if err := json.Unmarshal(rejected, &run.RejectedCounts); err != nil {
			return nil, fmt.Errorf("unmarshal rejected counts: %w", err)
		}
	}

	run.Summary = domain.AnalysisSummary{
		Total: run.AnalyzedCount,
		Counts: map[domain.Label]int{
			domain.LabelPositive: counts[0],
			domain.LabelNegative: counts[1],
			domain.LabelNeutral:  counts[2],
		},
		Percentages: map[domain.Label]float64{
			domain.LabelPositive: pcts[0],
			domain.LabelNegative: pcts[1],
			domain.LabelNeutral:  pcts[2],
		},
		MeanConfidence: map[domain.Label]float64{
			domain.LabelPositive: confs[0],
			domain.LabelNegative: confs[1],
			domain.LabelNeutral:  confs[2],
		},
	}

	return &run, nil
}
