// Package api exposes the analysis pipeline over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/opinion-pulse/internal/analyzer"
	"github.com/jonesrussell/opinion-pulse/internal/database"
	"github.com/jonesrussell/opinion-pulse/internal/domain"
	"github.com/jonesrussell/opinion-pulse/internal/logging"
)

// BatchRunner runs one fetch-and-classify pass for a subject.
type BatchRunner interface {
	RunOnce(ctx context.Context, subject string) (*domain.AnalysisRun, error)
}

// BatchClassifier classifies caller-supplied posts.
type BatchClassifier interface {
	Process(ctx context.Context, posts []domain.RawPost) []*analyzer.Outcome
}

// RunReader reads persisted runs.
type RunReader interface {
	GetByID(ctx context.Context, id string) (*domain.AnalysisRun, error)
	GetLatestBySubject(ctx context.Context, subject string) (*domain.AnalysisRun, error)
	GetStats(ctx context.Context) (*database.OverallStats, error)
}

// SummaryReader reads cached summaries. A nil run with nil error is a miss.
type SummaryReader interface {
	GetLatest(ctx context.Context, subject string) (*domain.AnalysisRun, error)
}

// Handler handles HTTP requests for the analysis API.
type Handler struct {
	runner     BatchRunner
	classifier BatchClassifier
	runs       RunReader
	cache      SummaryReader
	logger     logging.Logger
}

// NewHandler creates an API handler. The cache may be nil; summary reads
// then always go to the database.
func NewHandler(
	runner BatchRunner,
	classifier BatchClassifier,
	runs RunReader,
	cache SummaryReader,
	logger logging.Logger,
) *Handler {
	return &Handler{
		runner:     runner,
		classifier: classifier,
		runs:       runs,
		cache:      cache,
		logger:     logger,
	}
}

// Analyze handles POST /api/v1/analyze.
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("Analyzing subject",
		logging.String("subject", req.Subject),
	)

	run, err := h.runner.RunOnce(c.Request.Context(), req.Subject)
	if err != nil {
		h.logger.Error("Analysis failed",
			logging.String("subject", req.Subject),
			logging.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toRunResponse(run))
}

// ClassifyBatch handles POST /api/v1/classify/batch.
func (h *Handler) ClassifyBatch(c *gin.Context) {
	var req ClassifyBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcomes := h.classifier.Process(c.Request.Context(), req.Posts)
	results := analyzer.Results(outcomes)

	c.JSON(http.StatusOK, ClassifyBatchResponse{
		Outcomes: outcomes,
		Summary:  analyzer.Summarize(results),
		Total:    len(outcomes),
		Analyzed: len(results),
		Rejected: len(outcomes) - len(results),
	})
}

// GetRun handles GET /api/v1/runs/:id.
func (h *Handler) GetRun(c *gin.Context) {
	id := c.Param("id")

	run, err := h.runs.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		h.logger.Error("Failed to load run", logging.String("run_id", id), logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toRunResponse(run))
}

// GetSubjectSummary handles GET /api/v1/subjects/:subject/summary.
// The cache is consulted first; misses fall through to the database.
func (h *Handler) GetSubjectSummary(c *gin.Context) {
	subject := c.Param("subject")

	if h.cache != nil {
		run, err := h.cache.GetLatest(c.Request.Context(), subject)
		if err != nil {
			h.logger.Warn("Summary cache read failed",
				logging.String("subject", subject),
				logging.Error(err),
			)
		} else if run != nil {
			c.JSON(http.StatusOK, toRunResponse(run))
			return
		}
	}

	run, err := h.runs.GetLatestBySubject(c.Request.Context(), subject)
	if err != nil {
		if errors.Is(err, database.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no runs for subject"})
			return
		}
		h.logger.Error("Failed to load subject summary",
			logging.String("subject", subject),
			logging.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toRunResponse(run))
}

// GetStats handles GET /api/v1/stats.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.runs.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load stats", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ReadyCheck handles GET /ready.
func (h *Handler) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
