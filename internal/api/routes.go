package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, metricsHandler http.Handler) {
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", handler.Analyze)              // POST /api/v1/analyze
		v1.POST("/classify/batch", handler.ClassifyBatch) // POST /api/v1/classify/batch
		v1.GET("/runs/:id", handler.GetRun)               // GET  /api/v1/runs/:id
		v1.GET("/subjects/:subject/summary", handler.GetSubjectSummary)
		v1.GET("/stats", handler.GetStats) // GET  /api/v1/stats
	}
}
