// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for the analysis pipeline.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "opinion_pulse"

// Metrics holds all pipeline Prometheus metrics.
type Metrics struct {
	PostsFetched    *prometheus.CounterVec
	PostsRejected   *prometheus.CounterVec
	PostsClassified *prometheus.CounterVec
	RunDuration     prometheus.Histogram
	BatchSize       prometheus.Histogram
}

// Provider wraps the tracer and metrics.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry. Metrics register with the default
// Prometheus registry, so create at most one provider per process.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	return &Metrics{
		PostsFetched: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "opinion_pulse_posts_fetched_total",
			Help: "Total posts fetched per subject",
		}, []string{"subject"}),
		PostsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "opinion_pulse_posts_rejected_total",
			Help: "Total posts rejected by the quality filter, by reason",
		}, []string{"reason"}),
		PostsClassified: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "opinion_pulse_posts_classified_total",
			Help: "Total posts classified, by sentiment label",
		}, []string{"label"}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "opinion_pulse_run_duration_seconds",
			Help:    "Wall time of a full fetch-and-classify run",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "opinion_pulse_batch_size",
			Help:    "Number of posts per classified batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 200},
		}),
	}
}

// RecordFetch counts posts fetched for a subject.
func (p *Provider) RecordFetch(subject string, count int) {
	p.Metrics.PostsFetched.WithLabelValues(subject).Add(float64(count))
}

// RecordRejection counts a filtered-out post by reason.
func (p *Provider) RecordRejection(reason string) {
	p.Metrics.PostsRejected.WithLabelValues(reason).Inc()
}

// RecordClassification counts a classified post by label.
func (p *Provider) RecordClassification(label string) {
	p.Metrics.PostsClassified.WithLabelValues(label).Inc()
}

// RecordRun records the duration and batch size of a completed run.
func (p *Provider) RecordRun(duration time.Duration, batchSize int) {
	p.Metrics.RunDuration.Observe(duration.Seconds())
	p.Metrics.BatchSize.Observe(float64(batchSize))
}

// StartSpan starts a trace span. The caller must end it.
func (p *Provider) StartSpan(ctx context.Context, name string) trace.Span {
	_, span := p.Tracer.Start(ctx, name)
	return span
}
