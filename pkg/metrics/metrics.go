// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// TurnsTotal tracks resolved conversation turns.
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_turns_total",
			Help: "Conversation turns resolved by the engine",
		},
		[]string{"tenant_id", "intent", "language"},
	)

	// ClassificationConfidence tracks classifier confidence scores.
	ClassificationConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engine_classification_confidence",
			Help:    "Confidence of intent classification results",
			Buckets: []float64{.1, .2, .3, .4, .45, .5, .6, .7, .8, .9, 1},
		},
	)

	// ReinterpretationsTotal tracks contextual re-interpretation outcomes.
	ReinterpretationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_reinterpretations_total",
			Help: "Contextual re-interpretation attempts by outcome",
		},
		[]string{"outcome"},
	)

	// TemplateTierHits tracks which cascade tier resolved a template.
	TemplateTierHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_template_tier_hits_total",
			Help: "Template cascade resolutions by tier",
		},
		[]string{"tier"},
	)

	// PersistenceFailures tracks dropped history writes.
	PersistenceFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_persistence_failures_total",
			Help: "Conversation turns that could not be persisted",
		},
	)

	// EmbeddingDuration tracks embedding provider latency.
	EmbeddingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engine_embedding_duration_seconds",
			Help:    "Embedding provider call duration",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordTurn records a resolved conversation turn.
func RecordTurn(tenantID, intent, language string, confidence float64) {
	TurnsTotal.WithLabelValues(tenantID, intent, language).Inc()
	ClassificationConfidence.Observe(confidence)
}

// RecordReinterpretation records a re-interpretation outcome
// ("adopted", "rejected" or "skipped").
func RecordReinterpretation(outcome string) {
	ReinterpretationsTotal.WithLabelValues(outcome).Inc()
}
