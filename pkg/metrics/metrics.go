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

	// SentimentAnalysesTotal counts sentiment analyses by resulting label.
	SentimentAnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_analyses_total",
			Help: "Total sentiment analyses by label",
		},
		[]string{"label"},
	)

	// SearchesTotal counts lexical searches by scope.
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searches_total",
			Help: "Total lexical searches",
		},
		[]string{"scope"},
	)

	// SynthesisDuration tracks end to end synthesis duration, LLM fan-out included.
	SynthesisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "synthesis_duration_seconds",
			Help:    "Synthesis duration including provider calls",
			Buckets: []float64{.01, .05, .1, .5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"mode"},
	)

	// SynthesisKeyPoints tracks the number of unique key points per synthesis.
	SynthesisKeyPoints = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "synthesis_key_points",
			Help:    "Unique key points per synthesis",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	// LLMRequestDuration tracks provider completion duration.
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "LLM completion duration",
			Buckets: []float64{.5, 1, 2, 5, 10, 20, 30, 45, 60, 90, 120},
		},
		[]string{"provider", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"provider", "direction"},
	)

	// ThoughtsTotal counts thoughts created on the board.
	ThoughtsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "thoughts_total",
			Help: "Total thoughts created",
		},
	)

	// ThoughtInteractionsTotal counts likes, comments and style changes.
	ThoughtInteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thought_interactions_total",
			Help: "Total thought interactions by type",
		},
		[]string{"type"},
	)

	// ClustersActive tracks the number of clusters at the last recomputation.
	ClustersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thought_clusters_active",
			Help: "Number of thought clusters at last recomputation",
		},
	)

	// SSEConnectionsActive tracks active SSE connections.
	SSEConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_connections_active",
			Help: "Number of active SSE connections",
		},
	)

	// EventsPublishedTotal counts events published to the event stream.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Events published to the event stream",
		},
		[]string{"type", "status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordLLMRequest records metrics for a provider completion.
func RecordLLMRequest(provider, status string, duration float64, tokensIn, tokensOut int) {
	LLMRequestDuration.WithLabelValues(provider, status).Observe(duration)
	LLMTokensTotal.WithLabelValues(provider, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(provider, "out").Add(float64(tokensOut))
}

// RecordSynthesis records metrics for a finished synthesis.
func RecordSynthesis(mode string, duration float64, keyPoints int) {
	SynthesisDuration.WithLabelValues(mode).Observe(duration)
	SynthesisKeyPoints.Observe(float64(keyPoints))
}

// IncrementSSEConnections increments the active SSE connection count.
func IncrementSSEConnections() {
	SSEConnectionsActive.Inc()
}

// DecrementSSEConnections decrements the active SSE connection count.
func DecrementSSEConnections() {
	SSEConnectionsActive.Dec()
}
