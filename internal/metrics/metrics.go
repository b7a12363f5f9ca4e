// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	// HTTPRequestsTotal tracks requests by method, route, and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route, and status code",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency per route in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds by method and route",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)
)

// Authentication Metrics
var (
	// LoginsTotal tracks login attempts by scope (user/admin) and outcome.
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total login attempts by scope and result",
		},
		[]string{"scope", "result"},
	)

	// RegistrationsTotal tracks user registration outcomes.
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total registration attempts by result",
		},
		[]string{"result"},
	)

	// SessionCacheOps tracks session cache lookups by outcome (hit/miss/error).
	SessionCacheOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_cache_operations_total",
			Help: "Session cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

// Feedback Metrics
var (
	// FeedbackSubmittedTotal tracks accepted feedback entries by sentiment label.
	FeedbackSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_submitted_total",
			Help: "Total feedback entries accepted, by sentiment label",
		},
		[]string{"sentiment"},
	)

	// SentimentClassifyDuration tracks classifier latency in seconds.
	SentimentClassifyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentiment_classify_duration_seconds",
			Help:    "Sentiment classification duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05},
		},
	)
)

// Resilience Metrics
var (
	// CircuitBreakerState reports the current breaker state per component
	// (0 = closed, 1 = half-open, 2 = open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)

	// CircuitBreakerStateChanges counts breaker transitions by target state.
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Total circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)
)

// Database Metrics
var (
	// DBQueryDuration tracks query latency by named query in seconds.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds by query name",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks database errors by query name.
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database errors by query name",
		},
		[]string{"query"},
	)
)
