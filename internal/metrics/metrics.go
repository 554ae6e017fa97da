// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package metrics

import (
	"errors"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemapulse_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinemapulse_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinemapulse_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemapulse_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Review pipeline
	ReviewsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinemapulse_reviews_submitted_total",
			Help: "Total number of reviews accepted and stored",
		},
	)

	ReviewsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemapulse_reviews_rejected_total",
			Help: "Total number of reviews rejected before storage",
		},
		[]string{"field"},
	)

	StatsRecompute = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemapulse_stats_recompute_total",
			Help: "Statistics recomputations by target and result",
		},
		[]string{"target", "result"}, // target: movie, user; result: success, error
	)

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemapulse_recommendations_served_total",
			Help: "Recommendation lists served by mode",
		},
		[]string{"mode"}, // cold_start, personalized, degraded
	)

	// Storage
	StorageOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemapulse_storage_operations_total",
			Help: "Storage gateway operations by backend, operation and result",
		},
		[]string{"backend", "op", "result"}, // result: ok, not_found, exists, unavailable, error
	)

	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinemapulse_storage_operation_duration_seconds",
			Help:    "Storage gateway operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinemapulse_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemapulse_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Notifications
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemapulse_notifications_total",
			Help: "Notification deliveries by sink and result",
		},
		[]string{"sink", "result"},
	)

	NotificationsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinemapulse_notifications_dropped_total",
			Help: "Notifications dropped because the dispatch queue was full",
		},
	)

	NotificationQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinemapulse_notification_queue_depth",
			Help: "Events waiting in the notification queue",
		},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinemapulse_websocket_clients",
			Help: "Current number of connected live-feed clients",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinemapulse_websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	// Auth
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemapulse_auth_attempts_total",
			Help: "Login and registration attempts by result",
		},
		[]string{"action", "result"},
	)

	AuthzDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinemapulse_authz_decisions_total",
			Help: "Authorization decisions by result (allowed, denied, error)",
		},
		[]string{"result"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinemapulse_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// Result labels shared by the storage and notification counters.
const (
	ResultOK          = "ok"
	ResultError       = "error"
	ResultUnavailable = "unavailable"
	ResultNotFound    = "not_found"
	ResultExists      = "exists"
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// Classifier maps an error to a result label. Storage passes its own
// sentinels in so this package stays free of domain imports.
type Classifier struct {
	Unavailable error
	NotFound    error
	Exists      error
}

// Result returns the label for err.
func (c Classifier) Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case c.Unavailable != nil && errors.Is(err, c.Unavailable):
		return ResultUnavailable
	case c.NotFound != nil && errors.Is(err, c.NotFound):
		return ResultNotFound
	case c.Exists != nil && errors.Is(err, c.Exists):
		return ResultExists
	default:
		return ResultError
	}
}

// RecordStorageOp records one gateway call.
func RecordStorageOp(backend, op, result string, duration time.Duration) {
	StorageOperations.WithLabelValues(backend, op, result).Inc()
	StorageOperationDuration.WithLabelValues(backend, op).Observe(duration.Seconds())
}

// RecordStatsRecompute records one aggregator run.
func RecordStatsRecompute(target string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	StatsRecompute.WithLabelValues(target, result).Inc()
}

// RecordNotification records one sink delivery.
func RecordNotification(sink string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	NotificationsTotal.WithLabelValues(sink, result).Inc()
}

// BreakerStateValue converts a breaker state name to the gauge value.
func BreakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// RecordBreakerTransition updates the state gauge and transition counter.
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerState.WithLabelValues(name).Set(BreakerStateValue(to))
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
