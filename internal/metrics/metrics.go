// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Recommendation Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time to produce a recommendation list, including cache lookups",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"mode"},
	)

	RecommendationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_errors_total",
			Help: "Failed recommendation requests by error kind",
		},
		[]string{"mode", "kind"}, // kind: not_found, invalid_input, unavailable, internal
	)

	// Engine Metrics
	EngineInitializations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_initializations_total",
			Help: "Engine initializations by result",
		},
		[]string{"result"}, // success, failure
	)

	EngineInitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engine_init_duration_seconds",
			Help:    "Duration of dataset load plus engine initialization",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	EngineModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_model_version",
			Help: "Version of the currently published engine snapshot",
		},
	)

	DatasetSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_size",
			Help: "Entities in the currently loaded dataset",
		},
		[]string{"entity"}, // movies, users, ratings
	)

	DatasetDroppedRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_dropped_rows",
			Help: "Rows dropped or defaulted by the last successful load",
		},
		[]string{"reason"},
	)

	ReloadTriggers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_reload_triggers_total",
			Help: "Reload requests by source and outcome",
		},
		[]string{"source", "outcome"}, // source: startup, interval, admin, event; outcome: accepted, throttled
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Recommendation cache hits by backend",
		},
		[]string{"backend"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Recommendation cache misses by backend",
		},
		[]string{"backend"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_errors_total",
			Help: "Recommendation cache backend errors",
		},
		[]string{"backend", "operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Event Metrics
	EventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_received_total",
			Help: "Messages received from the event bus",
		},
		[]string{"topic", "result"}, // result: processed, rejected
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records latency and, when kind is non-empty, an error.
func RecordRecommendation(mode string, duration time.Duration, kind string) {
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if kind != "" {
		RecommendationErrors.WithLabelValues(mode, kind).Inc()
	}
}

// RecordCacheLookup records a hit or a miss for backend.
func RecordCacheLookup(backend string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(backend).Inc()
	} else {
		CacheMisses.WithLabelValues(backend).Inc()
	}
}

// RecordCacheError counts a failed backend operation.
func RecordCacheError(backend, operation string) {
	CacheErrors.WithLabelValues(backend, operation).Inc()
}

// DatasetStats is the subset of engine statistics exported as gauges.
type DatasetStats struct {
	Movies, Users, Ratings int
	Version                int64
	Dropped                map[string]int
}

// RecordInitialization records an engine (re)initialization.
func RecordInitialization(duration time.Duration, stats *DatasetStats, err error) {
	EngineInitDuration.Observe(duration.Seconds())
	if err != nil {
		EngineInitializations.WithLabelValues("failure").Inc()
		return
	}
	EngineInitializations.WithLabelValues("success").Inc()
	if stats == nil {
		return
	}
	EngineModelVersion.Set(float64(stats.Version))
	DatasetSize.WithLabelValues("movies").Set(float64(stats.Movies))
	DatasetSize.WithLabelValues("users").Set(float64(stats.Users))
	DatasetSize.WithLabelValues("ratings").Set(float64(stats.Ratings))
	for reason, n := range stats.Dropped {
		DatasetDroppedRows.WithLabelValues(reason).Set(float64(n))
	}
}

// RecordReloadTrigger counts a reload request from source.
func RecordReloadTrigger(source string, accepted bool) {
	outcome := "accepted"
	if !accepted {
		outcome = "throttled"
	}
	ReloadTriggers.WithLabelValues(source, outcome).Inc()
}

// RecordBreakerTransition updates breaker state gauges. States are the
// gobreaker names: closed, half-open, open.
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// RecordEvent counts a received bus message.
func RecordEvent(topic string, processed bool) {
	result := "processed"
	if !processed {
		result = "rejected"
	}
	EventsReceived.WithLabelValues(topic, result).Inc()
}
