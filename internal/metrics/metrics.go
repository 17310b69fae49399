// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radiolite_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "radiolite_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "radiolite_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Station cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radiolite_cache_hits_total",
			Help: "Station cache hits by operation",
		},
		[]string{"operation"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radiolite_cache_misses_total",
			Help: "Station cache misses by operation",
		},
		[]string{"operation"},
	)

	CacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radiolite_cache_writes_total",
			Help: "Station cache writes by operation and expiry class",
		},
		[]string{"operation", "ttl_class"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radiolite_cache_evictions_total",
			Help: "Entries evicted from a cache backend",
		},
		[]string{"backend"},
	)

	CacheFlushes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "radiolite_cache_flushes_total",
			Help: "Administrative full cache flushes",
		},
	)

	// Upstream directory
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radiolite_upstream_requests_total",
			Help: "Requests sent to an upstream service",
		},
		[]string{"upstream", "operation", "result"}, // result: ok, error, rejected
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "radiolite_upstream_request_duration_seconds",
			Help:    "Upstream request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 20, 30},
		},
		[]string{"upstream", "operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "radiolite_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radiolite_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Analytics
	AnalyticsEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radiolite_analytics_events_total",
			Help: "Usage events recorded",
		},
		[]string{"event"}, // app_open, station_play
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

// RecordUpstream records the outcome and latency of one upstream call.
func RecordUpstream(upstream, operation, result string, duration time.Duration) {
	UpstreamRequests.WithLabelValues(upstream, operation, result).Inc()
	if result != "rejected" {
		UpstreamDuration.WithLabelValues(upstream, operation).Observe(duration.Seconds())
	}
}

// RecordCacheLookup counts a station cache hit or miss.
func RecordCacheLookup(operation string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(operation).Inc()
		return
	}
	CacheMisses.WithLabelValues(operation).Inc()
}
