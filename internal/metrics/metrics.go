// Vigor - Personal Fitness and Nutrition Tracking
// Copyright 2026 Maya K. (vigortrack)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vigortrack/vigor

// Package metrics defines the Prometheus instrumentation for the server:
// API latency and throughput, store operations, nutrition lookups and
// circuit breaker state.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vigor_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigor_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vigor_store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigor_store_operation_errors_total",
			Help: "Total number of document store operation errors",
		},
		[]string{"operation"},
	)

	// Log entry metrics
	LogEntriesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigor_log_entries_written_total",
			Help: "Total number of log entries appended",
		},
		[]string{"kind"}, // food, exercise, water, sleep
	)

	// Nutrition lookup metrics
	NutritionLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigor_nutrition_lookups_total",
			Help: "Total number of nutrition lookups by outcome",
		},
		[]string{"outcome"}, // ok, no_match, upstream_error, rejected
	)

	NutritionLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vigor_nutrition_lookup_duration_seconds",
			Help:    "Duration of nutrition lookups in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CircuitBreakerState tracks the nutrition client breaker:
	// 0=closed, 1=half-open, 2=open.
	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vigor_nutrition_circuit_breaker_state",
			Help: "Nutrition client circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Auth metrics
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigor_auth_attempts_total",
			Help: "Total number of authentication attempts by outcome",
		},
		[]string{"operation", "outcome"}, // signup/login, success/failure
	)
)

// ObserveAPIRequest records one completed API request.
func ObserveAPIRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	APIRequestsTotal.WithLabelValues(method, path, code).Inc()
	APIRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

// ObserveStoreOperation records one store operation.
func ObserveStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}
