// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

var (
	// InferenceRuns counts orchestrated inference runs by result.
	InferenceRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "health_inference_runs_total",
		Help: "Total inference runs by result",
	}, []string{"result"})

	// StoreOperations counts scenario and metrics store calls.
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "health_inference_store_operations_total",
		Help: "Total store operations by operation and result",
	}, []string{"op", "result"})

	// ExportedRows counts rows written by exports, by destination kind.
	ExportedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "health_inference_exported_rows_total",
		Help: "Total rows exported by destination kind",
	}, []string{"destination"})

	// HTTPRequestDuration observes handler latency.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "health_inference_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
	}, []string{"method"})
)

// ObserveStore records the outcome of a store operation.
func ObserveStore(op string, err error) {
	StoreOperations.WithLabelValues(op, resultFor(err)).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func resultFor(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
