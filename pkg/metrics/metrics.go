// Copyright (c) 2025 Muthukumaran Navaneethakrishnan
//
// This file is part of dual-crypt.
// Licensed under the MIT License. See LICENSE for details.

// Package metrics provides Prometheus instrumentation for dual-crypt
// operations: per-operation counters and latency histograms plus HTTP
// request metrics.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all dual-crypt metrics
	Namespace = "dualcrypt"

	// Label names
	LabelOperation  = "operation"
	LabelCodec      = "codec"
	LabelStatus     = "status"
	LabelMethod     = "method"
	LabelStatusCode = "status_code"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpGenerate = "generate"
	OpEncrypt  = "encrypt"
	OpDecrypt  = "decrypt"
	OpSign     = "sign"
	OpVerify   = "verify"

	// Codec names
	CodecSymmetric     = "symmetric"
	CodecSymmetricFast = "symmetric_fast"
	CodecAsymmetric    = "asymmetric"
	CodecToken         = "token"
)

var (
	// OperationsTotal tracks codec operations by type, codec, and status.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total number of crypto operations by type, codec, and status",
		},
		[]string{LabelOperation, LabelCodec, LabelStatus},
	)

	// OperationDuration tracks the duration of codec operations in seconds.
	// Buckets are optimized for typical cryptographic operation latencies.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of crypto operations in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{LabelOperation, LabelCodec},
	)

	// HTTPRequestsTotal tracks HTTP requests by method and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method and status code",
		},
		[]string{LabelMethod, LabelStatusCode},
	)

	// HTTPRequestDuration tracks the duration of HTTP requests in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{LabelMethod},
	)

	// HTTPRequestsInFlight tracks the number of in-flight HTTP requests.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)
)

// enabled controls whether metrics are recorded (on by default).
var enabled atomic.Bool

func init() {
	enabled.Store(true)
}

// Enable turns metric recording on.
func Enable() { enabled.Store(true) }

// Disable turns metric recording off.
func Disable() { enabled.Store(false) }

// IsEnabled reports whether metric recording is on.
func IsEnabled() bool { return enabled.Load() }

// RecordOperation increments the operation counter.
func RecordOperation(operation, codec, status string) {
	if !IsEnabled() {
		return
	}
	OperationsTotal.WithLabelValues(operation, codec, status).Inc()
}

// ObserveOperation records an operation duration in seconds.
func ObserveOperation(operation, codec string, seconds float64) {
	if !IsEnabled() {
		return
	}
	OperationDuration.WithLabelValues(operation, codec).Observe(seconds)
}

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(method, statusCode string, seconds float64) {
	if !IsEnabled() {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method).Observe(seconds)
}
