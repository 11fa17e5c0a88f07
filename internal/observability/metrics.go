// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/forumhub/forumhub/pkg/errutil"
)

// authOperations counts auth use case outcomes. It is package-level so use
// cases can record without holding a Server.
var authOperations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "forumhub_auth_operations_total",
		Help: "Total number of authentication operations by operation and outcome",
	},
	[]string{"operation", "outcome"},
)

// RecordAuthOperation counts one auth operation. The outcome label is
// "success", the error code for coded errors, or "error".
func RecordAuthOperation(operation string, err error) {
	authOperations.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if code := errutil.CodeOf(err); code != "" {
		return code
	}
	return "error"
}

// Metrics contains custom Prometheus metrics for ForumHub.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers custom ForumHub metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forumhub_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "forumhub_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	reg.MustRegister(m.RequestsTotal)
	reg.MustRegister(m.RequestDuration)
	reg.MustRegister(authOperations)

	return m
}
