package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "misskey_integrate_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "misskey_integrate_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "misskey_integrate_interactions_total",
			Help: "Total interactions handled",
		},
		[]string{"outcome"}, // "ping", "ad_created", "invalid_options", "upstream_error", "default"
	)

	SignatureFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "misskey_integrate_signature_failures_total",
			Help: "Total webhook calls rejected by signature verification",
		},
	)

	// Upstream metrics
	MisskeyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "misskey_integrate_misskey_requests_total",
			Help: "Total requests to the Misskey API",
		},
		[]string{"path", "status"},
	)
)
