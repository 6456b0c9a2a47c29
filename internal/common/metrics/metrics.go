// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route", "method"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	AssessmentsRun = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessments_run_total",
			Help: "Total number of loan readiness assessments computed",
		},
	)

	MarketplaceRankings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_rankings_total",
			Help: "Total number of marketplace ranking requests by goal",
		},
		[]string{"goal"},
	)
)
