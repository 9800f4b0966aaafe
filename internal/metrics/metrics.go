// Package metrics exposes Prometheus collectors for the widget backend.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal counts finished searches by outcome
	// (success, configuration, not_found, auth, upstream).
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_searches_total",
			Help: "Total number of city searches by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "widget_upstream_requests_total",
			Help: "Total number of requests sent to the weather provider",
		},
		[]string{"endpoint", "status"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "widget_upstream_request_duration_seconds",
			Help:    "Weather provider request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	ForecastDegradedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "widget_forecast_degraded_total",
			Help: "Searches that succeeded without a forecast",
		},
	)

	StaleResultsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "widget_stale_results_discarded_total",
			Help: "Search completions dropped because a newer search had started",
		},
	)
)

// RecordUpstream records one provider call. status is 0 for transport failures.
func RecordUpstream(endpoint string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(endpoint, label).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// RecordSearch records the outcome of a finished search.
func RecordSearch(outcome string) {
	SearchesTotal.WithLabelValues(outcome).Inc()
}
