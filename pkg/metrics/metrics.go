// Package metrics holds the Prometheus collectors for the keyword idea server.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for FetchesTotal
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeFault           = "fault"
	OutcomeError           = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keyword_planner_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keyword_planner_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keyword_planner_fetches_total",
			Help: "Keyword idea fetches by outcome",
		},
		[]string{"seed", "outcome"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keyword_planner_fetch_duration_seconds",
			Help:    "Duration of keyword idea fetches in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"outcome"},
	)

	IdeasReturned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "keyword_planner_ideas_returned_total",
			Help: "Keyword ideas returned to callers",
		},
	)

	FaultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keyword_planner_api_faults_total",
			Help: "Google Ads API faults by status",
		},
		[]string{"status"},
	)
)

// ObserveFetch records one fetch. ideas is ignored unless outcome is success.
func ObserveFetch(seed, outcome string, ideas int, elapsed time.Duration) {
	FetchesTotal.WithLabelValues(seed, outcome).Inc()
	FetchDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if outcome == OutcomeSuccess {
		IdeasReturned.Add(float64(ideas))
	}
}

// ObserveHTTP records one served request
func ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
}

// ObserveFault counts an API fault by its status name
func ObserveFault(status string) {
	FaultsTotal.WithLabelValues(status).Inc()
}
