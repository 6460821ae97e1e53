// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Account deletion cascade
	CascadeSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_cascade_steps_total",
			Help: "Cascade deletion steps by outcome",
		},
		[]string{"step", "outcome"}, // outcome: "ok", "failed"
	)

	CascadeStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "account_cascade_step_duration_seconds",
			Help:    "Duration of cascade deletion steps in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"step"},
	)

	CascadeRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_cascade_runs_total",
			Help: "Cascade deletion runs by result",
		},
		[]string{"result"}, // "complete", "partial", "not_found"
	)

	// Matching
	RecommendationsServed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_recommendations_returned",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	// HTTP
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
)

// RecordCascadeStep records one cascade step.
func RecordCascadeStep(step string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	CascadeSteps.WithLabelValues(step, outcome).Inc()
	CascadeStepDuration.WithLabelValues(step).Observe(duration.Seconds())
}

// RecordCascadeRun records the final result of one cascade.
func RecordCascadeRun(result string) {
	CascadeRuns.WithLabelValues(result).Inc()
}

// RecordAPIRequest records one handled HTTP request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, endpoint, strconv.Itoa(status)).Observe(duration.Seconds())
}
