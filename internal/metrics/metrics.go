// Package metrics provides Prometheus metrics for the chore service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// httpRequestsTotal counts handled HTTP requests.
	// Labels: route, method, status.
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "choreboard_http_requests_total",
			Help: "Total number of handled HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "choreboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"route", "method"},
	)

	// completionsTotal counts stored completions, split by whether the task was archived.
	completionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "choreboard_completions_total",
			Help: "Total number of recorded task completions",
		},
		[]string{"one_and_done"},
	)

	summariesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "choreboard_summaries_total",
			Help: "Total number of computed completion summaries",
		},
		[]string{"period"},
	)

	digestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "choreboard_digests_total",
			Help: "Total number of reminder digests built, by outcome",
		},
		[]string{"status"},
	)

	outboxEvents = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "choreboard_outbox_events",
			Help: "Events parked in the outbox waiting for the broker",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(completionsTotal)
	prometheus.MustRegister(summariesTotal)
	prometheus.MustRegister(digestsTotal)
	prometheus.MustRegister(outboxEvents)
}

// RecordRequest records one handled HTTP request.
func RecordRequest(route, method string, status int, durationSeconds float64) {
	httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(route, method).Observe(durationSeconds)
}

// RecordCompletion records a stored completion.
func RecordCompletion(oneAndDone bool) {
	completionsTotal.WithLabelValues(strconv.FormatBool(oneAndDone)).Inc()
}

// RecordSummary records a summary computation for period.
func RecordSummary(period string) {
	summariesTotal.WithLabelValues(period).Inc()
}

// RecordDigest records a reminder digest run. status is "success", "empty" or "failed".
func RecordDigest(status string) {
	digestsTotal.WithLabelValues(status).Inc()
}

// SetOutboxSize publishes the current outbox depth.
func SetOutboxSize(n int) {
	outboxEvents.Set(float64(n))
}
