// Package observability holds the Prometheus collectors exported on /metrics.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Check-in outcomes.
const (
	CheckInLogged    = "logged"
	CheckInDuplicate = "duplicate"
	CheckInError     = "error"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitlog",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"path", "method", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fitlog",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
	workoutCheckins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitlog",
			Name:      "workout_checkins_total",
			Help:      "Workout check-in attempts by outcome.",
		},
		[]string{"outcome"},
	)
	progressQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fitlog",
			Name:      "progress_queries_total",
			Help:      "Progress queries by kind and result.",
		},
		[]string{"kind", "result"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, workoutCheckins, progressQueries)
}

// RecordHTTPRequest observes one completed request. path must be a route
// pattern, never a raw URL, to keep label cardinality bounded.
func RecordHTTPRequest(path, method string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(path, method).Observe(d.Seconds())
}

// RecordCheckIn counts a check-in attempt.
func RecordCheckIn(outcome string) {
	workoutCheckins.WithLabelValues(outcome).Inc()
}

// RecordProgressQuery counts a weekly summary or daily map query.
func RecordProgressQuery(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	progressQueries.WithLabelValues(kind, result).Inc()
}
