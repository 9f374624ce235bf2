// Package metrics instruments backend requests with Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tasklist_backend_requests_total",
			Help: "Total number of backend requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tasklist_backend_request_duration_seconds",
			Help:    "Duration of backend requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Outcome labels.
const (
	OutcomeTransportError = "transport_error"
	Outcome2xx            = "2xx"
	Outcome3xx            = "3xx"
	Outcome4xx            = "4xx"
	Outcome5xx            = "5xx"
)

// ObserveRequest records one backend request. status is ignored when err is
// non-nil.
func ObserveRequest(operation string, status int, err error, elapsed time.Duration) {
	requestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	requestCount.WithLabelValues(operation, outcome(status, err)).Inc()
}

func outcome(status int, err error) string {
	if err != nil {
		return OutcomeTransportError
	}
	switch {
	case status >= 500:
		return Outcome5xx
	case status >= 400:
		return Outcome4xx
	case status >= 300:
		return Outcome3xx
	default:
		return Outcome2xx
	}
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
