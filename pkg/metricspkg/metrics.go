// Package metricspkg holds the Prometheus collectors exported by the service.
package metricspkg

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration observes http response durations per route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "http_response_duration_seconds",
		Help: "Histogram representing the http response durations",
	}, []string{"route", "method", "status"})

	// Outcomes counts processed payment instructions by status and status code.
	Outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_instruction_outcomes_total",
		Help: "Number of processed payment instructions",
	}, []string{"status", "status_code"})
)
