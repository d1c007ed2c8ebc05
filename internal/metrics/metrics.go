// Package metrics exposes the Prometheus collectors for the booking API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_http_requests_total",
		Help: "Handled HTTP requests by method, route pattern and status code.",
	}, []string{"method", "path", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booking_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	AppointmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_appointments_created_total",
		Help: "Appointments accepted by the booking flow.",
	})

	AppointmentsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_appointments_cancelled_total",
		Help: "Appointments cancelled by applicants or staff.",
	})

	SuggestionsInfeasible = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_suggestions_infeasible_total",
		Help: "Distribution suggestions abandoned because a vehicle group could not be placed.",
	})
)
