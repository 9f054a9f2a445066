package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	Bookings     *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),

		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		Bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome (created, conflict, quota_exceeded, ...).",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.Bookings)
	return m
}

func (m *Metrics) ObserveBooking(outcome string) {
	m.Bookings.WithLabelValues(outcome).Inc()
}
