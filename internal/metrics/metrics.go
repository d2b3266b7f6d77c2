package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "showroom"

const (
	BookingCreated   = "created"
	BookingSlotTaken = "slot_taken"
	BookingRejected  = "rejected"
	BookingFailed    = "failed"
)

type Metrics struct {
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	Bookings             *prometheus.CounterVec
	AvailabilityDegraded prometheus.Counter
}

// New registers the service collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking attempts by result.",
		}, []string{"result"}),
		AvailabilityDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_degraded_total",
			Help:      "Availability reads served without bookings after a storage error.",
		}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.Bookings, m.AvailabilityDegraded)
	return m
}

// NewRegistry returns a registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Booking records a booking outcome. Safe on a nil receiver.
func (m *Metrics) Booking(result string) {
	if m == nil {
		return
	}
	m.Bookings.WithLabelValues(result).Inc()
}

// Degraded records a swallowed availability storage error. Safe on a nil receiver.
func (m *Metrics) Degraded() {
	if m == nil {
		return
	}
	m.AvailabilityDegraded.Inc()
}
