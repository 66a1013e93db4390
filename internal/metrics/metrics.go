// Package metrics exposes Prometheus instruments for the booking system.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every instrument on its own registry so tests can build
// as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	Bookings       *prometheus.CounterVec
	Cancellations  prometheus.Counter
	Registrations  *prometheus.CounterVec
	Logins         *prometheus.CounterVec
	RoomsAvailable *prometheus.GaugeVec
}

// New creates the instruments and registers them, along with the Go runtime
// collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Bookings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome.",
		}, []string{"result"}),
		Cancellations: f.NewCounter(prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "cancellations_total",
			Help:      "Bookings cancelled.",
		}),
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome.",
		}, []string{"result"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"result"}),
		RoomsAvailable: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hotel",
			Name:      "rooms_available",
			Help:      "Rooms currently available per hotel.",
		}, []string{"index", "hotel"}),
	}
}

// SetRooms records the current inventory of one hotel.
func (m *Metrics) SetRooms(index int, hotel string, rooms int) {
	if m == nil {
		return
	}
	m.RoomsAvailable.WithLabelValues(strconv.Itoa(index), hotel).Set(float64(rooms))
}

// Booking counts a booking attempt.
func (m *Metrics) Booking(result string) {
	if m == nil {
		return
	}
	m.Bookings.WithLabelValues(result).Inc()
}

// Cancellation counts a cancelled booking.
func (m *Metrics) Cancellation() {
	if m == nil {
		return
	}
	m.Cancellations.Inc()
}

// Registration counts a registration attempt.
func (m *Metrics) Registration(result string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(result).Inc()
}

// Login counts a login attempt.
func (m *Metrics) Login(result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
