// Package metrics contains middlewares and counters for metrics gathering.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP Requests total counter
var totalRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP Requests.",
	},
	[]string{"path"},
)

// HTTP Response status
var duration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_duration",
		Help: "HTTP Requests Duration",
	},
	[]string{"path"},
)

// Accepted bookings and reschedules
var bookingsAccepted = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bookings_accepted_total",
		Help: "Bookings and reschedules that passed the conflict checks.",
	},
	[]string{"operation"},
)

// Rejected bookings and reschedules
var bookingsConflicted = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bookings_conflicted_total",
		Help: "Bookings and reschedules rejected by the conflict checks.",
	},
	[]string{"operation"},
)

// Booked appointments for the next day, refreshed by the nightly job
var upcomingAppointments = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "appointments_upcoming",
		Help: "Non-canceled appointments scheduled for the next day.",
	},
)

func init() {
	for _, collector := range []prometheus.Collector{totalRequests, duration, bookingsAccepted, bookingsConflicted, upcomingAppointments} {
		if err := prometheus.Register(collector); err != nil {
			panic(err)
		}
	}
}

// PrometheusMiddleware instruments the given request and register metrics.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := prometheus.NewTimer(duration.WithLabelValues(r.RequestURI))
		next.ServeHTTP(w, r)
		totalRequests.WithLabelValues(r.RequestURI).Inc()
		timer.ObserveDuration()
	})
}

// Handler returns the metrics exposition handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncBookingAccepted counts an accepted booking or reschedule.
func IncBookingAccepted(operation string) {
	bookingsAccepted.WithLabelValues(operation).Inc()
}

// IncBookingConflicted counts a booking or reschedule rejected by a conflict check.
func IncBookingConflicted(operation string) {
	bookingsConflicted.WithLabelValues(operation).Inc()
}

// SetUpcomingAppointments sets the next-day appointments gauge.
func SetUpcomingAppointments(count int) {
	upcomingAppointments.Set(float64(count))
}
