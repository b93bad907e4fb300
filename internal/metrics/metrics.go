// Package metrics holds the Prometheus collectors for the portal.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"efgportal/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestDuration      *prometheus.HistogramVec
	RegistrationsCreated prometheus.Counter
	StatusTransitions    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "efgportal_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route pattern and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		RegistrationsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "efgportal_registrations_created_total",
			Help: "Total number of event registrations created",
		}),
		StatusTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "efgportal_registration_transitions_total",
			Help: "Registration status transitions by source and target status",
		}, []string{"from", "to"}),
	}
}

// RegistrationCreated increments the registrations created counter by 1.
func (m *Metrics) RegistrationCreated() {
	m.RegistrationsCreated.Inc()
}

// StatusChanged counts one committed transition.
func (m *Metrics) StatusChanged(from, to domain.RegistrationStatus) {
	m.StatusTransitions.WithLabelValues(string(from), string(to)).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware observes request duration. It must wrap the ServeMux directly so the matched
// route pattern is visible on the request after routing.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Observe(time.Since(start).Seconds())
	})
}
