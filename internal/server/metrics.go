// Package server exposes the toolkit's computations over HTTP: a
// /metrics endpoint for Prometheus scraping and the security middleware
// that wraps every handler.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks Prometheus counters and gauges for the running
// process: in-flight HTTP requests, total HTTP requests by path and
// status code, and a histogram of whole /compute π-computation
// durations by calculator name.
type Metrics struct {
	registry          *prometheus.Registry
	handler           http.Handler
	activeRequests    prometheus.Gauge
	requestsTotal     *prometheus.CounterVec
	multiplyDurations *prometheus.HistogramVec
}

// NewMetrics builds a Metrics collector with its own registry, seeded
// with the Go runtime and process collectors alongside the toolkit's
// own gauges and counters.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	activeRequests := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bigpi_active_requests",
		Help: "Number of /compute and /metrics requests currently in flight.",
	})
	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bigpi_requests_total",
		Help: "Total HTTP requests handled, labeled by path and status code.",
	}, []string{"path", "status"})
	multiplyDurations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bigpi_multiply_duration_seconds",
		Help:    "Duration of one /compute pi calculation, labeled by calculator name.",
		Buckets: prometheus.DefBuckets,
	}, []string{"algorithm"})

	registry.MustRegister(
		activeRequests,
		requestsTotal,
		multiplyDurations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		activeRequests:    activeRequests,
		requestsTotal:     requestsTotal,
		multiplyDurations: multiplyDurations,
	}
}

// IncrementActiveRequests marks the start of an in-flight request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests marks the end of an in-flight request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// ObserveMultiplyDuration records a wall time under the given label. The
// server calls it once per /compute request with the duration of the
// whole π calculation and the calculator's name; individual
// multiplications are not timed.
func (m *Metrics) ObserveMultiplyDuration(algorithm string, seconds float64) {
	m.multiplyDurations.WithLabelValues(algorithm).Observe(seconds)
}

// WritePrometheus serves the registry's current state in the
// Prometheus text exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
