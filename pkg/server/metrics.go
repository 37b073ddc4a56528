package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "langstats"

// latencyBuckets cover sub-millisecond lookups up to whole-text scoring.
var latencyBuckets = []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5}

// Metrics counts IPC requests per action.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics creates the request metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "IPC requests handled, by action",
		}, []string{"action"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "request_errors_total",
			Help:      "IPC requests answered with an error, by action and code",
		}, []string{"action", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent handling an IPC request",
			Buckets:   latencyBuckets,
		}, []string{"action"}),
	}
	m.registry.MustRegister(m.requests, m.errors, m.latency)
	return m
}

// observe records one handled request. A code of 0 means success.
func (m *Metrics) observe(action string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(action).Inc()
	m.latency.WithLabelValues(action).Observe(elapsed.Seconds())
	if code != 0 {
		m.errors.WithLabelValues(action, strconv.Itoa(code)).Inc()
	}
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the registry holding the request metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
