package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instrumentation for check ticks.
type Metrics struct {
	registry      *prometheus.Registry
	checksTotal   *prometheus.CounterVec
	checkFailures prometheus.Counter
	checkDuration prometheus.Histogram
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "apimon_checks_total",
			Help: "Completed endpoint checks, labelled by status code class.",
		}, []string{"class"}),
		checkFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "apimon_check_failures_total",
			Help: "Checks that failed at the transport level.",
		}),
		checkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "apimon_check_duration_seconds",
			Help:    "Wall-clock duration of endpoint checks.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.checksTotal,
		m.checkFailures,
		m.checkDuration,
		collectors.NewGoCollector(),
	)

	return m
}

// ObserveCheck records a completed check with its status code and duration.
func (m *Metrics) ObserveCheck(statusCode int, seconds float64) {
	m.checksTotal.WithLabelValues(statusClass(statusCode)).Inc()
	m.checkDuration.Observe(seconds)
}

// ObserveFailure records a check that failed before a response arrived.
func (m *Metrics) ObserveFailure(seconds float64) {
	m.checkFailures.Inc()
	m.checkDuration.Observe(seconds)
}

// Handler returns the Prometheus exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	case code >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
