// Package metrics provides Prometheus metrics for the orchestration engine.
// Each Metrics instance owns its own registry so that two orchestrators in
// one process never collide on metric names.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the orchestration counters and histograms.
type Metrics struct {
	registry *prometheus.Registry

	// InitializedTotal counts modules that initialized successfully.
	InitializedTotal prometheus.Counter

	// FailedTotal counts modules that exhausted their retry budget.
	FailedTotal prometheus.Counter

	// RetriesTotal counts individual failed attempts that were retried.
	RetriesTotal prometheus.Counter

	// InitDuration observes wall time per module initialization, by outcome.
	InitDuration *prometheus.HistogramVec
}

// New creates a Metrics instance backed by a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		InitializedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bootgrid_modules_initialized_total",
			Help: "Total number of modules that initialized successfully.",
		}),
		FailedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bootgrid_modules_failed_total",
			Help: "Total number of modules that terminally failed initialization.",
		}),
		RetriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bootgrid_init_retries_total",
			Help: "Total number of failed initialization attempts that were retried.",
		}),
		InitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bootgrid_init_duration_seconds",
			Help:    "Wall time spent initializing each module, by outcome.",
			Buckets: prometheus.DefBuckets,
		}, []string{"module", "outcome"}),
	}
}

// ObserveInit records a terminal initialization outcome for a module.
func (m *Metrics) ObserveInit(module string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.InitDuration.WithLabelValues(module, outcome).Observe(d.Seconds())
	if err != nil {
		m.FailedTotal.Inc()
		return
	}
	m.InitializedTotal.Inc()
}

// ObserveRetry records one failed attempt that will be retried.
func (m *Metrics) ObserveRetry() {
	if m == nil {
		return
	}
	m.RetriesTotal.Inc()
}

// Handler exposes the instance registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
