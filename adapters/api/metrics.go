package api

import (
	"net/http"
	"time"

	"goresid/domain/diagnostics"
	apperrors "goresid/internal/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records run and step outcomes. It satisfies app.RunObserver.
type Metrics struct {
	registry     *prometheus.Registry
	runsTotal    *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	stepDuration *prometheus.HistogramVec
	inFlight     prometheus.Gauge
}

// NewMetrics registers collectors on a private registry so several servers
// can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goresid",
			Name:      "runs_total",
			Help:      "Diagnostics runs by model and outcome code",
		}, []string{"model", "code"}),
		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "goresid",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a diagnostics run",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"model"}),
		stepDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "goresid",
			Name:      "step_duration_seconds",
			Help:      "Wall time of one diagnostics step",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"step", "code"}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "goresid",
			Name:      "runs_in_flight",
			Help:      "Runs holding a concurrency slot",
		}),
	}
}

func outcome(err error) string {
	if err == nil {
		return "OK"
	}
	return apperrors.GetCode(err)
}

// ObserveStep implements app.RunObserver.
func (m *Metrics) ObserveStep(kind diagnostics.Kind, d time.Duration, err error) {
	m.stepDuration.WithLabelValues(string(kind), outcome(err)).Observe(d.Seconds())
}

// ObserveRun implements app.RunObserver.
func (m *Metrics) ObserveRun(modelID string, d time.Duration, err error) {
	code := outcome(err)
	if code == apperrors.CodeNotFound {
		modelID = "unknown"
	}
	m.runsTotal.WithLabelValues(modelID, code).Inc()
	m.runDuration.WithLabelValues(modelID).Observe(d.Seconds())
}

// Registry exposes the collectors for tests and embedding.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
