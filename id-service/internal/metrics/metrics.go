package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records id-service counters.
type Metrics struct {
	generated *prometheus.CounterVec
	failures  *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "idservice",
				Name:      "ids_generated_total",
				Help:      "Identifiers generated, by kind.",
			},
			[]string{"kind"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "idservice",
				Name:      "generate_errors_total",
				Help:      "Rejected or failed generation calls, by kind and reason.",
			},
			[]string{"kind", "reason"},
		),
	}
	reg.MustRegister(m.generated, m.failures)
	return m
}

// Generated adds n identifiers of kind.
func (m *Metrics) Generated(kind string, n int) {
	m.generated.WithLabelValues(kind).Add(float64(n))
}

// Failed counts one failed call.
func (m *Metrics) Failed(kind, reason string) {
	m.failures.WithLabelValues(kind, reason).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
