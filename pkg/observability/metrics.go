package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for the lead-generation chain.
type Metrics struct {
	ModelCalls      *prometheus.CounterVec // labels: outcome={ok,error}
	ToolInvocations *prometheus.CounterVec // labels: tool, outcome={ok,soft_fail,error,unknown,bad_args}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}
	LeadsWritten    prometheus.Counter
	SkipTraceCalls  *prometheus.CounterVec // labels: provider, outcome={ok,error}
}

func newMetrics() *Metrics {
	return &Metrics{
		ModelCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ranger",
			Name:      "model_calls_total",
			Help:      "Language model completions by outcome.",
		}, []string{"outcome"}),
		ToolInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ranger",
			Name:      "tool_invocations_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ranger",
			Name:      "geocode_cache_total",
			Help:      "Geocoder cache lookups by result.",
		}, []string{"result"}),
		LeadsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ranger",
			Name:      "leads_written_total",
			Help:      "Lead rows written to output files.",
		}),
		SkipTraceCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ranger",
			Name:      "skip_trace_calls_total",
			Help:      "Skip-trace lookups by provider and outcome.",
		}, []string{"provider", "outcome"}),
	}
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ModelCalls,
		m.ToolInvocations,
		m.GeocodeCache,
		m.LeadsWritten,
		m.SkipTraceCalls,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so parallel
// tests do not trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
