package ui

import (
	"github.com/a1s/gridbind/internal/model1"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "gridbind"

// Metrics tracks how changes were applied to a sink. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	batches   prometheus.Counter
	reloads   prometheus.Counter
	fallbacks prometheus.Counter
	skipped   prometheus.Counter
	ops       *prometheus.CounterVec
}

// NewMetrics creates the engine metrics on the given registerer. A nil
// registerer creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		batches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "animator",
			Name:      "batches_total",
			Help:      "Total number of batch scopes opened on the sink",
		}),
		reloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "animator",
			Name:      "reloads_total",
			Help:      "Total number of full reloads",
		}),
		fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "animator",
			Name:      "fallbacks_total",
			Help:      "Total number of rejected batches replaced by a reload",
		}),
		skipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "animator",
			Name:      "skipped_total",
			Help:      "Total number of view unrelated changes not applied",
		}),
		ops: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "animator",
			Name:      "ops_total",
			Help:      "Total number of ops replayed by kind",
		}, []string{"kind"}),
	}
}

func (m *Metrics) batch() {
	if m != nil {
		m.batches.Inc()
	}
}

func (m *Metrics) reload() {
	if m != nil {
		m.reloads.Inc()
	}
}

func (m *Metrics) fallback() {
	if m != nil {
		m.fallbacks.Inc()
	}
}

func (m *Metrics) skip() {
	if m != nil {
		m.skipped.Inc()
	}
}

func (m *Metrics) op(k model1.OpKind, n int) {
	if m != nil && n > 0 {
		m.ops.WithLabelValues(k.String()).Add(float64(n))
	}
}
