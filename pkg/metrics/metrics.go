// Package metrics exports Prometheus instruments for toggle passes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

// Sync states reported in the state label.
const (
	StateEnabled  = "enabled"
	StateDisabled = "disabled"
	StateMissing  = "missing"
)

// Collector counts synchronization passes.
type Collector struct {
	syncs  *prometheus.CounterVec
	fields prometheus.Histogram
}

// New registers the collector's instruments with reg. A nil registerer uses
// the default registry.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		syncs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fieldgroup_sync_total",
				Help: "Total number of field group synchronization passes",
			},
			[]string{"state"},
		),
		fields: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fieldgroup_sync_fields",
				Help:    "Number of fields updated per synchronization pass",
				Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
			},
		),
	}
	for _, col := range []prometheus.Collector{c.syncs, c.fields} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Observe records one pass. It satisfies toggle.Observer.
func (c *Collector) Observe(result toggle.Result) {
	if c == nil {
		return
	}
	c.syncs.WithLabelValues(State(result)).Inc()
	if result.Found {
		c.fields.Observe(float64(result.Fields))
	}
}

// Observer returns Observe as a toggle.Observer.
func (c *Collector) Observer() toggle.Observer {
	return c.Observe
}

// State maps a result onto a state label.
func State(result toggle.Result) string {
	switch {
	case !result.Found:
		return StateMissing
	case result.Enabled:
		return StateEnabled
	default:
		return StateDisabled
	}
}
