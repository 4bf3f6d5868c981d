package reconciler

import "github.com/prometheus/client_golang/prometheus"

const (
	actionCreate = "create"
	actionReuse  = "reuse"
	actionRemove = "remove"
)

// Metrics holds reconciliation collectors.
type Metrics struct {
	actions *prometheus.CounterVec
}

// NewMetrics creates reconciliation collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sip_bridge_reconcile_actions_total",
			Help: "Accessory reconciliation actions applied",
		}, []string{"action"}),
	}
}

// Collectors returns prometheus collectors.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.actions}
}

func (m *Metrics) observe(action string) {
	if m == nil {
		return
	}

	m.actions.WithLabelValues(action).Inc()
}
