package prudp

import "github.com/prometheus/client_golang/prometheus"

// serverMetrics are the Prometheus collectors a Server exposes. They are
// observability-only: nothing in the state machine depends on their
// values, matching the "no invariant" note in SPEC_FULL.md.
type serverMetrics struct {
	connectedClients prometheus.Gauge
	packetsProcessed *prometheus.CounterVec
	rmcErrors        *prometheus.CounterVec
}

func newServerMetrics(registerer prometheus.Registerer) *serverMetrics {
	m := &serverMetrics{
		connectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "prudp_connected_clients",
			Help: "Number of peers currently in the Connected state.",
		}),
		packetsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prudp_packets_processed_total",
			Help: "Number of inbound packets processed, by packet type.",
		}, []string{"type"}),
		rmcErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prudp_rmc_errors_total",
			Help: "Number of RMC handler errors returned to clients, by protocol id.",
		}, []string{"protocol_id"}),
	}

	if registerer != nil {
		registerer.MustRegister(m.connectedClients, m.packetsProcessed, m.rmcErrors)
	}

	return m
}
