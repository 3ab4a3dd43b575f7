// Package observability wires submission and connection lifecycle events
// into Prometheus metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/driftware/ledgermcp/pkg/conn"
	"github.com/driftware/ledgermcp/pkg/domain"
	"github.com/driftware/ledgermcp/pkg/submit"
)

// Metrics holds the Prometheus collectors for the submission pipeline.
type Metrics struct {
	Submissions    *prometheus.CounterVec
	SubmitDuration *prometheus.HistogramVec
	Connections    prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgermcp_submissions_total",
				Help: "Total number of transaction submissions",
			},
			[]string{"kind", "outcome"},
		),
		SubmitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "ledgermcp_submit_duration_seconds",
				Help: "Duration of submit-and-await-finality calls",
			},
			[]string{"kind"},
		),
		Connections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledgermcp_connections_active",
				Help: "Number of live ledger connections",
			},
		),
	}
	reg.MustRegister(m.Submissions, m.SubmitDuration, m.Connections)
	return m
}

// SubmitHooks adapts the metrics into submission engine hooks.
func (m *Metrics) SubmitHooks() submit.Hooks {
	return submit.Hooks{
		OnSubmit: func(kind string, res *domain.SubmissionResult, err error, elapsed time.Duration) {
			outcome := "success"
			if err != nil {
				outcome = "error"
			}
			m.Submissions.WithLabelValues(kind, outcome).Inc()
			m.SubmitDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
		},
	}
}

// ConnHooks adapts the metrics into connection registry hooks.
func (m *Metrics) ConnHooks() conn.Hooks {
	return conn.Hooks{
		OnConnect:    func(string) { m.Connections.Inc() },
		OnDisconnect: func(string) { m.Connections.Dec() },
	}
}
