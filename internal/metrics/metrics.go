// Package metrics exposes prometheus instrumentation for the relay.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Push result labels.
const (
	ResultOK          = "ok"
	ResultBadToken    = "bad_token"
	ResultIgnored     = "ignored"
	ResultWrongSource = "wrong_source"
	ResultError       = "error"
)

type Metrics struct {
	PushesTotal      *prometheus.CounterVec
	SelectionsTotal  prometheus.Counter
	CatchupsTotal    prometheus.Counter
	ConnectedViewers prometheus.Gauge

	registry *prometheus.Registry
}

func New() *Metrics {
	m := &Metrics{
		PushesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gsi_pushes_total",
			Help: "Total count of GSI pushes received, by processing result.",
		}, []string{"result"}),
		SelectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "draft_selections_total",
			Help: "Total selection events broadcast to viewers.",
		}),
		CatchupsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "draft_catchups_total",
			Help: "Total catch-up (InitDraft) payloads served to viewers.",
		}),
		ConnectedViewers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "connected_viewers",
			Help: "Number of viewer websocket connections currently registered.",
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.PushesTotal, m.SelectionsTotal, m.CatchupsTotal, m.ConnectedViewers)
	return m
}

// Handler serves the exposition endpoint for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
