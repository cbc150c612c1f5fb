// Package metrics exposes Prometheus counters for session and editor
// activity on a private registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for session operations.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics groups the collectors recorded by the session and editor layers.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	sessionOps  *prometheus.CounterVec
	polygons    *prometheus.CounterVec
	draftPoints prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "polymap",
			Name:      "session_operations_total",
			Help:      "Session operations by kind and outcome.",
		}, []string{"op", "result"}),
		polygons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "polymap",
			Name:      "editor_polygons_total",
			Help:      "Polygons committed or deleted by the editor.",
		}, []string{"action"}),
		draftPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "polymap",
			Name:      "editor_draft_points",
			Help:      "Points in the polygon currently being drawn.",
		}),
	}
	m.registry.MustRegister(m.sessionOps, m.polygons, m.draftPoints)
	return m
}

// SessionOp records one login/register/logout outcome.
func (m *Metrics) SessionOp(op string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.sessionOps.WithLabelValues(op, result).Inc()
}

// PolygonCommitted counts a polygon appended by the editor.
func (m *Metrics) PolygonCommitted() {
	if m == nil {
		return
	}
	m.polygons.WithLabelValues("committed").Inc()
}

// PolygonDeleted counts a polygon removed by the editor.
func (m *Metrics) PolygonDeleted() {
	if m == nil {
		return
	}
	m.polygons.WithLabelValues("deleted").Inc()
}

// DraftPoints sets the size of the in-progress polygon.
func (m *Metrics) DraftPoints(n int) {
	if m == nil {
		return
	}
	m.draftPoints.Set(float64(n))
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
