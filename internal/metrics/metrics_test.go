package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionOp_CountsByResult(t *testing.T) {
	m := New()

	m.SessionOp("login", nil)
	m.SessionOp("login", errors.New("bad credentials"))
	m.SessionOp("login", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessionOps.WithLabelValues("login", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessionOps.WithLabelValues("login", ResultError)))
}

func TestEditorCollectors(t *testing.T) {
	m := New()

	m.PolygonCommitted()
	m.PolygonCommitted()
	m.PolygonDeleted()
	m.DraftPoints(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.polygons.WithLabelValues("committed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.polygons.WithLabelValues("deleted")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.draftPoints))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.SessionOp("logout", nil)
	m.PolygonCommitted()
	m.PolygonDeleted()
	m.DraftPoints(3)
}

func TestHandler_ServesExposition(t *testing.T) {
	m := New()
	m.PolygonCommitted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `polymap_editor_polygons_total{action="committed"} 1`))
}
