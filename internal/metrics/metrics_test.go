package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveLoad("file", 20*time.Millisecond, 64, nil)
	m.ObserveLoad("file", time.Millisecond, 0, errors.New("boom"))
	m.ObserveMatchup("A", "Solid")
	m.ObserveMatchup("A", "Solid")
	m.ObserveLookupFailure("team_not_found")

	out := scrape(t, reg)
	assert.Contains(t, out, `matchup_dataset_loads_total{result="ok",source="file"} 1`)
	assert.Contains(t, out, `matchup_dataset_loads_total{result="error",source="file"} 1`)
	assert.Contains(t, out, `matchup_teams_loaded 64`)
	assert.Contains(t, out, `matchup_matchups_resolved_total{lean="Solid",outcome="A"} 2`)
	assert.Contains(t, out, `matchup_lookup_failures_total{reason="team_not_found"} 1`)
	assert.Contains(t, out, `matchup_dataset_load_duration_seconds_count 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveLoad("file", time.Second, 1, nil)
		m.ObserveMatchup("push", "Push")
		m.ObserveLookupFailure("x")
	})
}
