package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func find(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestRecordAnalysis(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordAnalysis("EXPIRED_GRACE", 200*time.Millisecond)
	c.RecordAnalysis("EXPIRED_GRACE", 100*time.Millisecond)
	c.RecordAnalysis("AVAILABLE", 50*time.Millisecond)

	mf := find(t, reg, "domain_recovery_analyses_total")
	counts := map[string]float64{}
	for _, m := range mf.GetMetric() {
		counts[labelValue(m, "state")] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"EXPIRED_GRACE": 2, "AVAILABLE": 1}, counts)

	hist := find(t, reg, "domain_recovery_analysis_duration_seconds")
	assert.Equal(t, uint64(3), hist.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestRecordCollectorFailureAndValuation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCollectorFailure("whois")
	c.RecordValuation("B+")

	failures := find(t, reg, "domain_recovery_collector_failures_total")
	require.Len(t, failures.GetMetric(), 1)
	assert.Equal(t, "whois", labelValue(failures.GetMetric()[0], "source"))

	grades := find(t, reg, "domain_recovery_valuations_total")
	assert.Equal(t, "B+", labelValue(grades.GetMetric()[0], "grade"))
}

func TestRecordNotification(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordNotification("telegram", true)
	c.RecordNotification("telegram", false)

	mf := find(t, reg, "domain_recovery_notifications_total")
	results := map[string]bool{}
	for _, m := range mf.GetMetric() {
		results[labelValue(m, "result")] = true
	}
	assert.Equal(t, map[string]bool{"ok": true, "error": true}, results)
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg).RecordValuation("A")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `domain_recovery_valuations_total{grade="A"} 1`)
}
