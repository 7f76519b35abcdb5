package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Counters(t *testing.T) {
	m := NewManager()

	m.RecordRefresh(OutcomeOK)
	m.RecordRefresh(OutcomeOK)
	m.RecordRefresh(OutcomeFailed)
	m.RecordAssignmentCommit(OutcomeConflict)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "booking_payroll_record_refreshes_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" {
					counts[label.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{OutcomeOK: 2, OutcomeFailed: 1}, counts)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `booking_payroll_assignment_commits_total{outcome="conflict"} 1`)
}

func TestManager_Namespace(t *testing.T) {
	m := NewManager(WithNamespace("custom"), WithHistogramBuckets([]float64{1}))
	m.RecordBookingCreated()
	m.ObserveAggregation(2 * time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "custom_bookings_created_total 1")
	assert.Contains(t, body, `custom_payroll_aggregation_seconds_bucket{le="1"} 1`)
	assert.NotContains(t, body, "booking_payroll_")
}

func TestManager_NilIsNoop(t *testing.T) {
	var m *Manager

	assert.NotPanics(t, func() {
		m.RecordRefresh(OutcomeOK)
		m.RecordStaleSnapshot()
		m.RecordAssignmentCommit(OutcomeOK)
		m.RecordBookingCreated()
		m.RecordWorkerCreated()
		m.ObserveAggregation(time.Second)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
