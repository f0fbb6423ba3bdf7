package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPlannerMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPlannerMetrics(reg)

	m.ObserveRequest("/", "2xx", 0.01)
	m.ObserveBooking("create", nil)
	m.ObserveBooking("create", errors.New("invalid"))
	m.ObserveBooking("delete", nil)
	m.SetAppointments(3)
	m.ObserveWeekCache(true)
	m.ObserveWeekCache(false)
	m.ObserveWeekCache(false)
	m.ObserveSnapshot(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues("create", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.appointments))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.weekCacheTotal.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/", "2xx")))
}

func TestPlannerMetricsNilSafe(t *testing.T) {
	var m *PlannerMetrics
	m.ObserveRequest("/", "2xx", 0.1)
	m.ObserveBooking("create", nil)
	m.SetAppointments(1)
	m.ObserveWeekCache(true)
	m.ObserveSnapshot(errors.New("boom"))
}
