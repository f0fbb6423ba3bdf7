package metrics

import "github.com/prometheus/client_golang/prometheus"

// PlannerMetrics exposes counters/histograms for the planner host.
type PlannerMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	bookingsTotal  *prometheus.CounterVec
	appointments   prometheus.Gauge
	weekCacheTotal *prometheus.CounterVec
	snapshotsTotal *prometheus.CounterVec
}

func NewPlannerMetrics(reg prometheus.Registerer) *PlannerMetrics {
	m := &PlannerMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kitplanner",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route and status class",
		}, []string{"route", "code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kitplanner",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kitplanner",
			Subsystem: "planner",
			Name:      "bookings_total",
			Help:      "Appointment mutations by action and outcome",
		}, []string{"action", "outcome"}),
		appointments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "kitplanner",
			Subsystem: "planner",
			Name:      "appointments",
			Help:      "Appointments currently held in memory",
		}),
		weekCacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kitplanner",
			Subsystem: "planner",
			Name:      "week_cache_total",
			Help:      "Week view cache lookups by result",
		}, []string{"result"}),
		snapshotsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kitplanner",
			Subsystem: "snapshot",
			Name:      "captures_total",
			Help:      "Headless planner captures by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency, m.bookingsTotal, m.appointments, m.weekCacheTotal, m.snapshotsTotal)
	return m
}

func (m *PlannerMetrics) ObserveRequest(route, code string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, code).Inc()
	m.requestLatency.WithLabelValues(route).Observe(seconds)
}

// ObserveBooking records a create/delete attempt; err == nil counts as "ok".
func (m *PlannerMetrics) ObserveBooking(action string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.bookingsTotal.WithLabelValues(action, outcome).Inc()
}

func (m *PlannerMetrics) SetAppointments(n int) {
	if m == nil {
		return
	}
	m.appointments.Set(float64(n))
}

func (m *PlannerMetrics) ObserveWeekCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.weekCacheTotal.WithLabelValues(result).Inc()
}

func (m *PlannerMetrics) ObserveSnapshot(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.snapshotsTotal.WithLabelValues(outcome).Inc()
}
