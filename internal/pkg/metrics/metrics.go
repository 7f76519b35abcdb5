// Package metrics exposes Prometheus counters for the booking and payroll service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for the aggregation latency histogram.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// Manager owns a private registry and the service metrics registered on it.
// A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	recordRefreshes     *prometheus.CounterVec
	staleSnapshots      prometheus.Counter
	assignmentCommits   *prometheus.CounterVec
	bookingsCreated     prometheus.Counter
	workersCreated      prometheus.Counter
	aggregationDuration prometheus.Histogram
}

// NewManager creates a Manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "booking_payroll",
		histogramBuckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.registry.MustRegister(collectors.NewGoCollector())
	auto := promauto.With(m.registry)

	m.recordRefreshes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "record_refreshes_total",
		Help:      "Booking and worker record refreshes by outcome",
	}, []string{"outcome"})

	m.staleSnapshots = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "stale_snapshots_served_total",
		Help:      "Responses served from the previous snapshot after a failed refresh",
	})

	m.assignmentCommits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "assignment_commits_total",
		Help:      "Pay-split assignment commits by outcome",
	}, []string{"outcome"})

	m.bookingsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "bookings_created_total",
		Help:      "Bookings submitted through the public booking form",
	})

	m.workersCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "workers_created_total",
		Help:      "Workers added by admins",
	})

	m.aggregationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "payroll_aggregation_seconds",
		Help:      "Time spent classifying, aggregating and reducing one snapshot",
		Buckets:   m.histogramBuckets,
	})

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Manager) RecordRefresh(outcome string) {
	if m == nil {
		return
	}
	m.recordRefreshes.WithLabelValues(outcome).Inc()
}

func (m *Manager) RecordStaleSnapshot() {
	if m == nil {
		return
	}
	m.staleSnapshots.Inc()
}

func (m *Manager) RecordAssignmentCommit(outcome string) {
	if m == nil {
		return
	}
	m.assignmentCommits.WithLabelValues(outcome).Inc()
}

func (m *Manager) RecordBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

func (m *Manager) RecordWorkerCreated() {
	if m == nil {
		return
	}
	m.workersCreated.Inc()
}

func (m *Manager) ObserveAggregation(d time.Duration) {
	if m == nil {
		return
	}
	m.aggregationDuration.Observe(d.Seconds())
}
