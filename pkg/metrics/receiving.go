package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReceivingMetrics records counters for goods receipt processing.
type ReceivingMetrics struct {
	duration  *prometheus.HistogramVec
	accepted  *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	conflicts prometheus.Counter
}

// NewReceivingMetrics registers the receiving metrics on the provided registerer.
func NewReceivingMetrics(reg prometheus.Registerer) *ReceivingMetrics {
	if reg == nil {
		return &ReceivingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "receipt_duration_seconds",
		Help:    "Duration of goods receipt processing in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "receipts_accepted_total",
		Help: "Goods receipts committed successfully.",
	}, []string{"organization"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "receipts_rejected_total",
		Help: "Goods receipts rejected, labelled by error code.",
	}, []string{"code"})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "receipt_lock_conflicts_total",
		Help: "Receipt transactions aborted by row lock contention.",
	})
	reg.MustRegister(duration, accepted, rejected, conflicts)
	return &ReceivingMetrics{
		duration:  duration,
		accepted:  accepted,
		rejected:  rejected,
		conflicts: conflicts,
	}
}

// ObserveDuration records processing time for the given outcome.
func (m *ReceivingMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncAccepted increments the accepted counter for the organization.
func (m *ReceivingMetrics) IncAccepted(organization string) {
	if m == nil || m.accepted == nil {
		return
	}
	m.accepted.WithLabelValues(normalizeLabel(organization)).Inc()
}

// IncRejected increments the rejected counter for the error code.
func (m *ReceivingMetrics) IncRejected(code string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(code)).Inc()
}

// IncLockConflict increments the lock contention counter.
func (m *ReceivingMetrics) IncLockConflict() {
	if m == nil || m.conflicts == nil {
		return
	}
	m.conflicts.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
