package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckSweepMetrics records metadata for the periodic fleet check sweep.
type CheckSweepMetrics struct {
	duration      *prometheus.HistogramVec
	success       *prometheus.CounterVec
	failure       *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewCheckSweepMetrics registers the sweep metrics on the provided registerer.
func NewCheckSweepMetrics(reg prometheus.Registerer) *CheckSweepMetrics {
	if reg == nil {
		return &CheckSweepMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fleet_check_duration_seconds",
		Help:    "Duration of fleet check sweeps in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"check"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_check_success",
		Help: "Successful fleet check executions.",
	}, []string{"check"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_check_failure",
		Help: "Failed fleet check executions.",
	}, []string{"check"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_notifications_emitted_total",
		Help: "Notifications emitted by the threshold evaluator.",
	}, []string{"type"})
	reg.MustRegister(duration, success, failure, notifications)
	return &CheckSweepMetrics{
		duration:      duration,
		success:       success,
		failure:       failure,
		notifications: notifications,
	}
}

// ObserveDuration records the duration for the named check.
func (c *CheckSweepMetrics) ObserveDuration(check string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(check)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named check.
func (c *CheckSweepMetrics) IncSuccess(check string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(check)).Inc()
}

// IncFailure increments the failure counter for the named check.
func (c *CheckSweepMetrics) IncFailure(check string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(check)).Inc()
}

// IncNotification counts one emitted notification of the given type.
func (c *CheckSweepMetrics) IncNotification(notificationType string) {
	if c == nil || c.notifications == nil {
		return
	}
	c.notifications.WithLabelValues(normalizeLabel(notificationType)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
