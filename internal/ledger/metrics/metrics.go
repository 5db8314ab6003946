package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	VerificationsSubmitted prometheus.Counter
	VerificationsApproved  prometheus.Counter
	VerificationsRejected  prometheus.Counter
	SubmitDuration         prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		VerificationsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skillproof_verifications_submitted_total",
			Help: "Total number of verification claims submitted",
		}),
		VerificationsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skillproof_verifications_approved_total",
			Help: "Total number of verification claims approved",
		}),
		VerificationsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skillproof_verifications_rejected_total",
			Help: "Total number of verification claims rejected",
		}),
		SubmitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "skillproof_submit_duration_seconds",
			Help:    "Duration of claim submissions (write critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementSubmitted() {
	m.VerificationsSubmitted.Inc()
}

func (m *Metrics) IncrementApproved() {
	m.VerificationsApproved.Inc()
}

func (m *Metrics) IncrementRejected() {
	m.VerificationsRejected.Inc()
}

func (m *Metrics) ObserveSubmit(start time.Time) {
	m.SubmitDuration.Observe(time.Since(start).Seconds())
}
