package waitlist

import (
	"github.com/akeren/waitlist-api/internal/mailer"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts signup outcomes. A nil *Metrics records nothing.
type Metrics struct {
	signups *prometheus.CounterVec
	syncs   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		signups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waitlist_signups_total",
				Help: "Waitlist signup attempts by outcome.",
			},
			[]string{"outcome"},
		),
		syncs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waitlist_mailer_sync_total",
				Help: "Mailing list sync results for accepted signups.",
			},
			[]string{"result"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.signups, m.syncs)
	}
	return m
}

func (m *Metrics) observeSignup(outcome string) {
	if m == nil {
		return
	}
	m.signups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeSync(result mailer.SyncResult) {
	if m == nil {
		return
	}

	label := "skipped"
	switch {
	case result.Synced():
		label = "synced"
	case result.Attempted:
		label = "failed"
	}
	m.syncs.WithLabelValues(label).Inc()
}
