package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ClientsRegistered   prometheus.Counter
	VerifiersRegistered prometheus.Counter
	ActorsDeactivated   *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		ClientsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skillproof_clients_registered_total",
			Help: "Total number of clients registered",
		}),
		VerifiersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skillproof_verifiers_registered_total",
			Help: "Total number of verifiers registered",
		}),
		ActorsDeactivated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "skillproof_actors_deactivated_total",
			Help: "Total number of actor deactivations by role",
		}, []string{"role"}),
	}
}

func (m *Metrics) IncrementClientsRegistered() {
	m.ClientsRegistered.Inc()
}

func (m *Metrics) IncrementVerifiersRegistered() {
	m.VerifiersRegistered.Inc()
}

func (m *Metrics) IncrementDeactivated(role string) {
	m.ActorsDeactivated.WithLabelValues(role).Inc()
}
