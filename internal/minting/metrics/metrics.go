package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TokensMinted  prometheus.Counter
	FeesCollected prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		TokensMinted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skillproof_tokens_minted_total",
			Help: "Total number of credential tokens minted",
		}),
		FeesCollected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skillproof_minting_fees_collected_base_units_total",
			Help: "Total minting fees collected, in base monetary units",
		}),
	}
}

func (m *Metrics) IncrementMinted() {
	m.TokensMinted.Inc()
}

func (m *Metrics) AddFeesCollected(amount uint64) {
	m.FeesCollected.Add(float64(amount))
}
