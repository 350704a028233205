package entitycase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts single-entity fetch outcomes per keyspace. A nil
// *Metrics is valid and records nothing, so minimal wirings and tests can
// skip registration.
type Metrics struct {
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
	absent *prometheus.CounterVec
}

// NewMetrics registers the lookup counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		hits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "entity_cache_hits_total",
			Help: "Single-entity fetches served from the cache.",
		}, []string{"keyspace"}),
		misses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "entity_cache_misses_total",
			Help: "Single-entity fetches that fell through to the store.",
		}, []string{"keyspace"}),
		absent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "entity_fetch_not_found_total",
			Help: "Single-entity fetches addressing an absent record.",
		}, []string{"keyspace"}),
	}
}

func (m *Metrics) recordHit(keyspace string) {
	if m != nil {
		m.hits.WithLabelValues(keyspace).Inc()
	}
}

func (m *Metrics) recordMiss(keyspace string) {
	if m != nil {
		m.misses.WithLabelValues(keyspace).Inc()
	}
}

func (m *Metrics) recordAbsent(keyspace string) {
	if m != nil {
		m.absent.WithLabelValues(keyspace).Inc()
	}
}
