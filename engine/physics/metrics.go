package physics

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts world queries. A nil *Metrics records nothing.
type Metrics struct {
	queries  prometheus.Counter
	casts    prometheus.Counter
	castHits prometheus.Counter
	overlaps prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		queries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "anima",
			Subsystem: "physics",
			Name:      "queries_total",
			Help:      "Bounding box queries run against the world.",
		}),
		casts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "anima",
			Subsystem: "physics",
			Name:      "casts_total",
			Help:      "Segment casts run against the world.",
		}),
		castHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "anima",
			Subsystem: "physics",
			Name:      "cast_hits_total",
			Help:      "Segment casts that struck an object.",
		}),
		overlaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "anima",
			Subsystem: "physics",
			Name:      "overlaps_total",
			Help:      "Discrete sphere overlap tests run against the world.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.queries, m.casts, m.castHits, m.overlaps} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeQuery() {
	if m != nil {
		m.queries.Inc()
	}
}

func (m *Metrics) observeCast(hit bool) {
	if m == nil {
		return
	}
	m.casts.Inc()
	if hit {
		m.castHits.Inc()
	}
}

func (m *Metrics) observeOverlap() {
	if m != nil {
		m.overlaps.Inc()
	}
}
