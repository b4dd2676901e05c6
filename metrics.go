package lru

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors a Cache reports into.
// A nil *Metrics records nothing.
type Metrics struct {
	Hits      prometheus.Counter
	Misses    prometheus.Counter
	Evictions prometheus.Counter
	Entries   prometheus.Gauge
	Capacity  prometheus.Gauge
}

// NewMetrics creates cache metrics under namespace and registers them with
// reg. A nil reg leaves the collectors unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Lookups that found their key",
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Lookups that did not find their key",
		}),
		Evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Entries evicted to make room for a new key",
		}),
		Entries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Current number of resident entries",
		}),
		Capacity: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "capacity",
			Help:      "Maximum number of resident entries",
		}),
	}
}

func (m *Metrics) recordGet(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.Hits.Inc()
	} else {
		m.Misses.Inc()
	}
}

func (m *Metrics) recordAdd(evicted bool, entries int) {
	if m == nil {
		return
	}
	if evicted {
		m.Evictions.Inc()
	}
	m.Entries.Set(float64(entries))
}

func (m *Metrics) setEntries(entries int) {
	if m == nil {
		return
	}
	m.Entries.Set(float64(entries))
}

func (m *Metrics) setCapacity(size int) {
	if m == nil {
		return
	}
	m.Capacity.Set(float64(size))
}
