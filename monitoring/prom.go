package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromListener exports counter increments as Prometheus counters, labeled by
// cache name. Prometheus counters are goroutine-safe, so the listener can be
// scraped while the replay runs.
type PromListener struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	evictions *prometheus.CounterVec
}

// NewPromListener constructs a listener registered with reg. A nil reg falls
// back to the default registerer.
func NewPromListener(reg prometheus.Registerer) *PromListener {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	l := &PromListener{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cachesim",
			Name:      "hits_total",
			Help:      "Cache hits per cache",
		}, []string{"cache"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cachesim",
			Name:      "misses_total",
			Help:      "Cache misses per cache",
		}, []string{"cache"}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cachesim",
			Name:      "evictions_total",
			Help:      "Cache evictions per cache",
		}, []string{"cache"}),
	}

	reg.MustRegister(l.hits, l.misses, l.evictions)

	return l
}

// Hit counts one hit in the named cache.
func (l *PromListener) Hit(cache string) {
	l.hits.WithLabelValues(cache).Inc()
}

// Miss counts one miss in the named cache.
func (l *PromListener) Miss(cache string) {
	l.misses.WithLabelValues(cache).Inc()
}

// Eviction counts one eviction in the named cache.
func (l *PromListener) Eviction(cache string) {
	l.evictions.WithLabelValues(cache).Inc()
}
