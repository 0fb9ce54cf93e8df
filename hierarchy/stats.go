package hierarchy

// Stats accumulates the counters of one cache across a run.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// A StatsListener observes counter increments as they happen, e.g. to export
// them to a metrics backend. The cache argument is the cache's name.
type StatsListener interface {
	Hit(cache string)
	Miss(cache string)
	Eviction(cache string)
}

func (h *Hierarchy) countHit(c *cacheWithStats) {
	h.statsLock.Lock()
	c.stats.Hits++
	h.statsLock.Unlock()

	if h.listener != nil {
		h.listener.Hit(c.cache.Name)
	}
}

func (h *Hierarchy) countMiss(c *cacheWithStats) {
	h.statsLock.Lock()
	c.stats.Misses++
	h.statsLock.Unlock()

	if h.listener != nil {
		h.listener.Miss(c.cache.Name)
	}
}

func (h *Hierarchy) countEviction(c *cacheWithStats) {
	h.statsLock.Lock()
	c.stats.Evictions++
	h.statsLock.Unlock()

	if h.listener != nil {
		h.listener.Eviction(c.cache.Name)
	}
}
