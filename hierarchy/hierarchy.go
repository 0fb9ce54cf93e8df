// Package hierarchy implements the memory-operation protocols over a
// two-level cache hierarchy: a per-processor L1 instruction cache and L1 data
// cache, a shared L2, and a backing store.
//
// The hierarchy is strictly inclusive and write-through with no write
// allocation. Every L1 miss installs the block into L1 regardless of where
// the data was found, and every store is propagated to the backing store
// within the same operation.
package hierarchy

import (
	"sync"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/mem"
)

type cacheWithStats struct {
	cache *cache.Cache
	stats Stats
}

// A Hierarchy owns the three caches and funnels all their refills and
// write-throughs through one backing-store accessor. The trace is replayed by
// a single logical thread; only the stats getters may be called concurrently
// with the replay, e.g. by the monitoring server.
type Hierarchy struct {
	l1i *cacheWithStats
	l1d *cacheWithStats
	l2  *cacheWithStats

	store    *mem.Accessor
	listener StatsListener

	statsLock sync.Mutex
}

// L1ICache returns the L1 instruction cache.
func (h *Hierarchy) L1ICache() *cache.Cache { return h.l1i.cache }

// L1DCache returns the L1 data cache.
func (h *Hierarchy) L1DCache() *cache.Cache { return h.l1d.cache }

// L2Cache returns the shared L2 cache.
func (h *Hierarchy) L2Cache() *cache.Cache { return h.l2.cache }

// L1IStats returns the running counters of the L1 instruction cache.
func (h *Hierarchy) L1IStats() Stats { return h.readStats(h.l1i) }

// L1DStats returns the running counters of the L1 data cache.
func (h *Hierarchy) L1DStats() Stats { return h.readStats(h.l1d) }

// L2Stats returns the running counters of the shared L2 cache.
func (h *Hierarchy) L2Stats() Stats { return h.readStats(h.l2) }

func (h *Hierarchy) readStats(c *cacheWithStats) Stats {
	h.statsLock.Lock()
	defer h.statsLock.Unlock()

	return c.stats
}
