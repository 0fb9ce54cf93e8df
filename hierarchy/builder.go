package hierarchy

import (
	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/mem"
)

// A Builder can build hierarchies.
type Builder struct {
	l1iSetBits, l1iWays, l1iOffsetBits int
	l1dSetBits, l1dWays, l1dOffsetBits int
	l2SetBits, l2Ways, l2OffsetBits    int

	storage  mem.Storage
	listener StatsListener
}

// MakeBuilder returns a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		l1iSetBits: 1, l1iWays: 2, l1iOffsetBits: 4,
		l1dSetBits: 1, l1dWays: 2, l1dOffsetBits: 4,
		l2SetBits: 2, l2Ways: 2, l2OffsetBits: 4,
	}
}

// WithL1IGeometry sets the geometry of the L1 instruction cache as
// (set-index bits, associativity, block-offset bits).
func (b Builder) WithL1IGeometry(setBits, ways, offsetBits int) Builder {
	b.l1iSetBits, b.l1iWays, b.l1iOffsetBits = setBits, ways, offsetBits
	return b
}

// WithL1DGeometry sets the geometry of the L1 data cache.
func (b Builder) WithL1DGeometry(setBits, ways, offsetBits int) Builder {
	b.l1dSetBits, b.l1dWays, b.l1dOffsetBits = setBits, ways, offsetBits
	return b
}

// WithL2Geometry sets the geometry of the shared L2 cache.
func (b Builder) WithL2Geometry(setBits, ways, offsetBits int) Builder {
	b.l2SetBits, b.l2Ways, b.l2OffsetBits = setBits, ways, offsetBits
	return b
}

// WithStorage sets the backing storage of the hierarchy.
func (b Builder) WithStorage(storage mem.Storage) Builder {
	b.storage = storage
	return b
}

// WithStatsListener sets a listener that observes every counter increment.
func (b Builder) WithStatsListener(listener StatsListener) Builder {
	b.listener = listener
	return b
}

// Build builds the hierarchy.
func (b Builder) Build() *Hierarchy {
	if b.storage == nil {
		panic("hierarchy requires a backing storage")
	}

	h := &Hierarchy{
		store:    mem.NewAccessor(b.storage),
		listener: b.listener,
	}

	h.l1i = &cacheWithStats{cache: cache.MakeBuilder().
		WithNumSetBits(b.l1iSetBits).
		WithNumWays(b.l1iWays).
		WithNumOffsetBits(b.l1iOffsetBits).
		Build("L1I")}

	h.l1d = &cacheWithStats{cache: cache.MakeBuilder().
		WithNumSetBits(b.l1dSetBits).
		WithNumWays(b.l1dWays).
		WithNumOffsetBits(b.l1dOffsetBits).
		Build("L1D")}

	h.l2 = &cacheWithStats{cache: cache.MakeBuilder().
		WithNumSetBits(b.l2SetBits).
		WithNumWays(b.l2Ways).
		WithNumOffsetBits(b.l2OffsetBits).
		Build("L2")}

	return h
}
