package cache

// A Builder can build caches.
type Builder struct {
	numSetBits    int
	numWays       int
	numOffsetBits int
	victimFinder  VictimFinder
}

// MakeBuilder returns a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		numSetBits:    1,
		numWays:       2,
		numOffsetBits: 4,
	}
}

// WithNumSetBits sets the number of set-index bits. The cache will have
// 2^numSetBits sets.
func (b Builder) WithNumSetBits(numSetBits int) Builder {
	b.numSetBits = numSetBits
	return b
}

// WithNumWays sets the associativity of the cache.
func (b Builder) WithNumWays(numWays int) Builder {
	b.numWays = numWays
	return b
}

// WithNumOffsetBits sets the number of block-offset bits. Blocks are
// 2^numOffsetBits bytes long.
func (b Builder) WithNumOffsetBits(numOffsetBits int) Builder {
	b.numOffsetBits = numOffsetBits
	return b
}

// WithVictimFinder sets the replacement policy of the cache.
func (b Builder) WithVictimFinder(victimFinder VictimFinder) Builder {
	b.victimFinder = victimFinder
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.numSetBits < 0 || b.numOffsetBits < 0 {
		panic("cache geometry bits must be non-negative")
	}

	if b.numWays < 1 {
		panic("cache must have at least one way per set")
	}
}

// Build builds a cache with the given name.
func (b Builder) Build(name string) *Cache {
	b.parametersMustBeValid()

	c := &Cache{
		Name:          name,
		NumSetBits:    b.numSetBits,
		NumWays:       b.numWays,
		NumOffsetBits: b.numOffsetBits,
		NumSets:       1 << b.numSetBits,
		BlockSize:     1 << b.numOffsetBits,
		victimFinder:  b.victimFinder,
	}

	if c.victimFinder == nil {
		c.victimFinder = NewFIFOVictimFinder()
	}

	c.Reset()

	return c
}
