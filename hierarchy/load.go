package hierarchy

// Load performs a data load at addr through the L1 data cache.
func (h *Hierarchy) Load(addr uint64) (AccessOutcome, error) {
	return h.loadThrough(h.l1d, addr)
}

// Fetch performs an instruction fetch at addr through the L1 instruction
// cache. It follows the same protocol as Load.
func (h *Hierarchy) Fetch(addr uint64) (AccessOutcome, error) {
	return h.loadThrough(h.l1i, addr)
}

func (h *Hierarchy) loadThrough(
	l1 *cacheWithStats,
	addr uint64,
) (AccessOutcome, error) {
	outcome := AccessOutcome{L1Cache: l1.cache.Name}

	l1Tag, l1Set, _ := l1.cache.Decompose(addr)
	outcome.L1SetID = l1Set

	if _, found := l1.cache.Lookup(l1Set, l1Tag); found {
		h.countHit(l1)
		outcome.L1Hit = true
		return outcome, nil
	}

	h.countMiss(l1)
	outcome.L1Miss = true

	l2Tag, l2Set, _ := h.l2.cache.Decompose(addr)
	outcome.L2SetID = l2Set

	if _, found := h.l2.cache.Lookup(l2Set, l2Tag); found {
		// An L2 hit does not refresh the block's FIFO order.
		h.countHit(h.l2)
		outcome.L2Hit = true
	} else {
		h.countMiss(h.l2)
		outcome.L2Miss = true

		victim := h.l2.cache.FindVictim(l2Set)
		if h.l2.cache.IsValid(l2Set, victim) {
			h.countEviction(h.l2)
			outcome.L2Evicted = true
		}

		block, err := h.store.ReadBlock(addr, h.l2.cache.BlockSize)
		if err != nil {
			return outcome, err
		}

		h.l2.cache.Fill(l2Set, victim, l2Tag, block)
		outcome.PlacedInL2 = true
	}

	// Always install into L1 after a miss, wherever the data was found. The
	// block is re-read from the backing store rather than copied out of L2;
	// the two are byte-identical under write-through.
	victim := l1.cache.FindVictim(l1Set)
	if l1.cache.IsValid(l1Set, victim) {
		h.countEviction(l1)
		outcome.L1Evicted = true
	}

	block, err := h.store.ReadBlock(addr, l1.cache.BlockSize)
	if err != nil {
		return outcome, err
	}

	l1.cache.Fill(l1Set, victim, l1Tag, block)
	outcome.PlacedInL1 = true

	return outcome, nil
}
