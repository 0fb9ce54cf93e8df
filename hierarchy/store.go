package hierarchy

// Store performs a data store of the payload at addr. The hierarchy is
// write-through with no write allocation: an L1 miss never installs the block
// into L1, L2 is always probed and updated, and the payload always reaches
// the backing store, exactly once and at its exact byte range.
func (h *Hierarchy) Store(addr uint64, data []byte) (AccessOutcome, error) {
	l1 := h.l1d
	outcome := AccessOutcome{L1Cache: l1.cache.Name}

	l1Tag, l1Set, l1Offset := l1.cache.Decompose(addr)
	outcome.L1SetID = l1Set

	if way, found := l1.cache.Lookup(l1Set, l1Tag); found {
		h.countHit(l1)
		outcome.L1Hit = true
		l1.cache.WriteBytes(l1Set, way, l1Offset, data)
	} else {
		h.countMiss(l1)
		outcome.L1Miss = true
	}

	if err := h.writeThroughL2(addr, data, &outcome); err != nil {
		return outcome, err
	}

	if err := h.store.WriteBytes(addr, l1.cache.BlockSize, data); err != nil {
		return outcome, err
	}
	outcome.WroteToStore = true

	return outcome, nil
}

func (h *Hierarchy) writeThroughL2(
	addr uint64,
	data []byte,
	outcome *AccessOutcome,
) error {
	tag, setID, offset := h.l2.cache.Decompose(addr)
	outcome.L2SetID = setID

	if way, found := h.l2.cache.Lookup(setID, tag); found {
		h.countHit(h.l2)
		outcome.L2Hit = true
		h.l2.cache.WriteBytes(setID, way, offset, data)
		return nil
	}

	h.countMiss(h.l2)
	outcome.L2Miss = true

	victim := h.l2.cache.FindVictim(setID)
	if h.l2.cache.IsValid(setID, victim) {
		h.countEviction(h.l2)
		outcome.L2Evicted = true
	}

	block, err := h.store.ReadBlock(addr, h.l2.cache.BlockSize)
	if err != nil {
		return err
	}

	h.l2.cache.Fill(setID, victim, tag, block)
	outcome.PlacedInL2 = true

	h.l2.cache.WriteBytes(setID, victim, offset, data)

	return nil
}
