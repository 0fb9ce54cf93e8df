package hierarchy

// Modify performs a read-modify-write at addr: a Load immediately followed by
// a Store of the payload, as two full protocol invocations sharing the same
// counters. A Modify can therefore count up to two hits, misses, or evictions
// per level.
func (h *Hierarchy) Modify(
	addr uint64,
	data []byte,
) (loadOutcome, storeOutcome AccessOutcome, err error) {
	loadOutcome, err = h.Load(addr)
	if err != nil {
		return loadOutcome, storeOutcome, err
	}

	storeOutcome, err = h.Store(addr, data)

	return loadOutcome, storeOutcome, err
}
