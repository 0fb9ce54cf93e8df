package cache

// DecomposeAddress splits an address into the tag, the set index, and the
// in-block offset, given a geometry of numSetBits set-index bits and
// numOffsetBits block-offset bits.
func DecomposeAddress(
	addr uint64,
	numSetBits, numOffsetBits int,
) (tag uint64, setID, offset int) {
	offset = int(addr & (uint64(1)<<numOffsetBits - 1))
	setID = int((addr >> numOffsetBits) & (uint64(1)<<numSetBits - 1))
	tag = addr >> (numSetBits + numOffsetBits)

	return tag, setID, offset
}
