package cache

// A Block is the bookkeeping and data associated with one cache line.
type Block struct {
	Tag      uint64
	SetID    int
	WayID    int
	IsValid  bool
	FIFOTime uint64
	Data     []byte
}

// A Set is a list of blocks where a certain memory block can be stored at.
type Set struct {
	Blocks []Block
}
