package cache

// A VictimFinder decides which way of a set an incoming block should replace.
type VictimFinder interface {
	FindVictim(set *Set) int
}

// FIFOVictimFinder selects the first invalid way in scan order. If all the
// ways are valid, it selects the way that was filled longest ago. Hits never
// refresh a block's fill time, so the order is strictly fill order.
type FIFOVictimFinder struct {
}

// NewFIFOVictimFinder returns a newly constructed FIFO victim finder.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	f := new(FIFOVictimFinder)
	return f
}

// FindVictim returns the way ID of the block to replace.
func (f *FIFOVictimFinder) FindVictim(set *Set) int {
	oldest := 0
	oldestTime := set.Blocks[0].FIFOTime

	for i := range set.Blocks {
		block := &set.Blocks[i]

		if !block.IsValid {
			return i
		}

		if block.FIFOTime < oldestTime {
			oldestTime = block.FIFOTime
			oldest = i
		}
	}

	return oldest
}
