// Package cache provides a set-associative cache with FIFO replacement, used
// as the building block of the simulated memory hierarchy.
package cache

import "fmt"

// A Cache is a set-associative array of blocks. The geometry is fixed at
// construction time: 2^NumSetBits sets, NumWays ways per set, and
// 2^NumOffsetBits bytes per block.
type Cache struct {
	Name string

	NumSetBits    int
	NumWays       int
	NumOffsetBits int

	NumSets   int
	BlockSize int

	Sets []Set

	fifoTime     uint64
	victimFinder VictimFinder
}

// Decompose splits an address according to the cache's own geometry.
func (c *Cache) Decompose(addr uint64) (tag uint64, setID, offset int) {
	return DecomposeAddress(addr, c.NumSetBits, c.NumOffsetBits)
}

// Lookup scans the set for a valid block carrying the tag. It returns the way
// ID of the block and whether such a block exists. At most one valid block per
// set can carry a given tag.
func (c *Cache) Lookup(setID int, tag uint64) (wayID int, found bool) {
	set := &c.Sets[setID]

	for i := range set.Blocks {
		block := &set.Blocks[i]
		if block.IsValid && block.Tag == tag {
			return i, true
		}
	}

	return 0, false
}

// FindVictim returns the way ID of the block that an incoming block should
// replace, following the cache's replacement policy.
func (c *Cache) FindVictim(setID int) int {
	return c.victimFinder.FindVictim(&c.Sets[setID])
}

// IsValid reports whether the block at the given position currently holds
// valid data.
func (c *Cache) IsValid(setID, wayID int) bool {
	return c.Sets[setID].Blocks[wayID].IsValid
}

// Fill installs a block. It marks the way valid, sets the tag, stamps the
// block with the cache's global fill time, and copies data into the block's
// buffer. Fill does not report evictions; callers that need to count them must
// check IsValid before filling.
func (c *Cache) Fill(setID, wayID int, tag uint64, data []byte) {
	if len(data) != c.BlockSize {
		panic(fmt.Sprintf("cache %s: filling %d bytes into a %d-byte block",
			c.Name, len(data), c.BlockSize))
	}

	block := &c.Sets[setID].Blocks[wayID]
	block.IsValid = true
	block.Tag = tag
	block.FIFOTime = c.fifoTime
	c.fifoTime++

	copy(block.Data, data)
}

// WriteBytes overwrites part of a block's data at the given in-block offset,
// leaving the rest of the block untouched. The write must not cross the block
// boundary.
func (c *Cache) WriteBytes(setID, wayID, offset int, data []byte) {
	if offset+len(data) > c.BlockSize {
		panic(fmt.Sprintf(
			"cache %s: write of %d bytes at offset %d crosses the block boundary",
			c.Name, len(data), offset))
	}

	block := &c.Sets[setID].Blocks[wayID]
	copy(block.Data[offset:], data)
}

// A LineState is one block's contents as captured by Snapshot.
type LineState struct {
	IsValid  bool
	Tag      uint64
	FIFOTime uint64
	Data     []byte
}

// A SetState is the captured state of all the ways of one set.
type SetState struct {
	Lines []LineState
}

// Snapshot captures the terminal contents of the cache without mutating it.
// Block data is copied, so later operations do not alias into the snapshot.
func (c *Cache) Snapshot() []SetState {
	states := make([]SetState, c.NumSets)

	for i := range c.Sets {
		set := &c.Sets[i]
		states[i].Lines = make([]LineState, len(set.Blocks))

		for j := range set.Blocks {
			block := &set.Blocks[j]
			data := make([]byte, len(block.Data))
			copy(data, block.Data)

			states[i].Lines[j] = LineState{
				IsValid:  block.IsValid,
				Tag:      block.Tag,
				FIFOTime: block.FIFOTime,
				Data:     data,
			}
		}
	}

	return states
}

// Reset marks every block invalid and rewinds the fill clock.
func (c *Cache) Reset() {
	c.fifoTime = 0
	c.Sets = make([]Set, c.NumSets)

	for i := 0; i < c.NumSets; i++ {
		for j := 0; j < c.NumWays; j++ {
			block := Block{
				SetID: i,
				WayID: j,
				Data:  make([]byte, c.BlockSize),
			}

			c.Sets[i].Blocks = append(c.Sets[i].Blocks, block)
		}
	}
}
