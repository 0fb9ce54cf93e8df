// Package report renders the terminal state of a run: per-cache content dumps
// and the hit/miss/eviction summary.
package report

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/hierarchy"
)

// WriteCacheState writes a cache snapshot in the dump format: one stanza per
// set, one line per way. Invalid ways carry no tag or data.
func WriteCacheState(w io.Writer, snapshot []cache.SetState) error {
	for setID, set := range snapshot {
		if _, err := fmt.Fprintf(w, "Set %d:\n", setID); err != nil {
			return err
		}

		for wayID, line := range set.Lines {
			var err error
			if line.IsValid {
				_, err = fmt.Fprintf(w,
					"  Line %d: Valid=1, Tag=0x%x, Time=%d, Data=%s\n",
					wayID, line.Tag, line.FIFOTime, hex.EncodeToString(line.Data))
			} else {
				_, err = fmt.Fprintf(w, "  Line %d: Valid=0, Tag=-\n", wayID)
			}
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// DumpCacheToFile writes a cache's snapshot to a file, truncating it first.
func DumpCacheToFile(c *cache.Cache, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating dump file: %w", err)
	}
	defer f.Close()

	return WriteCacheState(f, c.Snapshot())
}

// WriteStatsLine writes one cache's counters as
// "<name>-hits:<n> <name>-misses:<n> <name>-evictions:<n>".
func WriteStatsLine(w io.Writer, name string, s hierarchy.Stats) error {
	_, err := fmt.Fprintf(w, "%s-hits:%d %s-misses:%d %s-evictions:%d\n",
		name, s.Hits, name, s.Misses, name, s.Evictions)
	return err
}

// WriteSummary writes the three stats lines of a hierarchy in the
// L1I, L1D, L2 order.
func WriteSummary(w io.Writer, h *hierarchy.Hierarchy) error {
	if err := WriteStatsLine(w, "L1I", h.L1IStats()); err != nil {
		return err
	}
	if err := WriteStatsLine(w, "L1D", h.L1DStats()); err != nil {
		return err
	}
	return WriteStatsLine(w, "L2", h.L2Stats())
}

// DumpFinalState writes the three cache dumps with the given filename prefix,
// producing <prefix>L1I_final.txt, <prefix>L1D_final.txt, and
// <prefix>L2_final.txt.
func DumpFinalState(h *hierarchy.Hierarchy, prefix string) error {
	caches := []*cache.Cache{h.L1ICache(), h.L1DCache(), h.L2Cache()}

	for _, c := range caches {
		filename := prefix + c.Name + "_final.txt"
		if err := DumpCacheToFile(c, filename); err != nil {
			return err
		}
	}

	return nil
}
