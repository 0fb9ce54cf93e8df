package hierarchy_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/hierarchy"
	"github.com/sarchlab/cachesim/mem"
)

var _ = Describe("Hierarchy", func() {
	var (
		storage *mem.MemStorage
		h       *hierarchy.Hierarchy
	)

	BeforeEach(func() {
		storage = mem.NewStorage(1 << 20)

		h = hierarchy.MakeBuilder().
			WithL1IGeometry(1, 2, 4).
			WithL1DGeometry(1, 2, 4).
			WithL2Geometry(2, 2, 4).
			WithStorage(storage).
			Build()
	})

	Describe("Load", func() {
		It("should miss both levels on a cold cache and fill both", func() {
			outcome, err := h.Load(0x0)

			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.L1Miss).To(BeTrue())
			Expect(outcome.L2Miss).To(BeTrue())
			Expect(outcome.PlacedInL1).To(BeTrue())
			Expect(outcome.PlacedInL2).To(BeTrue())
			Expect(outcome.L1Evicted).To(BeFalse())
			Expect(outcome.L2Evicted).To(BeFalse())

			Expect(h.L1DStats()).To(Equal(hierarchy.Stats{Misses: 1}))
			Expect(h.L2Stats()).To(Equal(hierarchy.Stats{Misses: 1}))
		})

		It("should replay the canonical three-load sequence", func() {
			_, err := h.Load(0x0)
			Expect(err).ToNot(HaveOccurred())

			_, err = h.Load(0x10)
			Expect(err).ToNot(HaveOccurred())

			outcome, err := h.Load(0x0)
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.L1Hit).To(BeTrue())

			Expect(h.L1DStats()).To(Equal(hierarchy.Stats{Hits: 1, Misses: 2}))
			Expect(h.L2Stats()).To(Equal(hierarchy.Stats{Misses: 2}))
		})

		It("should fill the fetched bytes into the caches", func() {
			blockData := make([]byte, 16)
			for i := range blockData {
				blockData[i] = byte(0x30 + i)
			}
			Expect(storage.Write(0x20, blockData)).To(Succeed())

			_, err := h.Load(0x24)
			Expect(err).ToNot(HaveOccurred())

			l1Snapshot := h.L1DCache().Snapshot()
			Expect(l1Snapshot[0].Lines[0].IsValid).To(BeTrue())
			Expect(l1Snapshot[0].Lines[0].Data).To(Equal(blockData))

			l2Snapshot := h.L2Cache().Snapshot()
			Expect(l2Snapshot[2].Lines[0].IsValid).To(BeTrue())
			Expect(l2Snapshot[2].Lines[0].Data).To(Equal(blockData))
		})

		It("should install into L1 after an L2 hit", func() {
			_, err := h.Load(0x0)
			Expect(err).ToNot(HaveOccurred())

			outcome, err := h.Fetch(0x0)
			Expect(err).ToNot(HaveOccurred())

			Expect(outcome.L1Cache).To(Equal("L1I"))
			Expect(outcome.L1Miss).To(BeTrue())
			Expect(outcome.L2Hit).To(BeTrue())
			Expect(outcome.PlacedInL1).To(BeTrue())
			Expect(outcome.PlacedInL2).To(BeFalse())

			Expect(h.L1IStats()).To(Equal(hierarchy.Stats{Misses: 1}))
			Expect(h.L1DStats()).To(Equal(hierarchy.Stats{Misses: 1}))
			Expect(h.L2Stats()).To(Equal(hierarchy.Stats{Hits: 1, Misses: 1}))
		})

		It("should evict in fill order, not recency order", func() {
			// 0x0, 0x20, and 0x40 all map to L1D set 0.
			_, err := h.Load(0x0)
			Expect(err).ToNot(HaveOccurred())
			_, err = h.Load(0x20)
			Expect(err).ToNot(HaveOccurred())

			outcome, err := h.Load(0x0)
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.L1Hit).To(BeTrue())

			outcome, err = h.Load(0x40)
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.L1Evicted).To(BeTrue())

			outcome, err = h.Load(0x20)
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.L1Hit).To(BeTrue())

			// The 0x0 block was evicted even though it was hit most recently.
			outcome, err = h.Load(0x0)
			Expect(err).ToNot(HaveOccurred())
			Expect(outcome.L1Miss).To(BeTrue())
		})

		It("should count an eviction only when the victim was valid", func() {
			_, err := h.Load(0x0)
			Expect(err).ToNot(HaveOccurred())
			_, err = h.Load(0x20)
			Expect(err).ToNot(HaveOccurred())

			Expect(h.L1DStats().Evictions).To(BeZero())

			_, err = h.Load(0x40)
			Expect(err).ToNot(HaveOccurred())

			Expect(h.L1DStats().Evictions).To(Equal(uint64(1)))
		})

		It("should keep at most one valid line per tag in a set", func() {
			addresses := []uint64{0x0, 0x20, 0x0, 0x40, 0x20, 0x0, 0x60, 0x0}
			for _, addr := range addresses {
				_, err := h.Load(addr)
				Expect(err).ToNot(HaveOccurred())
			}

			for _, set := range h.L1DCache().Snapshot() {
				seen := map[uint64]bool{}
				for _, line := range set.Lines {
					if !line.IsValid {
						continue
					}
					Expect(seen[line.Tag]).To(BeFalse())
					seen[line.Tag] = true
				}
			}
		})
	})

	Describe("Store", func() {
		It("should write through L1, L2, and the backing store on an L1 hit", func() {
			_, err := h.Load(0x0)
			Expect(err).ToNot(HaveOccurred())

			outcome, err := h.Store(0x4, []byte{0xaa, 0xbb})
			Expect(err).ToNot(HaveOccurred())

			Expect(outcome.L1Hit).To(BeTrue())
			Expect(outcome.L2Hit).To(BeTrue())
			Expect(outcome.WroteToStore).To(BeTrue())

			l1Line := h.L1DCache().Snapshot()[0].Lines[0]
			Expect(l1Line.Data[4:6]).To(Equal([]byte{0xaa, 0xbb}))

			l2Line := h.L2Cache().Snapshot()[0].Lines[0]
			Expect(l2Line.Data[4:6]).To(Equal([]byte{0xaa, 0xbb}))

			stored, err := storage.Read(0x4, 2)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored).To(Equal([]byte{0xaa, 0xbb}))
		})

		It("should not allocate into L1 on a store miss", func() {
			outcome, err := h.Store(0x20, []byte{0x11, 0x22})
			Expect(err).ToNot(HaveOccurred())

			Expect(outcome.L1Miss).To(BeTrue())
			Expect(outcome.PlacedInL1).To(BeFalse())
			Expect(outcome.L2Miss).To(BeTrue())
			Expect(outcome.PlacedInL2).To(BeTrue())
			Expect(outcome.WroteToStore).To(BeTrue())

			for _, set := range h.L1DCache().Snapshot() {
				for _, line := range set.Lines {
					Expect(line.IsValid).To(BeFalse())
				}
			}

			l2Line := h.L2Cache().Snapshot()[2].Lines[0]
			Expect(l2Line.IsValid).To(BeTrue())
			Expect(l2Line.Data[0:2]).To(Equal([]byte{0x11, 0x22}))

			stored, err := storage.Read(0x20, 2)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored).To(Equal([]byte{0x11, 0x22}))

			Expect(h.L1DStats()).To(Equal(hierarchy.Stats{Misses: 1}))
			Expect(h.L2Stats()).To(Equal(hierarchy.Stats{Misses: 1}))
		})

		It("should preserve the backing bytes around the written range", func() {
			initial := make([]byte, 16)
			for i := range initial {
				initial[i] = byte(i)
			}
			Expect(storage.Write(0x0, initial)).To(Succeed())

			_, err := h.Store(0x6, []byte{0xff})
			Expect(err).ToNot(HaveOccurred())

			block, err := storage.Read(0x0, 16)
			Expect(err).ToNot(HaveOccurred())

			want := make([]byte, 16)
			copy(want, initial)
			want[6] = 0xff
			Expect(block).To(Equal(want))
		})
	})

	Describe("Modify", func() {
		It("should behave as a load followed by a store", func() {
			loadOutcome, storeOutcome, err := h.Modify(0x0, []byte{0xab, 0xcd})
			Expect(err).ToNot(HaveOccurred())

			Expect(loadOutcome.L1Miss).To(BeTrue())
			Expect(loadOutcome.L2Miss).To(BeTrue())

			// The load phase installed the block, so the store phase hits.
			Expect(storeOutcome.L1Hit).To(BeTrue())
			Expect(storeOutcome.L2Hit).To(BeTrue())
			Expect(storeOutcome.WroteToStore).To(BeTrue())

			Expect(h.L1DStats()).To(Equal(hierarchy.Stats{Hits: 1, Misses: 1}))
			Expect(h.L2Stats()).To(Equal(hierarchy.Stats{Hits: 1, Misses: 1}))

			stored, err := storage.Read(0x0, 2)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored).To(Equal([]byte{0xab, 0xcd}))
		})
	})
})
