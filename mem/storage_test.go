package mem_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/mem"
)

var _ = Describe("MemStorage", func() {
	It("should read and write in a single unit", func() {
		storage := mem.NewStorage(4096)
		Expect(storage.Write(0, []byte{1, 2, 3, 4})).To(Succeed())

		res, err := storage.Read(0, 2)
		Expect(err).ToNot(HaveOccurred())
		Expect(res).To(Equal([]byte{1, 2}))

		res, err = storage.Read(1, 2)
		Expect(err).ToNot(HaveOccurred())
		Expect(res).To(Equal([]byte{2, 3}))
	})

	It("should read and write across units", func() {
		storage := mem.NewStorage(8192)
		Expect(storage.Write(4094, []byte{1, 2, 3, 4})).To(Succeed())

		res, err := storage.Read(4094, 4)
		Expect(err).ToNot(HaveOccurred())
		Expect(res).To(Equal([]byte{1, 2, 3, 4}))
	})

	It("should read zeros from untouched addresses", func() {
		storage := mem.NewStorage(4096)

		res, err := storage.Read(100, 4)
		Expect(err).ToNot(HaveOccurred())
		Expect(res).To(Equal([]byte{0, 0, 0, 0}))
	})

	It("should return an error when accessing over the capacity", func() {
		storage := mem.NewStorage(4096)

		err := storage.Write(4097, []byte{1})
		Expect(err).To(HaveOccurred())

		_, err = storage.Read(4097, 1)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("FileStorage", func() {
	var (
		path    string
		storage *mem.FileStorage
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "ram.dat")

		err := os.WriteFile(path, make([]byte, 256), 0644)
		Expect(err).ToNot(HaveOccurred())

		storage, err = mem.OpenFileStorage(path)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(storage.Close()).To(Succeed())
	})

	It("should write and read back", func() {
		Expect(storage.Write(16, []byte{0xde, 0xad})).To(Succeed())

		res, err := storage.Read(16, 2)
		Expect(err).ToNot(HaveOccurred())
		Expect(res).To(Equal([]byte{0xde, 0xad}))
	})

	It("should persist writes into the file", func() {
		Expect(storage.Write(0, []byte{0x42})).To(Succeed())

		content, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(content[0]).To(Equal(byte(0x42)))
	})

	It("should fail to open a missing image", func() {
		_, err := mem.OpenFileStorage(filepath.Join(GinkgoT().TempDir(), "no.dat"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Accessor", func() {
	var (
		storage  *mem.MemStorage
		accessor *mem.Accessor
	)

	BeforeEach(func() {
		storage = mem.NewStorage(4096)
		accessor = mem.NewAccessor(storage)
	})

	It("should read the aligned block containing an address", func() {
		Expect(storage.Write(16, []byte{1, 2, 3, 4})).To(Succeed())

		block, err := accessor.ReadBlock(19, 16)
		Expect(err).ToNot(HaveOccurred())
		Expect(block).To(HaveLen(16))
		Expect(block[:4]).To(Equal([]byte{1, 2, 3, 4}))
	})

	It("should preserve the bytes around a partial write", func() {
		initial := make([]byte, 16)
		for i := range initial {
			initial[i] = byte(i)
		}
		Expect(storage.Write(0, initial)).To(Succeed())

		Expect(accessor.WriteBytes(4, 16, []byte{0xaa, 0xbb})).To(Succeed())

		block, err := storage.Read(0, 16)
		Expect(err).ToNot(HaveOccurred())

		want := make([]byte, 16)
		copy(want, initial)
		want[4], want[5] = 0xaa, 0xbb
		Expect(block).To(Equal(want))
	})

	It("should panic when a write crosses the block boundary", func() {
		Expect(func() {
			_ = accessor.WriteBytes(15, 16, []byte{1, 2})
		}).To(Panic())
	})
})
