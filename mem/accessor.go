package mem

import "fmt"

// An Accessor performs block-aligned reads and byte-range read-modify-writes
// against a storage. All cache refills and write-throughs go through it.
type Accessor struct {
	storage Storage
}

// NewAccessor wraps a storage.
func NewAccessor(storage Storage) *Accessor {
	return &Accessor{storage: storage}
}

// ReadBlock reads the aligned block of blockSize bytes that contains addr.
func (a *Accessor) ReadBlock(addr uint64, blockSize int) ([]byte, error) {
	base := addr &^ uint64(blockSize-1)
	return a.storage.Read(base, uint64(blockSize))
}

// WriteBytes overwrites len(data) bytes at addr while preserving the rest of
// the containing block. It reads the full aligned block, patches the
// sub-range, and writes the full block back. The write must not cross the
// block boundary.
func (a *Accessor) WriteBytes(addr uint64, blockSize int, data []byte) error {
	base := addr &^ uint64(blockSize-1)
	offset := addr - base

	if int(offset)+len(data) > blockSize {
		panic(fmt.Sprintf(
			"store of %d bytes at 0x%x crosses a %d-byte block boundary",
			len(data), addr, blockSize))
	}

	block, err := a.storage.Read(base, uint64(blockSize))
	if err != nil {
		return err
	}

	copy(block[offset:], data)

	return a.storage.Write(base, block)
}
