// Package mem provides the backing-store image that the simulated caches read
// from and write through to.
package mem

import "errors"

// A Storage is a byte-addressable image of a known extent.
type Storage interface {
	Read(addr, n uint64) ([]byte, error)
	Write(addr uint64, data []byte) error
}

// MemStorage keeps the image in memory. The image is managed in fixed-size
// units, and a unit is only allocated the first time Read or Write touches it.
type MemStorage struct {
	unitSize uint64
	capacity uint64
	data     map[uint64][]byte
}

// NewStorage creates an in-memory storage with the given capacity in bytes.
func NewStorage(capacity uint64) *MemStorage {
	s := &MemStorage{
		unitSize: 4096,
		capacity: capacity,
		data:     make(map[uint64][]byte),
	}

	return s
}

func (s *MemStorage) createOrGetUnit(addr uint64) ([]byte, error) {
	if addr > s.capacity {
		return nil, errors.New("accessing address beyond the storage capacity")
	}

	baseAddr, _ := s.parseAddress(addr)
	unit, ok := s.data[baseAddr]
	if !ok {
		unit = make([]byte, s.unitSize)
		s.data[baseAddr] = unit
	}

	return unit, nil
}

func (s *MemStorage) parseAddress(addr uint64) (baseAddr, inUnitAddr uint64) {
	inUnitAddr = addr % s.unitSize
	baseAddr = addr - inUnitAddr
	return
}

// Read returns n bytes starting at addr, crossing unit boundaries as needed.
func (s *MemStorage) Read(addr, n uint64) ([]byte, error) {
	res := make([]byte, n)
	currAddr := addr
	offset := uint64(0)

	for currAddr < addr+n {
		unit, err := s.createOrGetUnit(currAddr)
		if err != nil {
			return nil, err
		}

		baseAddr, inUnitAddr := s.parseAddress(currAddr)
		lenToRead := baseAddr + s.unitSize - currAddr
		if n-offset < lenToRead {
			lenToRead = n - offset
		}

		copy(res[offset:offset+lenToRead], unit[inUnitAddr:inUnitAddr+lenToRead])
		offset += lenToRead
		currAddr += lenToRead
	}

	return res, nil
}

// Write stores data starting at addr, crossing unit boundaries as needed.
func (s *MemStorage) Write(addr uint64, data []byte) error {
	currAddr := addr
	offset := uint64(0)

	for offset < uint64(len(data)) {
		unit, err := s.createOrGetUnit(currAddr)
		if err != nil {
			return err
		}

		baseAddr, inUnitAddr := s.parseAddress(currAddr)
		lenToWrite := baseAddr + s.unitSize - currAddr
		if uint64(len(data))-offset < lenToWrite {
			lenToWrite = uint64(len(data)) - offset
		}

		copy(unit[inUnitAddr:inUnitAddr+lenToWrite], data[offset:offset+lenToWrite])
		offset += lenToWrite
		currAddr += lenToWrite
	}

	return nil
}
