package mem

import (
	"fmt"
	"io"
	"os"
)

// FileStorage is a Storage backed by a seekable file, so that the final image
// persists after the run. The file must be large enough to cover every
// address the trace touches; accesses are not bounds-checked beyond what the
// file itself enforces.
type FileStorage struct {
	file *os.File
}

// OpenFileStorage opens the image file at path for reading and writing.
func OpenFileStorage(path string) (*FileStorage, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening backing image: %w", err)
	}

	return &FileStorage{file: file}, nil
}

// Read returns n bytes starting at addr.
func (s *FileStorage) Read(addr, n uint64) ([]byte, error) {
	data := make([]byte, n)

	_, err := s.file.ReadAt(data, int64(addr))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading backing image at 0x%x: %w", addr, err)
	}

	return data, nil
}

// Write stores data starting at addr.
func (s *FileStorage) Write(addr uint64, data []byte) error {
	_, err := s.file.WriteAt(data, int64(addr))
	if err != nil {
		return fmt.Errorf("writing backing image at 0x%x: %w", addr, err)
	}

	return nil
}

// Close releases the underlying file.
func (s *FileStorage) Close() error {
	return s.file.Close()
}
