//go:build unix

package source

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

var errMmapUnsupported = errors.New("mmap not supported on this platform")

// mmapFile is a read-only memory mapped file.
type mmapFile struct {
	data []byte
}

func openMmap(path string) (*mmapFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	size := info.Size()
	if size == 0 {
		return &mmapFile{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	return &mmapFile{data: data}, nil
}

func (m *mmapFile) Data() []byte {
	return m.data
}

func (m *mmapFile) Close() error {
	if m.data == nil {
		return nil
	}

	if err := unix.Munmap(m.data); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	m.data = nil

	return nil
}
