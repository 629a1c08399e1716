//go:build !unix

package source

import "errors"

var errMmapUnsupported = errors.New("mmap not supported on this platform")

type mmapFile struct{}

func openMmap(string) (*mmapFile, error) {
	return nil, errMmapUnsupported
}

func (m *mmapFile) Data() []byte {
	return nil
}

func (m *mmapFile) Close() error {
	return nil
}
