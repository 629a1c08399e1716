package compress

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/arloliu/agx/format"
)

// SniffSize is the number of leading bytes Detect needs to recognize every container.
const SniffSize = 10

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
	// S2 streams start with a stream identifier chunk; the S2 and Snappy bodies differ.
	s2Magic     = []byte{0xFF, 0x06, 0x00, 0x00, 'S', '2', 's', 'T', 'w', 'O'}
	snappyMagic = []byte{0xFF, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
)

// Detect identifies the container of a stream from its first bytes. Anything not
// recognized, including plain AGXB, is CompressionNone.
func Detect(head []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(head, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(head, s2Magic), bytes.HasPrefix(head, snappyMagic):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

// ByExtension returns the container implied by the file name suffix.
func ByExtension(name string) format.CompressionType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		return format.CompressionZstd
	case ".s2", ".sz":
		return format.CompressionS2
	case ".lz4":
		return format.CompressionLZ4
	default:
		return format.CompressionNone
	}
}
