package endian

import (
	"math/bits"

	"github.com/arloliu/agx/errs"
)

// Marker is the canonical endian marker value stored in every AGXB header.
const Marker uint32 = 0x01020304

// Normalizer reads multi-byte integers written by the producing host and converts
// them to values in the reading host's terms.
//
// Each integer is read in the host byte order and byte-swapped when the file was
// produced by a host of the opposite order. Payload bytes are never passed through
// a Normalizer.
type Normalizer struct {
	host EndianEngine
	swap bool
}

// NewNormalizer classifies the four marker bytes read from a file.
//
// The marker is read in host byte order. If it equals Marker no swapping is needed;
// if its byte-swapped form equals Marker every integer must be swapped. Any other
// value yields errs.ErrInvalidEndianMarker.
func NewNormalizer(marker []byte, host EndianEngine) (Normalizer, error) {
	if len(marker) < 4 {
		return Normalizer{}, errs.ErrInvalidHeaderSize
	}

	raw := host.Uint32(marker)
	switch {
	case raw == Marker:
		return Normalizer{host: host, swap: false}, nil
	case bits.ReverseBytes32(raw) == Marker:
		return Normalizer{host: host, swap: true}, nil
	default:
		return Normalizer{}, errs.ErrInvalidEndianMarker
	}
}

// NeedByteSwap reports whether integers must be swapped.
func (n Normalizer) NeedByteSwap() bool {
	return n.swap
}

// HostEngine returns the engine of the reading host.
func (n Normalizer) HostEngine() EndianEngine {
	return n.host
}

// FileEngine returns the engine matching the byte order the file was written in.
func (n Normalizer) FileEngine() EndianEngine {
	if n.swap {
		return OppositeEngine(n.host)
	}

	return n.host
}

// Uint32 decodes a 4-byte field.
func (n Normalizer) Uint32(b []byte) uint32 {
	v := n.host.Uint32(b)
	if n.swap {
		v = bits.ReverseBytes32(v)
	}

	return v
}

// Uint64 decodes an 8-byte field.
func (n Normalizer) Uint64(b []byte) uint64 {
	v := n.host.Uint64(b)
	if n.swap {
		v = bits.ReverseBytes64(v)
	}

	return v
}
