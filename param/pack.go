package param

import (
	"math"

	"github.com/arloliu/agx/endian"
)

// The Pack* helpers encode Go values in host byte order, the order the encoder
// writes payloads in.

// PackFloat32 encodes vals as consecutive IEEE-754 single precision floats.
func PackFloat32(vals ...float32) []byte {
	engine := endian.NativeEngine()
	out := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		out = engine.AppendUint32(out, math.Float32bits(v))
	}

	return out
}

// PackFloat64 encodes vals as consecutive IEEE-754 double precision floats.
func PackFloat64(vals ...float64) []byte {
	engine := endian.NativeEngine()
	out := make([]byte, 0, 8*len(vals))
	for _, v := range vals {
		out = engine.AppendUint64(out, math.Float64bits(v))
	}

	return out
}

// PackUint32 encodes vals as consecutive 32-bit unsigned integers.
func PackUint32(vals ...uint32) []byte {
	engine := endian.NativeEngine()
	out := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		out = engine.AppendUint32(out, v)
	}

	return out
}

// PackInt32 encodes vals as consecutive 32-bit signed integers.
func PackInt32(vals ...int32) []byte {
	engine := endian.NativeEngine()
	out := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		out = engine.AppendUint32(out, uint32(v)) //nolint:gosec
	}

	return out
}

// PackBool encodes vals as one byte each.
func PackBool(vals ...bool) []byte {
	out := make([]byte, len(vals))
	for i, v := range vals {
		if v {
			out[i] = 1
		}
	}

	return out
}
