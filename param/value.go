package param

import (
	"github.com/arloliu/agx/format"
	"github.com/arloliu/agx/internal/hash"
)

// Value is a typed parameter value: either a single value of Type or a
// one-dimensional array of ElementCount elements of Type.
//
// A Value owns its bytes. Constructors copy the caller's memory, and Bytes returns
// the owned slice, which callers must not modify.
type Value struct {
	typ     format.TypeID
	count   uint64
	isArray bool
	data    []byte
}

// NewScalar creates a single value whose payload is exactly size bytes.
//
// The first size bytes of data are copied; missing bytes are zero-filled, so a nil
// data yields a zero value. A size of 0 yields an empty payload.
func NewScalar(typ format.TypeID, data []byte, size int) Value {
	return Value{
		typ:  typ,
		data: copyPayload(data, size),
	}
}

// NewArray creates an array value of count elements of elemSize bytes each.
//
// The first count*elemSize bytes of data are copied; missing bytes are zero-filled.
func NewArray(elemType format.TypeID, data []byte, count uint64, elemSize int) Value {
	return Value{
		typ:     elemType,
		count:   count,
		isArray: true,
		data:    copyPayload(data, int(count)*elemSize), //nolint:gosec
	}
}

// NewRawScalar creates a single value holding a copy of data as-is.
// It is used when the payload size comes from a decoded file rather than a registry.
func NewRawScalar(typ format.TypeID, data []byte) Value {
	return NewScalar(typ, data, len(data))
}

// NewRawArray creates an array value holding a copy of data as-is.
func NewRawArray(elemType format.TypeID, data []byte, count uint64) Value {
	return Value{
		typ:     elemType,
		count:   count,
		isArray: true,
		data:    copyPayload(data, len(data)),
	}
}

// IsArray reports whether the value is an array.
func (v Value) IsArray() bool {
	return v.isArray
}

// Type returns the value type for single values and the element type for arrays.
func (v Value) Type() format.TypeID {
	return v.typ
}

// ElementCount returns the number of array elements, or 0 for single values.
func (v Value) ElementCount() uint64 {
	return v.count
}

// Bytes returns the owned payload.
func (v Value) Bytes() []byte {
	return v.data
}

// Len returns the payload size in bytes.
func (v Value) Len() int {
	return len(v.data)
}

// Digest returns the xxHash64 of the payload.
func (v Value) Digest() uint64 {
	return hash.Digest(v.data)
}

func copyPayload(src []byte, size int) []byte {
	if size <= 0 {
		return []byte{}
	}

	dst := make([]byte, size)
	copy(dst, src)

	return dst
}
