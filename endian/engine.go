// Package endian provides byte order utilities for the AGXB codec.
//
// AGXB files are written in the byte order of the producing host and record that
// order with a fixed marker value. This package supplies the engines used to emit
// integers, host byte order detection, and the Normalizer the decoder uses to read
// header and record integers written by a host of either byte order.
//
// # Basic Usage
//
// Encoding uses the host engine unless told otherwise:
//
//	engine := endian.NativeEngine()
//	buf = engine.AppendUint32(buf, 0x01020304)
//
// Decoding classifies the marker bytes read from the file:
//
//	norm, err := endian.NewNormalizer(markerBytes, endian.NativeEngine())
//	if err != nil {
//	    return err // not a marker written in either byte order
//	}
//	count := norm.Uint32(fieldBytes)
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. Engines and
// Normalizer values are immutable.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. A little-endian host stores the LSB (0x00) first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// IsLittleEndian reports whether engine is the little-endian engine.
func IsLittleEndian(engine EndianEngine) bool {
	return engine == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// NativeEngine returns the engine matching the host byte order.
func NativeEngine() EndianEngine {
	if IsNativeBigEndian() {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// OppositeEngine returns the engine with the byte order opposite to engine.
func OppositeEngine(engine EndianEngine) EndianEngine {
	if IsLittleEndian(engine) {
		return binary.BigEndian
	}

	return binary.LittleEndian
}
