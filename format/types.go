package format

import "strconv"

type (
	// TypeID identifies the logical data type of a parameter value. The numbering
	// follows ANARI's logical data type enumeration so files stay comparable with
	// those produced by ANARI based exporters.
	TypeID uint32

	// CompressionType identifies the container codec wrapping a whole fixture file.
	// The AGXB layout itself is never compressed.
	CompressionType uint8
)

// Non-data and object types.
const (
	TypeUnknown     TypeID = 0
	TypeDataType    TypeID = 100
	TypeString      TypeID = 101
	TypeVoidPointer TypeID = 102
	TypeBool        TypeID = 103

	TypeObject       TypeID = 500
	TypeArray        TypeID = 501
	TypeArray1D      TypeID = 502
	TypeArray2D      TypeID = 503
	TypeArray3D      TypeID = 504
	TypeCamera       TypeID = 505
	TypeFrame        TypeID = 506
	TypeGeometry     TypeID = 507
	TypeGroup        TypeID = 508
	TypeInstance     TypeID = 509
	TypeLight        TypeID = 510
	TypeMaterial     TypeID = 511
	TypeRenderer     TypeID = 512
	TypeSurface      TypeID = 513
	TypeSampler      TypeID = 514
	TypeSpatialField TypeID = 515
	TypeVolume       TypeID = 516
	TypeWorld        TypeID = 517
)

// Plain data types. Vector variants follow their scalar base id.
const (
	TypeInt8     TypeID = 1000
	TypeInt8Vec2 TypeID = 1001
	TypeInt8Vec3 TypeID = 1002
	TypeInt8Vec4 TypeID = 1003

	TypeUint8     TypeID = 1004
	TypeUint8Vec2 TypeID = 1005
	TypeUint8Vec3 TypeID = 1006
	TypeUint8Vec4 TypeID = 1007

	TypeInt16     TypeID = 1008
	TypeInt16Vec2 TypeID = 1009
	TypeInt16Vec3 TypeID = 1010
	TypeInt16Vec4 TypeID = 1011

	TypeUint16     TypeID = 1012
	TypeUint16Vec2 TypeID = 1013
	TypeUint16Vec3 TypeID = 1014
	TypeUint16Vec4 TypeID = 1015

	TypeInt32     TypeID = 1016
	TypeInt32Vec2 TypeID = 1017
	TypeInt32Vec3 TypeID = 1018
	TypeInt32Vec4 TypeID = 1019

	TypeUint32     TypeID = 1020
	TypeUint32Vec2 TypeID = 1021
	TypeUint32Vec3 TypeID = 1022
	TypeUint32Vec4 TypeID = 1023

	TypeInt64     TypeID = 1024
	TypeInt64Vec2 TypeID = 1025
	TypeInt64Vec3 TypeID = 1026
	TypeInt64Vec4 TypeID = 1027

	TypeUint64     TypeID = 1028
	TypeUint64Vec2 TypeID = 1029
	TypeUint64Vec3 TypeID = 1030
	TypeUint64Vec4 TypeID = 1031

	TypeFloat32     TypeID = 1068
	TypeFloat32Vec2 TypeID = 1069
	TypeFloat32Vec3 TypeID = 1070
	TypeFloat32Vec4 TypeID = 1071

	TypeFloat64     TypeID = 1072
	TypeFloat64Vec2 TypeID = 1073
	TypeFloat64Vec3 TypeID = 1074
	TypeFloat64Vec4 TypeID = 1075

	TypeFloat32Mat2   TypeID = 2012
	TypeFloat32Mat3   TypeID = 2013
	TypeFloat32Mat4   TypeID = 2014
	TypeFloat32Mat2x3 TypeID = 2015
	TypeFloat32Mat3x4 TypeID = 2016
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents a plain AGXB file.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard stream.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2 stream.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame stream.
)

// String returns the display name from the default registry, or the numeric id
// for types it does not know.
func (t TypeID) String() string {
	if info, ok := DefaultRegistry().Lookup(t); ok {
		return info.Name
	}

	return "TypeID(" + strconv.FormatUint(uint64(t), 10) + ")"
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-sensitive lower-case name to a CompressionType.
// It returns false for unknown names.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
