package format

// Registry maps a TypeID to its byte size and display name.
//
// Size returns 0 for types the registry does not know; values of such types carry
// an empty payload. Implementations must be pure lookups and safe for concurrent use.
type Registry interface {
	Size(t TypeID) int
	Name(t TypeID) string
}

// ScalarKind is the primitive a type's components decode to.
type ScalarKind uint8

const (
	KindUnknown ScalarKind = iota
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
)

// Size returns the width of one component in bytes.
func (k ScalarKind) Size() int {
	switch k {
	case KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	default:
		return 0
	}
}

func (k ScalarKind) String() string {
	switch k {
	case KindUint8:
		return "uint8"
	case KindInt16:
		return "int16"
	case KindUint16:
		return "uint16"
	case KindInt32:
		return "int32"
	case KindUint32:
		return "uint32"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// TypeInfo describes one entry of a TableRegistry.
//
// Kind and Components describe how a value renders; Size is the stored byte size.
// Opaque types (strings, object handles) have Size 0 and Kind KindUnknown.
type TypeInfo struct {
	Name       string
	Size       int
	Kind       ScalarKind
	Components int
}

// TableRegistry is a Registry over a fixed table.
type TableRegistry struct {
	types map[TypeID]TypeInfo
}

var _ Registry = (*TableRegistry)(nil)

// unknownTypeName is the display name of ids missing from a table.
const unknownTypeName = "ANARI_UNKNOWN"

// NewTableRegistry creates a registry over a copy of types.
func NewTableRegistry(types map[TypeID]TypeInfo) *TableRegistry {
	table := make(map[TypeID]TypeInfo, len(types))
	for id, info := range types {
		table[id] = info
	}

	return &TableRegistry{types: table}
}

// Lookup returns the table entry for t.
func (r *TableRegistry) Lookup(t TypeID) (TypeInfo, bool) {
	info, ok := r.types[t]
	return info, ok
}

// Size implements Registry.
func (r *TableRegistry) Size(t TypeID) int {
	return r.types[t].Size
}

// Name implements Registry.
func (r *TableRegistry) Name(t TypeID) string {
	if info, ok := r.types[t]; ok {
		return info.Name
	}

	return unknownTypeName
}

// Len returns the number of table entries.
func (r *TableRegistry) Len() int {
	return len(r.types)
}

var defaultRegistry = NewTableRegistry(defaultTypes())

// DefaultRegistry returns the registry covering every TypeID constant of this package.
func DefaultRegistry() *TableRegistry {
	return defaultRegistry
}

// SizeOf returns the byte size of t in the default registry.
func SizeOf(t TypeID) int {
	return defaultRegistry.Size(t)
}

// TypeName returns the display name of t in the default registry.
func TypeName(t TypeID) string {
	return defaultRegistry.Name(t)
}

// Layout returns how t renders: the primitive kind and the component count.
// Types without a numeric layout return KindUnknown and 0.
func Layout(t TypeID) (ScalarKind, int) {
	info, ok := defaultRegistry.Lookup(t)
	if !ok || info.Kind == KindUnknown {
		return KindUnknown, 0
	}

	return info.Kind, info.Components
}

func plain(name string, kind ScalarKind, components int) TypeInfo {
	return TypeInfo{Name: name, Size: kind.Size() * components, Kind: kind, Components: components}
}

func opaque(name string) TypeInfo {
	return TypeInfo{Name: name}
}

func defaultTypes() map[TypeID]TypeInfo {
	types := map[TypeID]TypeInfo{
		TypeUnknown:     opaque("ANARI_UNKNOWN"),
		TypeDataType:    opaque("ANARI_DATA_TYPE"),
		TypeString:      opaque("ANARI_STRING"),
		TypeVoidPointer: opaque("ANARI_VOID_POINTER"),
		TypeBool:        plain("ANARI_BOOL", KindUint8, 1),

		TypeObject:       opaque("ANARI_OBJECT"),
		TypeArray:        opaque("ANARI_ARRAY"),
		TypeArray1D:      opaque("ANARI_ARRAY1D"),
		TypeArray2D:      opaque("ANARI_ARRAY2D"),
		TypeArray3D:      opaque("ANARI_ARRAY3D"),
		TypeCamera:       opaque("ANARI_CAMERA"),
		TypeFrame:        opaque("ANARI_FRAME"),
		TypeGeometry:     opaque("ANARI_GEOMETRY"),
		TypeGroup:        opaque("ANARI_GROUP"),
		TypeInstance:     opaque("ANARI_INSTANCE"),
		TypeLight:        opaque("ANARI_LIGHT"),
		TypeMaterial:     opaque("ANARI_MATERIAL"),
		TypeRenderer:     opaque("ANARI_RENDERER"),
		TypeSurface:      opaque("ANARI_SURFACE"),
		TypeSampler:      opaque("ANARI_SAMPLER"),
		TypeSpatialField: opaque("ANARI_SPATIAL_FIELD"),
		TypeVolume:       opaque("ANARI_VOLUME"),
		TypeWorld:        opaque("ANARI_WORLD"),

		TypeFloat32Mat2:   plain("ANARI_FLOAT32_MAT2", KindFloat32, 4),
		TypeFloat32Mat3:   plain("ANARI_FLOAT32_MAT3", KindFloat32, 9),
		TypeFloat32Mat4:   plain("ANARI_FLOAT32_MAT4", KindFloat32, 16),
		TypeFloat32Mat2x3: plain("ANARI_FLOAT32_MAT2x3", KindFloat32, 6),
		TypeFloat32Mat3x4: plain("ANARI_FLOAT32_MAT3x4", KindFloat32, 12),
	}

	// int8 renders as unsigned bytes.
	vectors := []struct {
		base TypeID
		name string
		kind ScalarKind
	}{
		{TypeInt8, "ANARI_INT8", KindUint8},
		{TypeUint8, "ANARI_UINT8", KindUint8},
		{TypeInt16, "ANARI_INT16", KindInt16},
		{TypeUint16, "ANARI_UINT16", KindUint16},
		{TypeInt32, "ANARI_INT32", KindInt32},
		{TypeUint32, "ANARI_UINT32", KindUint32},
		{TypeInt64, "ANARI_INT64", KindInt64},
		{TypeUint64, "ANARI_UINT64", KindUint64},
		{TypeFloat32, "ANARI_FLOAT32", KindFloat32},
		{TypeFloat64, "ANARI_FLOAT64", KindFloat64},
	}
	for _, v := range vectors {
		types[v.base] = plain(v.name, v.kind, 1)
		types[v.base+1] = plain(v.name+"_VEC2", v.kind, 2)
		types[v.base+2] = plain(v.name+"_VEC3", v.kind, 3)
		types[v.base+3] = plain(v.name+"_VEC4", v.kind, 4)
	}

	return types
}
