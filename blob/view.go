package blob

import (
	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/format"
	"github.com/arloliu/agx/internal/hash"
	"github.com/arloliu/agx/param"
)

// HeaderInfo is a snapshot of the decoded file header.
type HeaderInfo struct {
	Version uint32
	// EndianMarker is the marker after normalization, always endian.Marker.
	EndianMarker       uint32
	ObjectType         format.TypeID
	TimeStepCount      uint32
	ConstantParamCount uint32
	Subtype            string

	HostLittleEndian bool
	FileLittleEndian bool
	NeedByteSwap     bool
}

// FileEngine returns the byte order payloads in the file are stored in.
func (h HeaderInfo) FileEngine() endian.EndianEngine {
	if h.FileLittleEndian {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}

// TimeStep is the header of a time step block.
type TimeStep struct {
	Index      uint32
	ParamCount uint32
}

// ParamView is one decoded parameter record.
//
// Name and Data borrow the decoder's buffer: they are overwritten by the next Next*
// call and invalidated by Reset* and Close. Both slices have their capacity clipped,
// so appending to them never writes into the decoder.
type ParamView struct {
	Name    []byte
	IsArray bool
	// Type is the value type of a single value or the element type of an array.
	Type format.TypeID
	// ElementCount is the number of array elements; 0 for single values.
	ElementCount uint64
	Data         []byte
}

// NameString returns a copy of the name.
func (v *ParamView) NameString() string {
	return string(v.Name)
}

// Digest returns the xxHash64 of the payload.
func (v *ParamView) Digest() uint64 {
	return hash.Digest(v.Data)
}

// Value copies the record into an owned param.Value.
func (v *ParamView) Value() param.Value {
	if v.IsArray {
		return param.NewRawArray(v.Type, v.Data, v.ElementCount)
	}

	return param.NewRawScalar(v.Type, v.Data)
}

func (v *ParamView) reset() {
	*v = ParamView{}
}
