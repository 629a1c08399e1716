package section

import (
	"fmt"

	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/format"
)

// Header represents the fixed-size header at the start of an AGXB file.
type Header struct {
	// Version is the layout version, always 1 for files written by this package.
	Version uint32 // byte offset 4-7
	// EndianMarker is the marker value. After Parse it holds the normalized value.
	EndianMarker uint32 // byte offset 8-11
	// ObjectType is the type of the object the parameters describe.
	ObjectType format.TypeID // byte offset 12-15
	// TimeStepCount is the number of time step blocks following the constants.
	TimeStepCount uint32 // byte offset 16-19
	// ConstantParamCount is the number of constant parameter records.
	ConstantParamCount uint32 // byte offset 20-23
}

// NewHeader creates a version 1 header with the canonical marker.
func NewHeader(objectType format.TypeID, timeSteps, constantCount uint32) Header {
	return Header{
		Version:            Version,
		EndianMarker:       endian.Marker,
		ObjectType:         objectType,
		TimeStepCount:      timeSteps,
		ConstantParamCount: constantCount,
	}
}

// AppendTo appends the 24-byte header to dst using engine.
func (h Header) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	dst = append(dst, Magic...)
	dst = engine.AppendUint32(dst, h.Version)
	dst = engine.AppendUint32(dst, h.EndianMarker)
	dst = engine.AppendUint32(dst, uint32(h.ObjectType))
	dst = engine.AppendUint32(dst, h.TimeStepCount)
	dst = engine.AppendUint32(dst, h.ConstantParamCount)

	return dst
}

// Bytes serializes the header into a new 24-byte slice.
func (h Header) Bytes(engine endian.EndianEngine) []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize), engine)
}

// ParseHeader parses the fixed header from data.
//
// It checks the magic, classifies the endian marker against host and decodes the
// remaining fields through the resulting Normalizer, which is returned for use on
// every later field of the file.
//
// Returns:
//   - Header: decoded header with the marker normalized to endian.Marker
//   - endian.Normalizer: normalizer for the rest of the file
//   - error: ErrInvalidHeaderSize, ErrInvalidMagic or ErrInvalidEndianMarker
func ParseHeader(data []byte, host endian.EndianEngine) (Header, endian.Normalizer, error) {
	if len(data) < HeaderSize {
		return Header{}, endian.Normalizer{}, errs.ErrInvalidHeaderSize
	}

	if string(data[:MagicSize]) != Magic {
		return Header{}, endian.Normalizer{}, fmt.Errorf("%w: got %q", errs.ErrInvalidMagic, data[:MagicSize])
	}

	norm, err := endian.NewNormalizer(data[offMarker:offMarker+4], host)
	if err != nil {
		return Header{}, endian.Normalizer{}, fmt.Errorf("%w: 0x%08X", err, host.Uint32(data[offMarker:offMarker+4]))
	}

	h := Header{
		Version:            norm.Uint32(data[offVersion:]),
		EndianMarker:       norm.Uint32(data[offMarker:]),
		ObjectType:         format.TypeID(norm.Uint32(data[offObjectType:])),
		TimeStepCount:      norm.Uint32(data[offTimeSteps:]),
		ConstantParamCount: norm.Uint32(data[offConstCount:]),
	}

	return h, norm, nil
}

// AppendSubtype appends the subtype block (length prefix and raw bytes).
func AppendSubtype(dst []byte, engine endian.EndianEngine, subtype string) []byte {
	dst = engine.AppendUint32(dst, uint32(len(subtype))) //nolint:gosec
	return append(dst, subtype...)
}

// StepHeader is the header of one time step block.
type StepHeader struct {
	Index      uint32
	ParamCount uint32
}

// AppendTo appends the 8-byte block header to dst.
func (s StepHeader) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, s.Index)
	return engine.AppendUint32(dst, s.ParamCount)
}

// ParseStepHeader parses a time step block header.
func ParseStepHeader(data []byte, norm endian.Normalizer) (StepHeader, error) {
	if len(data) < StepHeaderSize {
		return StepHeader{}, errs.ErrTruncated
	}

	return StepHeader{
		Index:      norm.Uint32(data[0:4]),
		ParamCount: norm.Uint32(data[4:8]),
	}, nil
}
