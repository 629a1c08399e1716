package section

import (
	"fmt"

	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/format"
)

// RecordPrefix holds the fixed fields that follow a parameter record's name.
//
// For scalars Type is the value type and DataBytes the valueBytes field; for arrays
// Type is the element type and ElementCount is meaningful.
type RecordPrefix struct {
	IsArray      bool
	Type         format.TypeID
	ElementCount uint64
	DataBytes    uint64
}

// Flag returns the isArray byte for the record.
func (p RecordPrefix) Flag() byte {
	if p.IsArray {
		return FlagArray
	}

	return FlagScalar
}

// AppendRecordPrefix appends everything of a parameter record except its payload:
// nameLen, name, isArray and the scalar or array tail.
func AppendRecordPrefix(dst []byte, engine endian.EndianEngine, name string, p RecordPrefix) []byte {
	dst = engine.AppendUint32(dst, uint32(len(name))) //nolint:gosec
	dst = append(dst, name...)
	dst = append(dst, p.Flag())

	dst = engine.AppendUint32(dst, uint32(p.Type))
	if p.IsArray {
		dst = engine.AppendUint64(dst, p.ElementCount)
		return engine.AppendUint64(dst, p.DataBytes)
	}

	return engine.AppendUint32(dst, uint32(p.DataBytes)) //nolint:gosec
}

// RecordPrefixSize returns the number of bytes AppendRecordPrefix emits.
func RecordPrefixSize(nameLen int, isArray bool) int {
	if isArray {
		return NameLenSize + nameLen + FlagSize + ArrayTailSize
	}

	return NameLenSize + nameLen + FlagSize + ScalarTailSize
}

// TailSize returns the size of the tail following the isArray byte. Flags other
// than FlagScalar and FlagArray yield errs.ErrInvalidRecordSize.
func TailSize(flag byte) (int, error) {
	switch flag {
	case FlagScalar:
		return ScalarTailSize, nil
	case FlagArray:
		return ArrayTailSize, nil
	default:
		return 0, fmt.Errorf("%w: isArray flag %d", errs.ErrInvalidRecordSize, flag)
	}
}

// ParseRecordTail decodes the tail following the isArray byte.
func ParseRecordTail(flag byte, data []byte, norm endian.Normalizer) (RecordPrefix, error) {
	if _, err := TailSize(flag); err != nil {
		return RecordPrefix{}, err
	}

	if flag == FlagScalar {
		if len(data) < ScalarTailSize {
			return RecordPrefix{}, errs.ErrTruncated
		}

		return RecordPrefix{
			Type:      format.TypeID(norm.Uint32(data[0:4])),
			DataBytes: uint64(norm.Uint32(data[4:8])),
		}, nil
	}

	if len(data) < ArrayTailSize {
		return RecordPrefix{}, errs.ErrTruncated
	}

	return RecordPrefix{
		IsArray:      true,
		Type:         format.TypeID(norm.Uint32(data[0:4])),
		ElementCount: norm.Uint64(data[4:12]),
		DataBytes:    norm.Uint64(data[12:20]),
	}, nil
}
