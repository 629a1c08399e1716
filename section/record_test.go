package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/format"
)

func TestAppendRecordPrefix_Scalar(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	p := RecordPrefix{Type: format.TypeFloat32, DataBytes: 4}

	data := AppendRecordPrefix(nil, engine, "time", p)
	require.Len(t, data, RecordPrefixSize(4, false))

	require.Equal(t, []byte{4, 0, 0, 0}, data[0:4])
	require.Equal(t, []byte("time"), data[4:8])
	require.Equal(t, FlagScalar, data[8])
	require.Equal(t, uint32(format.TypeFloat32), engine.Uint32(data[9:13]))
	require.Equal(t, uint32(4), engine.Uint32(data[13:17]))
}

func TestAppendRecordPrefix_Array(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	p := RecordPrefix{IsArray: true, Type: format.TypeFloat32Vec3, ElementCount: 4, DataBytes: 48}

	data := AppendRecordPrefix(nil, engine, "vertex.position", p)
	require.Len(t, data, RecordPrefixSize(len("vertex.position"), true))

	off := NameLenSize + len("vertex.position")
	require.Equal(t, FlagArray, data[off])
	require.Equal(t, uint32(format.TypeFloat32Vec3), engine.Uint32(data[off+1:]))
	require.Equal(t, uint64(4), engine.Uint64(data[off+5:]))
	require.Equal(t, uint64(48), engine.Uint64(data[off+13:]))
}

func TestParseRecordTail(t *testing.T) {
	host := endian.NativeEngine()

	tests := []struct {
		name   string
		prefix RecordPrefix
	}{
		{"scalar", RecordPrefix{Type: format.TypeFloat32Vec3, DataBytes: 12}},
		{"array", RecordPrefix{IsArray: true, Type: format.TypeUint32, ElementCount: 6, DataBytes: 24}},
		{"empty array", RecordPrefix{IsArray: true, Type: format.TypeID(99999)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, engine := range []endian.EndianEngine{host, endian.OppositeEngine(host)} {
				norm, err := endian.NewNormalizer(engine.AppendUint32(nil, endian.Marker), host)
				require.NoError(t, err)

				data := AppendRecordPrefix(nil, engine, "p", tt.prefix)
				flagOff := NameLenSize + 1
				flag := data[flagOff]
				tail := data[flagOff+1:]
				size, err := TailSize(flag)
				require.NoError(t, err)
				require.Len(t, tail, size)

				parsed, err := ParseRecordTail(flag, tail, norm)
				require.NoError(t, err)
				require.Equal(t, tt.prefix, parsed)
			}
		})
	}
}

func TestParseRecordTail_InvalidFlag(t *testing.T) {
	for _, flag := range []byte{2, 0x7f, 0xff} {
		_, err := TailSize(flag)
		require.ErrorIs(t, err, errs.ErrInvalidRecordSize)

		_, err = ParseRecordTail(flag, make([]byte, ArrayTailSize), endian.Normalizer{})
		require.ErrorIs(t, err, errs.ErrInvalidRecordSize)
	}
}

func TestParseRecordTail_Truncated(t *testing.T) {
	_, err := ParseRecordTail(FlagScalar, make([]byte, ScalarTailSize-1), endian.Normalizer{})
	require.ErrorIs(t, err, errs.ErrTruncated)

	_, err = ParseRecordTail(FlagArray, make([]byte, ArrayTailSize-1), endian.Normalizer{})
	require.ErrorIs(t, err, errs.ErrTruncated)
}
