package blob

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/format"
	"github.com/arloliu/agx/param"
	"github.com/arloliu/agx/section"
)

func TestEncoder_WireLayout(t *testing.T) {
	store, err := param.NewStore()
	require.NoError(t, err)

	store.SetObjectType(format.TypeGeometry)
	store.SetObjectSubtype("tri")
	store.SetParameter("n", format.TypeUint32, []byte{7, 0, 0, 0})
	store.SetTimeStepCount(1)
	store.SetTimeStepParameterArray(0, "p", format.TypeUint8, []byte{1, 2}, 2)

	got := encodeStore(t, store, WithLittleEndian())

	want := []byte{
		'A', 'G', 'X', 'B',
		1, 0, 0, 0, // version
		4, 3, 2, 1, // marker
		0xFB, 0x01, 0, 0, // object type 507
		1, 0, 0, 0, // time steps
		1, 0, 0, 0, // constants
		3, 0, 0, 0, 't', 'r', 'i', // subtype
		1, 0, 0, 0, 'n', // name
		0,                // scalar
		0xFC, 0x03, 0, 0, // uint32
		4, 0, 0, 0, // value bytes
		7, 0, 0, 0,
		0, 0, 0, 0, // step index
		1, 0, 0, 0, // step params
		1, 0, 0, 0, 'p',
		1,                // array
		0xEC, 0x03, 0, 0, // uint8
		2, 0, 0, 0, 0, 0, 0, 0, // element count
		2, 0, 0, 0, 0, 0, 0, 0, // data bytes
		1, 2,
	}
	require.Equal(t, want, got)
}

func TestEncoder_BigEndianLayout(t *testing.T) {
	store, err := param.NewStore()
	require.NoError(t, err)

	got := encodeStore(t, store, WithBigEndian())

	want := []byte{
		'A', 'G', 'X', 'B',
		0, 0, 0, 1,
		1, 2, 3, 4,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	require.Equal(t, want, got)
}

func TestEncoder_NilStore(t *testing.T) {
	enc, err := NewEncoder(nil)
	require.NoError(t, err)

	data := enc.Bytes()
	require.Len(t, data, section.HeaderSize+section.SubtypeLenSize)
	require.Equal(t, int64(len(data)), enc.Size())

	d := newDecoder(t, data)
	require.Equal(t, uint32(0), d.Header().ConstantParamCount)
	require.Equal(t, uint32(0), d.Header().TimeStepCount)
	require.Equal(t, format.TypeUnknown, d.Header().ObjectType)
}

func TestEncoder_SizeMatchesOutput(t *testing.T) {
	enc, err := NewEncoder(sampleStore(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := enc.Encode(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	require.Equal(t, enc.Size(), n)

	// header + subtype len + bbox.min record + 4 * (step header + position + time)
	constant := 4 + len("bbox.min") + 1 + 8 + 12
	position := 4 + len("vertex.position") + 1 + 20 + 4*12
	timeRec := 4 + len("time") + 1 + 8 + 4
	want := section.HeaderSize + 4 + constant + 4*(8+position+timeRec)
	require.Equal(t, int64(want), n)
}

func TestEncoder_ZeroSizeTypes(t *testing.T) {
	store, err := param.NewStore()
	require.NoError(t, err)

	store.SetParameter("world", format.TypeWorld, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	store.SetParameterArray("lights", format.TypeLight, []byte{1, 2, 3}, 3)
	store.SetParameter("mystery", format.TypeID(424242), []byte{1, 2, 3, 4})

	d := newDecoder(t, encodeStore(t, store))

	var view ParamView
	for range 3 {
		ok, err := d.NextConstant(&view)
		require.NoError(t, err)
		require.True(t, ok)
		require.Empty(t, view.Data, view.NameString())
	}

	ok, err := d.NextConstant(&view)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEncoder_OppositeByteOrder(t *testing.T) {
	store := sampleStore(t)
	native := encodeStore(t, store)
	foreign := encodeStore(t, store, WithByteOrder(endian.OppositeEngine(endian.NativeEngine())))

	require.Equal(t, len(native), len(foreign))
	require.NotEqual(t, native, foreign)

	nd := newDecoder(t, native)
	fd := newDecoder(t, foreign)

	require.False(t, nd.Header().NeedByteSwap)
	require.True(t, fd.Header().NeedByteSwap)
	require.NotEqual(t, fd.Header().HostLittleEndian, fd.Header().FileLittleEndian)

	nh, fh := nd.Header(), fd.Header()
	nh.NeedByteSwap, fh.NeedByteSwap = false, false
	nh.FileLittleEndian, fh.FileLittleEndian = false, false
	require.Equal(t, nh, fh)
}

type failingWriter struct {
	after int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("disk full")
	}
	w.after--

	return len(p), nil
}

func TestEncoder_WriteError(t *testing.T) {
	enc, err := NewEncoder(sampleStore(t))
	require.NoError(t, err)

	for after := range 4 {
		_, err := enc.Encode(&failingWriter{after: after})
		require.ErrorIs(t, err, errs.ErrIO)
	}
}

func TestEncoder_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.agxb")

	enc, err := NewEncoder(sampleStore(t))
	require.NoError(t, err)
	require.NoError(t, enc.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, enc.Bytes(), data)
}

func TestEncoder_WriteFileBadPath(t *testing.T) {
	enc, err := NewEncoder(sampleStore(t))
	require.NoError(t, err)

	err = enc.WriteFile(filepath.Join(t.TempDir(), "missing", "scene.agxb"))
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestEncoder_DoesNotModifyStore(t *testing.T) {
	store := sampleStore(t)

	first := encodeStore(t, store)
	second := encodeStore(t, store)
	require.Equal(t, first, second)
	require.Equal(t, uint32(4), store.TimeStepCount())
}
