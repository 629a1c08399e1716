package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func sampleData() []byte {
	data := make([]byte, 0, 64*1024)
	for i := range 64 * 1024 {
		data = append(data, byte(i%251), byte(i%7))
	}

	return data
}

func TestGetCodec(t *testing.T) {
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)
		require.Equal(t, typ, codec.Type())

		created, err := CreateCodec(typ)
		require.NoError(t, err)
		require.Equal(t, typ, created.Type())
	}

	_, err := GetCodec(format.CompressionType(99))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = CreateCodec(format.CompressionType(99))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestCodec_BufferRoundTrip(t *testing.T) {
	data := sampleData()

	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			packed, err := codec.Compress(data)
			require.NoError(t, err)
			if typ != format.CompressionNone {
				require.Less(t, len(packed), len(data))
			}

			unpacked, err := codec.Decompress(packed)
			require.NoError(t, err)
			require.Equal(t, data, unpacked)
		})
	}
}

func TestCodec_StreamRoundTrip(t *testing.T) {
	data := sampleData()

	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			var buf bytes.Buffer
			w, err := codec.NewWriter(&buf)
			require.NoError(t, err)
			_, err = w.Write(data[:1000])
			require.NoError(t, err)
			_, err = w.Write(data[1000:])
			require.NoError(t, err)
			require.NoError(t, w.Close())

			require.Equal(t, typ, Detect(buf.Bytes()))

			r, err := codec.NewReader(&buf)
			require.NoError(t, err)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			require.Equal(t, data, got)
		})
	}
}

func TestCodec_BufferReadableAsStream(t *testing.T) {
	data := sampleData()

	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			packed, err := codec.Compress(data)
			require.NoError(t, err)

			r, err := codec.NewReader(bytes.NewReader(packed))
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, data, got)
		})
	}
}

func TestCodec_EmptyInput(t *testing.T) {
	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)

		out, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func TestCodec_CorruptInput(t *testing.T) {
	garbage := []byte("AGXB definitely not compressed")

	_, err := NewZstdCompressor().Decompress(garbage)
	require.Error(t, err)

	_, err = NewS2Compressor().Decompress(garbage)
	require.Error(t, err)

	_, err = NewLZ4Compressor().Decompress(garbage)
	require.Error(t, err)
}

func TestDetect(t *testing.T) {
	require.Equal(t, format.CompressionNone, Detect([]byte("AGXB\x01\x00\x00\x00")))
	require.Equal(t, format.CompressionNone, Detect(nil))
	require.Equal(t, format.CompressionZstd, Detect([]byte{0x28, 0xB5, 0x2F, 0xFD, 0}))
	require.Equal(t, format.CompressionLZ4, Detect([]byte{0x04, 0x22, 0x4D, 0x18}))
	require.Equal(t, format.CompressionS2, Detect([]byte("\xff\x06\x00\x00sNaPpY")))
	require.Equal(t, format.CompressionNone, Detect([]byte{0xFF, 0x06}))
}

func TestByExtension(t *testing.T) {
	tests := map[string]format.CompressionType{
		"scene.agxb":      format.CompressionNone,
		"scene.agxb.zst":  format.CompressionZstd,
		"scene.AGXB.ZSTD": format.CompressionZstd,
		"scene.agxb.s2":   format.CompressionS2,
		"scene.agxb.lz4":  format.CompressionLZ4,
		"scene":           format.CompressionNone,
	}

	for name, want := range tests {
		require.Equal(t, want, ByExtension(name), name)
	}

	for _, typ := range allTypes {
		codec, err := GetCodec(typ)
		require.NoError(t, err)
		require.Equal(t, typ, ByExtension("x.agxb"+codec.Extension()))
	}
}
