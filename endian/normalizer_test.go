package endian

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/agx/errs"
)

func TestNewNormalizer(t *testing.T) {
	host := NativeEngine()

	t.Run("same byte order", func(t *testing.T) {
		marker := host.AppendUint32(nil, Marker)

		norm, err := NewNormalizer(marker, host)
		require.NoError(t, err)
		require.False(t, norm.NeedByteSwap())
		require.Equal(t, host, norm.FileEngine())
		require.Equal(t, Marker, norm.Uint32(marker))
	})

	t.Run("opposite byte order", func(t *testing.T) {
		foreign := OppositeEngine(host)
		marker := foreign.AppendUint32(nil, Marker)

		norm, err := NewNormalizer(marker, host)
		require.NoError(t, err)
		require.True(t, norm.NeedByteSwap())
		require.Equal(t, foreign, norm.FileEngine())
		require.Equal(t, Marker, norm.Uint32(marker))
	})

	t.Run("simulated opposite host", func(t *testing.T) {
		marker := host.AppendUint32(nil, Marker)

		norm, err := NewNormalizer(marker, OppositeEngine(host))
		require.NoError(t, err)
		require.True(t, norm.NeedByteSwap())
		require.Equal(t, host, norm.FileEngine())
	})

	t.Run("unrecognized marker", func(t *testing.T) {
		_, err := NewNormalizer([]byte{0x01, 0x03, 0x02, 0x04}, host)
		require.ErrorIs(t, err, errs.ErrInvalidEndianMarker)
	})

	t.Run("short marker", func(t *testing.T) {
		_, err := NewNormalizer([]byte{0x01, 0x02}, host)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})
}

func TestNormalizerFields(t *testing.T) {
	host := NativeEngine()
	foreign := OppositeEngine(host)

	native, err := NewNormalizer(host.AppendUint32(nil, Marker), host)
	require.NoError(t, err)
	swapped, err := NewNormalizer(foreign.AppendUint32(nil, Marker), host)
	require.NoError(t, err)

	const v32 uint32 = 0xDEADBEEF
	const v64 uint64 = 0x0102030405060708

	require.Equal(t, v32, native.Uint32(host.AppendUint32(nil, v32)))
	require.Equal(t, v32, swapped.Uint32(foreign.AppendUint32(nil, v32)))
	require.Equal(t, v64, native.Uint64(host.AppendUint64(nil, v64)))
	require.Equal(t, v64, swapped.Uint64(foreign.AppendUint64(nil, v64)))
}
