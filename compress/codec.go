package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/format"
)

// Compressor compresses a whole buffer.
//
// The returned slice is newly allocated and owned by the caller, except for the
// no-op codec which returns its input.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// StreamCodec wraps readers and writers with a container format.
//
// Closing a writer flushes the container trailer but does not close the wrapped
// writer. Closing a reader releases decoder resources only.
type StreamCodec interface {
	NewReader(r io.Reader) (io.ReadCloser, error)
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// Codec combines buffer and stream operations of one container format.
type Codec interface {
	Compressor
	Decompressor
	StreamCodec

	// Type returns the container format.
	Type() format.CompressionType
	// Extension returns the file name suffix of the container, "" for none.
	Extension() string
}

// CreateCodec creates a Codec for compressionType.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// readAll drains a container reader.
func readAll(codec StreamCodec, src io.Reader) ([]byte, error) {
	r, err := codec.NewReader(src)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
