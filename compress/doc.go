// Package compress provides the stream codecs used for compressed AGXB fixture files.
//
// An AGXB file is never compressed internally. Fixtures can however be stored inside a
// compressed container (".agxb.zst", ".agxb.s2", ".agxb.lz4"); this package wraps such
// a container so the decoder reads plain AGXB bytes.
//
// # Supported Containers
//
//   - None: bytes pass through unchanged
//   - Zstd: Zstandard frames (klauspost/compress/zstd)
//   - S2: S2 framed stream, readable as Snappy (klauspost/compress/s2)
//   - LZ4: LZ4 frames (pierrec/lz4)
//
// # Usage
//
// Codecs work on whole buffers:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	packed, err := codec.Compress(data)
//	data, err = codec.Decompress(packed)
//
// or on streams:
//
//	w, err := codec.NewWriter(file)
//	_, err = encoder.Encode(w)
//	err = w.Close()
//
// Detect identifies a container from its first bytes, and ByExtension from a file
// name, so callers can open fixtures without knowing how they were stored.
package compress
