// Package agx reads and writes AGXB files: binary dumps of the parameters of one
// ANARI object, split into constant parameters and per time step parameters.
//
// An AGXB file holds a fixed header, the object subtype, the constant parameter
// records, and one block of records per time step. Every integer is written in the
// writer's byte order and the header marker records which order that was; readers
// normalize integers but hand payload bytes through untouched.
//
// # Basic Usage
//
// Writing a file:
//
//	import "github.com/arloliu/agx"
//
//	store, _ := agx.NewStore()
//	store.SetObjectType(format.TypeGeometry)
//	store.SetObjectSubtype("triangle")
//	store.SetParameter("bbox.max", format.TypeFloat32Vec3, param.PackFloat32(1, 1, 1))
//
//	store.SetTimeStepCount(2)
//	for t := range uint32(2) {
//	    store.SetTimeStepParameter(t, "time", format.TypeFloat32, param.PackFloat32(float32(t)))
//	}
//
//	if err := agx.WriteFile(store, "anim.agxb"); err != nil {
//	    log.Fatal(err)
//	}
//
// Reading a file record by record:
//
//	decoder, _ := agx.OpenFile("anim.agxb")
//	defer decoder.Close()
//
//	for view, err := range decoder.Constants() {
//	    // view.Name and view.Data are valid until the next record
//	}
//	for step, err := range decoder.TimeSteps() {
//	    for view, err := range decoder.TimeStepParams() {
//	        ...
//	    }
//	}
//
// # Package Structure
//
// This package provides top-level wrappers around the param, blob and render
// packages for the most common use cases. For fine-grained control over byte
// order, registries and record-level decoding, use those packages directly.
package agx

import (
	"bytes"
	"io"

	"github.com/arloliu/agx/blob"
	"github.com/arloliu/agx/param"
	"github.com/arloliu/agx/render"
)

// NewStore creates an empty parameter store.
//
// The store is permissive: time step writes with an out of range index are clamped
// to the last time step. Pass param.WithStrictTimeSteps() to reject them instead.
//
// Parameters:
//   - opts: Optional configuration functions (see param.StoreOption)
//
// Returns:
//   - *param.Store: The created store.
//   - error: An error if an option is invalid.
func NewStore(opts ...param.StoreOption) (*param.Store, error) {
	return param.NewStore(opts...)
}

// NewEncoder creates an encoder serializing store.
//
// The encoder writes host byte order unless blob.WithLittleEndian(),
// blob.WithBigEndian() or blob.WithByteOrder() say otherwise. Payload bytes are
// written as stored.
func NewEncoder(store *param.Store, opts ...blob.EncoderOption) (*blob.Encoder, error) {
	return blob.NewEncoder(store, opts...)
}

// Encode writes store to w and returns the number of bytes written.
func Encode(w io.Writer, store *param.Store, opts ...blob.EncoderOption) (int64, error) {
	enc, err := blob.NewEncoder(store, opts...)
	if err != nil {
		return 0, err
	}

	return enc.Encode(w)
}

// Marshal returns store serialized as AGXB bytes.
func Marshal(store *param.Store, opts ...blob.EncoderOption) ([]byte, error) {
	enc, err := blob.NewEncoder(store, opts...)
	if err != nil {
		return nil, err
	}

	return enc.Bytes(), nil
}

// WriteFile writes store to path, replacing any existing file.
//
// Returns errs.ErrIO when the file cannot be created or written.
func WriteFile(store *param.Store, path string, opts ...blob.EncoderOption) error {
	enc, err := blob.NewEncoder(store, opts...)
	if err != nil {
		return err
	}

	return enc.WriteFile(path)
}

// NewDecoder reads the header from r and returns a decoder positioned before the
// first constant.
//
// ResetConstants and ResetTimeSteps rewind only when r implements io.Seeker; on
// forward-only readers each region can be read once, in file order.
//
// Parameters:
//   - r: The AGXB stream
//   - opts: Optional configuration functions (see blob.DecoderOption)
//
// Returns:
//   - *blob.Decoder: The decoder, never nil when error is nil.
//   - error: errs.ErrInvalidMagic, errs.ErrInvalidEndianMarker,
//     errs.ErrInvalidHeaderSize or errs.ErrIO.
func NewDecoder(r io.Reader, opts ...blob.DecoderOption) (*blob.Decoder, error) {
	return blob.NewDecoder(r, opts...)
}

// OpenFile opens path and returns a seekable decoder. Close releases the file.
func OpenFile(path string, opts ...blob.DecoderOption) (*blob.Decoder, error) {
	return blob.OpenFile(path, opts...)
}

// ReadFile decodes the whole file at path into a new store.
func ReadFile(path string, opts ...blob.DecoderOption) (*param.Store, error) {
	d, err := blob.OpenFile(path, opts...)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	return blob.ReadStore(d)
}

// Unmarshal decodes AGXB bytes into a new store.
func Unmarshal(data []byte, opts ...blob.DecoderOption) (*param.Store, error) {
	d, err := blob.NewDecoder(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, err
	}

	return blob.ReadStore(d)
}

// WriteJSON writes store as indented JSON, rendering payloads in host byte order.
func WriteJSON(w io.Writer, store *param.Store) error {
	return render.NewRenderer(render.WithRegistry(store.Registry())).WriteJSON(w, store)
}
