package blob

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/internal/options"
	"github.com/arloliu/agx/internal/pool"
	"github.com/arloliu/agx/param"
	"github.com/arloliu/agx/section"
)

// Encoder serializes a param.Store into the AGXB layout.
//
// The encoder reads the store on every Encode call and never modifies it. Any store
// content is accepted: unknown types carry empty payloads and a nil store encodes as
// an empty one. The only error an encoder reports is a failing destination.
type Encoder struct {
	*EncoderConfig
	store *param.Store
}

// NewEncoder creates an encoder for store.
//
// Parameters:
//   - store: parameters to encode; nil encodes an empty store
//   - opts: byte order and logging options
//
// Returns:
//   - *Encoder: encoder ready for Encode, Bytes or WriteFile
//   - error: option error
func NewEncoder(store *param.Store, opts ...EncoderOption) (*Encoder, error) {
	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Encoder{EncoderConfig: cfg, store: store}, nil
}

// Engine returns the byte order integers are written in.
func (e *Encoder) Engine() endian.EndianEngine {
	return e.engine
}

// Size returns the exact number of bytes Encode writes.
func (e *Encoder) Size() int64 {
	size := int64(section.HeaderSize + section.SubtypeLenSize + len(e.store.ObjectSubtype()))
	size += scopeSize(e.store.Constants())
	for _, scope := range e.store.TimeSteps() {
		size += section.StepHeaderSize + scopeSize(scope)
	}

	return size
}

func scopeSize(scope *param.Scope) int64 {
	var size int64
	for name, v := range scope.All() {
		size += int64(section.RecordPrefixSize(len(name), v.IsArray()) + v.Len())
	}

	return size
}

// Encode writes the complete AGXB layout to w.
//
// Returns:
//   - int64: number of bytes written
//   - error: errs.ErrIO wrapping the write failure
func (e *Encoder) Encode(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	scratch := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(scratch)

	constants := e.store.Constants()
	header := section.NewHeader(e.store.ObjectType(), e.store.TimeStepCount(), uint32(constants.Len())) //nolint:gosec

	scratch.B = header.AppendTo(scratch.B, e.engine)
	scratch.B = section.AppendSubtype(scratch.B, e.engine, e.store.ObjectSubtype())
	if err := e.flush(cw, scratch); err != nil {
		return cw.n, err
	}

	if err := e.encodeScope(cw, scratch, constants); err != nil {
		return cw.n, err
	}

	for i, scope := range e.store.TimeSteps() {
		step := section.StepHeader{Index: i, ParamCount: uint32(scope.Len())} //nolint:gosec
		scratch.B = step.AppendTo(scratch.B, e.engine)
		if err := e.flush(cw, scratch); err != nil {
			return cw.n, err
		}

		if err := e.encodeScope(cw, scratch, scope); err != nil {
			return cw.n, err
		}
	}

	e.logger.Debug().
		Stringer("objectType", header.ObjectType).
		Uint32("constants", header.ConstantParamCount).
		Uint32("timeSteps", header.TimeStepCount).
		Int64("bytes", cw.n).
		Msg("encoded agxb")

	return cw.n, nil
}

func (e *Encoder) encodeScope(w io.Writer, scratch *pool.ByteBuffer, scope *param.Scope) error {
	for name, v := range scope.All() {
		prefix := section.RecordPrefix{
			IsArray:      v.IsArray(),
			Type:         v.Type(),
			ElementCount: v.ElementCount(),
			DataBytes:    uint64(v.Len()), //nolint:gosec
		}
		scratch.B = section.AppendRecordPrefix(scratch.B, e.engine, name, prefix)
		if err := e.flush(w, scratch); err != nil {
			return err
		}

		if v.Len() == 0 {
			continue
		}
		if _, err := w.Write(v.Bytes()); err != nil {
			return fmt.Errorf("%w: write payload of %q: %w", errs.ErrIO, name, err)
		}
	}

	return nil
}

func (e *Encoder) flush(w io.Writer, scratch *pool.ByteBuffer) error {
	defer scratch.Reset()

	if _, err := scratch.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return nil
}

// Bytes encodes the store into a new byte slice.
func (e *Encoder) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(int(e.Size()))

	// bytes.Buffer writes never fail.
	_, _ = e.Encode(&buf)

	return buf.Bytes()
}

// WriteFile encodes the store into the file at path, creating or truncating it.
//
// Returns errs.ErrIO when the file cannot be created or written.
func (e *Encoder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	bw := bufio.NewWriter(f)
	n, err := e.Encode(bw)
	if err == nil {
		if ferr := bw.Flush(); ferr != nil {
			err = fmt.Errorf("%w: %w", errs.ErrIO, ferr)
		}
	}

	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("%w: %w", errs.ErrIO, cerr)
	}
	if err != nil {
		return err
	}

	e.logger.Debug().Str("path", path).Int64("bytes", n).Msg("wrote agxb file")

	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)

	return n, err
}
