package blob

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"os"

	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/internal/options"
	"github.com/arloliu/agx/internal/pool"
	"github.com/arloliu/agx/section"
)

// Decoder reads an AGXB stream front to back.
//
// The header and subtype are read by NewDecoder. Afterwards the constants region is
// walked with NextConstant and the time step blocks with BeginNextTimeStep and
// NextTimeStepParam. The decoder keeps one buffer for the current record; see
// ParamView for the lifetime of returned data.
//
// Note: the Decoder is NOT thread-safe.
type Decoder struct {
	*DecoderConfig

	cur    *cursor
	closer io.Closer
	norm   endian.Normalizer
	header HeaderInfo
	state  State
	err    error

	slot    *pool.ByteBuffer
	scratch [section.MaxRecordPrefix]byte

	constStart     int64
	stepsStart     int64
	stepsKnown     bool
	constRemaining uint32

	stepsRemaining uint32
	inStep         bool
	step           TimeStep
	stepRemaining  uint32
}

// NewDecoder reads the header and subtype from r and returns a decoder positioned at
// the first constant.
//
// When r implements io.Seeker, ResetConstants and ResetTimeSteps can rewind.
//
// Returns:
//   - *Decoder: decoder in StateHeaderRead
//   - error: errs.ErrInvalidMagic, errs.ErrInvalidEndianMarker,
//     errs.ErrInvalidHeaderSize, errs.ErrTruncated or errs.ErrIO
func NewDecoder(r io.Reader, opts ...DecoderOption) (*Decoder, error) {
	cfg := newDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	d := &Decoder{
		DecoderConfig: cfg,
		cur:           newCursor(r, cfg.bufferSize),
		slot:          pool.NewByteBuffer(pool.SlotDefaultSize),
		state:         StateUnopened,
	}

	if err := d.open(); err != nil {
		d.logger.Debug().Err(err).Msg("open agxb stream failed")
		return nil, err
	}

	return d, nil
}

// OpenFile opens the file at path and reads its header. Close releases the file.
func OpenFile(path string, opts ...DecoderOption) (*Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	d, err := NewDecoder(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.closer = f

	return d, nil
}

// Close releases the file opened by OpenFile and invalidates outstanding views.
// Closing a decoder created by NewDecoder does not close its reader.
func (d *Decoder) Close() error {
	d.slot.Reset()
	if d.closer == nil {
		return nil
	}

	err := d.closer.Close()
	d.closer = nil
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return nil
}

func (d *Decoder) open() error {
	buf := d.scratch[:section.HeaderSize]
	n, err := io.ReadFull(d.cur, buf)
	if n >= section.MagicSize && string(buf[:section.MagicSize]) != section.Magic {
		return fmt.Errorf("%w: got %q", errs.ErrInvalidMagic, buf[:section.MagicSize])
	}
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: read %d of %d bytes", errs.ErrInvalidHeaderSize, n, section.HeaderSize)
		}

		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	header, norm, err := section.ParseHeader(buf, d.host)
	if err != nil {
		return err
	}
	d.norm = norm

	lenBuf := d.scratch[:section.SubtypeLenSize]
	if err := d.cur.readFull(lenBuf); err != nil {
		return fmt.Errorf("subtype length: %w", err)
	}

	subtypeLen := uint64(norm.Uint32(lenBuf))
	d.slot.Reset()
	if err := d.slot.ReadN(d.cur, subtypeLen); err != nil {
		return fmt.Errorf("subtype: %w", readError(err))
	}
	subtype := string(d.slot.Bytes())
	d.slot.Reset()

	d.header = HeaderInfo{
		Version:            header.Version,
		EndianMarker:       header.EndianMarker,
		ObjectType:         header.ObjectType,
		TimeStepCount:      header.TimeStepCount,
		ConstantParamCount: header.ConstantParamCount,
		Subtype:            subtype,
		HostLittleEndian:   endian.IsLittleEndian(norm.HostEngine()),
		FileLittleEndian:   endian.IsLittleEndian(norm.FileEngine()),
		NeedByteSwap:       norm.NeedByteSwap(),
	}

	d.constStart = d.cur.pos
	d.constRemaining = header.ConstantParamCount
	d.state = StateHeaderRead

	d.logger.Debug().
		Uint32("version", header.Version).
		Stringer("objectType", header.ObjectType).
		Uint32("constants", header.ConstantParamCount).
		Uint32("timeSteps", header.TimeStepCount).
		Bool("byteSwap", norm.NeedByteSwap()).
		Msg("decoded agxb header")

	return nil
}

// Header returns the decoded header.
func (d *Decoder) Header() HeaderInfo {
	return d.header
}

// Subtype returns the object subtype, or "" when none was written.
func (d *Decoder) Subtype() string {
	return d.header.Subtype
}

// State returns the current decoder state.
func (d *Decoder) State() State {
	return d.state
}

// Err returns the error that moved the decoder into StateError, if any.
func (d *Decoder) Err() error {
	return d.err
}

// Seekable reports whether Reset* can rewind the source.
func (d *Decoder) Seekable() bool {
	return d.cur.seekable()
}

// fail latches err and moves to StateError.
func (d *Decoder) fail(err error) error {
	d.err = err
	d.state = StateError
	d.slot.Reset()
	d.logger.Debug().Err(err).Int64("offset", d.cur.pos).Msg("agxb decoder failed")

	return err
}

func (d *Decoder) failed() error {
	return fmt.Errorf("%w: %w", errs.ErrReaderFailed, d.err)
}

// ResetConstants positions the decoder at the first constant.
//
// On a non-seekable source this only succeeds while no constant has been consumed
// yet; otherwise it returns errs.ErrNotSeekable and the decoder state is unchanged.
func (d *Decoder) ResetConstants() error {
	if d.state == StateError {
		return d.failed()
	}

	if err := d.cur.seek(d.constStart); err != nil {
		if errors.Is(err, errs.ErrNotSeekable) {
			return err
		}

		return d.fail(err)
	}

	d.slot.Reset()
	d.constRemaining = d.header.ConstantParamCount
	d.inStep = false
	d.state = StateConstants

	return nil
}

// NextConstant decodes the next constant into view.
//
// Returns:
//   - bool: true when a record was decoded, false when the constants region is
//     exhausted or has been left for the time steps
//   - error: errs.ErrTruncated, errs.ErrInvalidRecordSize, errs.ErrIO, or
//     errs.ErrReaderFailed after an earlier error
func (d *Decoder) NextConstant(view *ParamView) (bool, error) {
	switch d.state {
	case StateError:
		return false, d.failed()
	case StateHeaderRead:
		d.state = StateConstants
	case StateConstants:
	default:
		return false, nil
	}

	if d.constRemaining == 0 {
		d.markStepsStart()
		return false, nil
	}

	if err := d.readRecord(view); err != nil {
		return false, d.fail(fmt.Errorf("constant %d: %w", d.header.ConstantParamCount-d.constRemaining, err))
	}
	d.constRemaining--

	return true, nil
}

func (d *Decoder) markStepsStart() {
	if !d.stepsKnown {
		d.stepsStart = d.cur.pos
		d.stepsKnown = true
	}
}

// skipConstants consumes the constants not yet read.
func (d *Decoder) skipConstants() error {
	for d.constRemaining > 0 {
		if err := d.skipRecord(); err != nil {
			return fmt.Errorf("constant %d: %w", d.header.ConstantParamCount-d.constRemaining, err)
		}
		d.constRemaining--
	}
	d.markStepsStart()

	return nil
}

// ResetTimeSteps positions the decoder before the first time step block. Unread
// constants are skipped.
//
// On a non-seekable source this only succeeds while no time step block has been
// entered; otherwise it returns errs.ErrNotSeekable.
func (d *Decoder) ResetTimeSteps() error {
	if d.state == StateError {
		return d.failed()
	}

	if !d.stepsKnown {
		if err := d.enterTimeSteps(); err != nil {
			return err
		}
	}

	if err := d.cur.seek(d.stepsStart); err != nil {
		if errors.Is(err, errs.ErrNotSeekable) {
			return err
		}

		return d.fail(err)
	}

	d.slot.Reset()
	d.stepsRemaining = d.header.TimeStepCount
	d.inStep = false
	d.stepRemaining = 0
	d.state = StateTimeSteps

	return nil
}

// enterTimeSteps leaves the constants region.
func (d *Decoder) enterTimeSteps() error {
	if err := d.skipConstants(); err != nil {
		return d.fail(err)
	}

	d.stepsRemaining = d.header.TimeStepCount
	d.state = StateTimeSteps

	return nil
}

// BeginNextTimeStep reads the header of the next time step block. Unread constants
// and unread records of the previous block are skipped.
//
// Returns:
//   - TimeStep: index and parameter count of the block
//   - bool: false once every block has been visited
//   - error: as NextConstant
func (d *Decoder) BeginNextTimeStep() (TimeStep, bool, error) {
	switch d.state {
	case StateError:
		return TimeStep{}, false, d.failed()
	case StateDone:
		return TimeStep{}, false, nil
	case StateUnopened, StateHeaderRead, StateConstants:
		if err := d.enterTimeSteps(); err != nil {
			return TimeStep{}, false, err
		}
	case StateTimeSteps:
	}

	if d.inStep {
		if err := d.skipStep(); err != nil {
			return TimeStep{}, false, d.fail(err)
		}
	}

	if d.stepsRemaining == 0 {
		d.inStep = false
		d.state = StateDone
		d.slot.Reset()

		return TimeStep{}, false, nil
	}

	buf := d.scratch[:section.StepHeaderSize]
	if err := d.cur.readFull(buf); err != nil {
		return TimeStep{}, false, d.fail(fmt.Errorf("time step header: %w", err))
	}

	hdr, err := section.ParseStepHeader(buf, d.norm)
	if err != nil {
		return TimeStep{}, false, d.fail(err)
	}

	d.stepsRemaining--
	d.step = TimeStep{Index: hdr.Index, ParamCount: hdr.ParamCount}
	d.stepRemaining = hdr.ParamCount
	d.inStep = true

	return d.step, true, nil
}

// CurrentTimeStep returns the block entered by the last successful BeginNextTimeStep.
func (d *Decoder) CurrentTimeStep() (TimeStep, bool) {
	return d.step, d.inStep
}

// NextTimeStepParam decodes the next record of the current time step block.
//
// It returns false once ParamCount records of the block have been produced, and
// errs.ErrNoTimeStep when no block has been entered.
func (d *Decoder) NextTimeStepParam(view *ParamView) (bool, error) {
	if d.state == StateError {
		return false, d.failed()
	}
	if !d.inStep {
		return false, errs.ErrNoTimeStep
	}

	if d.stepRemaining == 0 {
		return false, nil
	}

	if err := d.readRecord(view); err != nil {
		return false, d.fail(fmt.Errorf("time step %d param %d: %w", d.step.Index, d.step.ParamCount-d.stepRemaining, err))
	}
	d.stepRemaining--

	return true, nil
}

// SkipRemainingTimeStep consumes the unread records of the current block without
// decoding views. A decode error latches the decoder but is not returned; the next
// call reports it.
func (d *Decoder) SkipRemainingTimeStep() {
	if d.state != StateTimeSteps || !d.inStep {
		return
	}

	if err := d.skipStep(); err != nil {
		_ = d.fail(err)
	}
}

func (d *Decoder) skipStep() error {
	d.slot.Reset()
	for d.stepRemaining > 0 {
		if err := d.skipRecord(); err != nil {
			return fmt.Errorf("time step %d param %d: %w", d.step.Index, d.step.ParamCount-d.stepRemaining, err)
		}
		d.stepRemaining--
	}

	return nil
}

// readPrefix reads a record up to its payload, returning the name length and tail.
// With keepName the name is appended to the slot, otherwise it is skipped.
func (d *Decoder) readPrefix(keepName bool) (int, section.RecordPrefix, error) {
	lenBuf := d.scratch[:section.NameLenSize]
	if err := d.cur.readFull(lenBuf); err != nil {
		return 0, section.RecordPrefix{}, err
	}

	nameLen := uint64(d.norm.Uint32(lenBuf))
	if keepName {
		if err := d.slot.ReadN(d.cur, nameLen); err != nil {
			return 0, section.RecordPrefix{}, readError(err)
		}
	} else if err := d.cur.discard(nameLen); err != nil {
		return 0, section.RecordPrefix{}, err
	}

	flagBuf := d.scratch[:section.FlagSize]
	if err := d.cur.readFull(flagBuf); err != nil {
		return 0, section.RecordPrefix{}, err
	}

	flag := flagBuf[0]
	tailSize, err := section.TailSize(flag)
	if err != nil {
		return 0, section.RecordPrefix{}, err
	}

	tail := d.scratch[:tailSize]
	if err := d.cur.readFull(tail); err != nil {
		return 0, section.RecordPrefix{}, err
	}

	prefix, err := section.ParseRecordTail(flag, tail, d.norm)
	if err != nil {
		return 0, section.RecordPrefix{}, err
	}

	if prefix.DataBytes > math.MaxInt-nameLen {
		return 0, section.RecordPrefix{}, fmt.Errorf("%w: %d payload bytes", errs.ErrInvalidRecordSize, prefix.DataBytes)
	}

	return int(nameLen), prefix, nil //nolint:gosec
}

// readRecord decodes one record into the slot and points view at it.
func (d *Decoder) readRecord(view *ParamView) error {
	view.reset()
	d.slot.Reset()

	nameLen, prefix, err := d.readPrefix(true)
	if err != nil {
		return err
	}

	if err := d.slot.ReadN(d.cur, prefix.DataBytes); err != nil {
		return readError(err)
	}

	view.Name = d.slot.View(0, nameLen)
	view.IsArray = prefix.IsArray
	view.Type = prefix.Type
	view.ElementCount = prefix.ElementCount
	view.Data = d.slot.View(nameLen, d.slot.Len())

	return nil
}

func (d *Decoder) skipRecord() error {
	_, prefix, err := d.readPrefix(false)
	if err != nil {
		return err
	}

	return d.cur.discard(prefix.DataBytes)
}

// Constants iterates over the remaining constants. The view is reused between
// iterations. A decode error is yielded once and ends the iteration.
func (d *Decoder) Constants() iter.Seq2[*ParamView, error] {
	return func(yield func(*ParamView, error) bool) {
		var view ParamView
		for {
			ok, err := d.NextConstant(&view)
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok || !yield(&view, nil) {
				return
			}
		}
	}
}

// TimeSteps iterates over the remaining time step blocks. Records the loop body does
// not read are skipped before the next block.
func (d *Decoder) TimeSteps() iter.Seq2[TimeStep, error] {
	return func(yield func(TimeStep, error) bool) {
		for {
			step, ok, err := d.BeginNextTimeStep()
			if err != nil {
				yield(TimeStep{}, err)
				return
			}
			if !ok || !yield(step, nil) {
				return
			}
		}
	}
}

// TimeStepParams iterates over the remaining records of the current block.
func (d *Decoder) TimeStepParams() iter.Seq2[*ParamView, error] {
	return func(yield func(*ParamView, error) bool) {
		var view ParamView
		for {
			ok, err := d.NextTimeStepParam(&view)
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok || !yield(&view, nil) {
				return
			}
		}
	}
}
