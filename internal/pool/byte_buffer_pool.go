package pool

import (
	"io"
	"sync"
)

const (
	RecordBufferDefaultSize  = 1024 * 4  // 4KiB, room for a record prefix with a long name
	RecordBufferMaxThreshold = 1024 * 64 // 64KiB
	SlotDefaultSize          = 1024 * 16 // 16KiB
	SlotGrowChunk            = 1024 * 1024
)

// ByteBuffer is a growable byte slice that keeps its capacity across Reset calls.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// View returns B[start:end] with its capacity clipped to end, so appends to the
// returned slice never write into the buffer.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) View(start, end int) []byte {
	if start < 0 || end < start || end > len(bb.B) {
		panic("View: invalid indices")
	}

	return bb.B[start:end:end]
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary, and returns
// the newly exposed region.
func (bb *ByteBuffer) ExtendOrGrow(n int) []byte {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]

	return bb.B[start:]
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// Small buffers grow by SlotDefaultSize; larger ones by 25% of their capacity, or by
// exactly what is required when that is more.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := SlotDefaultSize
	if cap(bb.B) > 4*SlotDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ReadN appends exactly n bytes read from r.
//
// The buffer grows in chunks of at most SlotGrowChunk, so a corrupted length field
// cannot force one huge allocation before the source runs dry. On error the buffer
// keeps whatever was read.
func (bb *ByteBuffer) ReadN(r io.Reader, n uint64) error {
	for n > 0 {
		chunk := n
		if chunk > SlotGrowChunk {
			chunk = SlotGrowChunk
		}

		start := len(bb.B)
		region := bb.ExtendOrGrow(int(chunk))
		read, err := io.ReadFull(r, region)
		bb.B = bb.B[:start+read]
		if err != nil {
			return err
		}
		n -= chunk
	}

	return nil
}

// ByteBufferPool is a pool of ByteBuffers backed by sync.Pool.
//
// Buffers whose capacity grew past maxThreshold are dropped on Put.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var recordPool = NewByteBufferPool(RecordBufferDefaultSize, RecordBufferMaxThreshold)

// GetRecordBuffer retrieves a scratch buffer for record prefixes.
func GetRecordBuffer() *ByteBuffer {
	return recordPool.Get()
}

// PutRecordBuffer returns a scratch buffer to the pool.
func PutRecordBuffer(bb *ByteBuffer) {
	recordPool.Put(bb)
}
