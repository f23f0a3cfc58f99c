package pool

import "sync"

// Buffer sizing for entry streams. Entries are small (tens of bytes), so the
// scratch pool starts small; sink buffers accumulate whole streams and start
// larger. Oversized buffers are dropped on Put to avoid memory bloat.
const (
	EntryBufferDefaultSize  = 256
	EntryBufferMaxThreshold = 1024 * 64

	StreamBufferDefaultSize  = 1024 * 4
	StreamBufferMaxThreshold = 1024 * 1024
)

// ByteBuffer is a growable byte slice with an amortized growth strategy.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset resets the buffer to be empty, retaining the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. Small buffers grow by EntryBufferDefaultSize steps; larger
// buffers grow by 25% of current capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := EntryBufferDefaultSize
	if cap(bb.B) > 4*EntryBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a sync.Pool of ByteBuffers with a maximum retained size.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool handing out buffers of the given default
// size, discarding returned buffers that grew beyond maxThreshold.
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

var (
	entryDefaultPool  = NewByteBufferPool(EntryBufferDefaultSize, EntryBufferMaxThreshold)
	streamDefaultPool = NewByteBufferPool(StreamBufferDefaultSize, StreamBufferMaxThreshold)
)

// GetEntryBuffer retrieves a scratch buffer sized for single entries.
func GetEntryBuffer() *ByteBuffer {
	return entryDefaultPool.Get()
}

// PutEntryBuffer returns an entry scratch buffer to its pool.
func PutEntryBuffer(bb *ByteBuffer) {
	entryDefaultPool.Put(bb)
}

// GetStreamBuffer retrieves a buffer sized for whole-stream accumulation.
func GetStreamBuffer() *ByteBuffer {
	return streamDefaultPool.Get()
}

// PutStreamBuffer returns a stream buffer to its pool.
func PutStreamBuffer(bb *ByteBuffer) {
	streamDefaultPool.Put(bb)
}
