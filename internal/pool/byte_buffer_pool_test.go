package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferWriteAndReset(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte{1, 2, 3})
	require.Equal(t, 3, bb.Len())
	require.Equal(t, []byte{1, 2, 3}, bb.Bytes())

	bb.Reset()
	require.Zero(t, bb.Len())
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte{1, 2})

	bb.Grow(1024)
	require.GreaterOrEqual(t, cap(bb.B)-len(bb.B), 1024)
	require.Equal(t, []byte{1, 2}, bb.Bytes())

	// Sufficient capacity is a no-op.
	before := cap(bb.B)
	bb.Grow(1)
	require.Equal(t, before, cap(bb.B))
}

func TestPoolDiscardsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(8, 16)

	small := p.Get()
	small.MustWrite(make([]byte, 8))
	p.Put(small)

	big := NewByteBuffer(64)
	p.Put(big) // over threshold, silently dropped

	require.NotPanics(t, func() { p.Put(nil) })
}

func TestDefaultPools(t *testing.T) {
	eb := GetEntryBuffer()
	require.NotNil(t, eb)
	eb.MustWrite([]byte{1})
	PutEntryBuffer(eb)

	sb := GetStreamBuffer()
	require.NotNil(t, sb)
	PutStreamBuffer(sb)
}
