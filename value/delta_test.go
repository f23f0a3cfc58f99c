package value

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/keyframe/format"
)

func TestSubBitsWraps(t *testing.T) {
	// 95 - 105 wraps to 246 in uint8 arithmetic.
	require.Equal(t, uint64(0xF6), SubBits(format.Uint8, 105, 95))
	require.Equal(t, uint64(5), SubBits(format.Uint8, 100, 105))

	// Full 64-bit width.
	require.Equal(t, ^uint64(0), SubBits(format.Uint64, 1, 0))
}

func TestAddBitsWraps(t *testing.T) {
	require.Equal(t, uint64(95), AddBits(format.Uint8, 105, 0xFFFFFFFFFFFFFFF6))
	require.Equal(t, uint64(0), AddBits(format.Uint8, 0xFF, 1))
	require.Equal(t, uint64(0), AddBits(format.Uint64, ^uint64(0), 1))
}

func TestExtend(t *testing.T) {
	t.Run("SignedSignExtends", func(t *testing.T) {
		require.Equal(t, int64(-10), Extend(format.Int8, 0xF6))
		require.Equal(t, int64(-1), Extend(format.Int16, 0xFFFF))
		require.Equal(t, int64(5), Extend(format.Int8, 5))
	})

	t.Run("UnsignedZeroExtends", func(t *testing.T) {
		require.Equal(t, int64(0xF6), Extend(format.Uint8, 0xF6))
		require.Equal(t, int64(0xFFFF), Extend(format.Uint16, 0xFFFF))
	})

	t.Run("MasksHighBits", func(t *testing.T) {
		require.Equal(t, int64(1), Extend(format.Uint8, 0x101))
	})
}

func TestDeltaRoundTrip(t *testing.T) {
	// prev + (curr - prev) == curr under wrapping for any in-width inputs.
	cases := []struct {
		prim       format.PrimitiveType
		prev, curr uint64
	}{
		{format.Uint8, 0, 255},
		{format.Uint8, 255, 0},
		{format.Int16, 0x8000, 0x7FFF},
		{format.Uint64, ^uint64(0), 0},
	}

	for _, tc := range cases {
		delta := SubBits(tc.prim, tc.prev, tc.curr)
		require.Equal(t, tc.curr, AddBits(tc.prim, tc.prev, delta))
	}
}
