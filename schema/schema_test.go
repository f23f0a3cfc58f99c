package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/keyframe/encoding"
	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
)

// ==============================================================================
// Helpers
// ==============================================================================

func numericCodec(t *testing.T, prim format.PrimitiveType) encoding.NumericCodec {
	t.Helper()

	c, err := encoding.NewNumericCodec(prim)
	require.NoError(t, err)

	return c
}

func deltaCodec(t *testing.T, orig, delta format.PrimitiveType) encoding.NumericDeltaCodec {
	t.Helper()

	c, err := encoding.NewNumericDeltaCodec(orig, delta)
	require.NoError(t, err)

	return c
}

func stringCodec(t *testing.T, enc format.StringEncoding) encoding.StringCodec {
	t.Helper()

	c, err := encoding.NewStringCodec(enc)
	require.NoError(t, err)

	return c
}

func u8Blocks(t *testing.T, names ...string) []Block {
	t.Helper()

	blocks := make([]Block, len(names))
	for i, name := range names {
		blocks[i] = Block{Index: i, Property: name, Codec: numericCodec(t, format.Uint8)}
	}

	return blocks
}

// ==============================================================================
// Construction and validation
// ==============================================================================

func TestNewSchema(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s, err := New(3, u8Blocks(t, "x", "y"))
		require.NoError(t, err)
		require.Equal(t, byte(3), s.Version())
		require.Len(t, s.Blocks(), 2)

		_, hasInterval := s.IFrameInterval()
		require.False(t, hasInterval)
		_, hasHeader := s.CustomHeader()
		require.False(t, hasHeader)
	})

	t.Run("SortsByIndex", func(t *testing.T) {
		blocks := []Block{
			{Index: 2, Property: "c", Codec: numericCodec(t, format.Uint8)},
			{Index: 0, Property: "a", Codec: numericCodec(t, format.Uint8)},
			{Index: 1, Property: "b", Codec: numericCodec(t, format.Uint8)},
		}

		s, err := New(1, blocks)
		require.NoError(t, err)
		require.Equal(t, "a", s.Blocks()[0].Property)
		require.Equal(t, "b", s.Blocks()[1].Property)
		require.Equal(t, "c", s.Blocks()[2].Property)
	})

	t.Run("DuplicateIndex", func(t *testing.T) {
		blocks := u8Blocks(t, "x", "y")
		blocks[1].Index = 0

		_, err := New(1, blocks)
		require.ErrorIs(t, err, errs.ErrDuplicateBlockIndex)
	})

	t.Run("NegativeIndex", func(t *testing.T) {
		blocks := u8Blocks(t, "x")
		blocks[0].Index = -1

		_, err := New(1, blocks)
		require.ErrorIs(t, err, errs.ErrDuplicateBlockIndex)
	})

	t.Run("DuplicateProperty", func(t *testing.T) {
		blocks := u8Blocks(t, "x", "x")

		_, err := New(1, blocks)
		require.ErrorIs(t, err, errs.ErrDuplicateProperty)
	})

	t.Run("EmptyProperty", func(t *testing.T) {
		blocks := u8Blocks(t, "")

		_, err := New(1, blocks)
		require.ErrorIs(t, err, errs.ErrEmptyProperty)
	})

	t.Run("MissingCodec", func(t *testing.T) {
		_, err := New(1, []Block{{Index: 0, Property: "x"}})
		require.ErrorIs(t, err, errs.ErrUnknownBlockKind)
	})
}

func TestNewSchemaCompressionCompatibility(t *testing.T) {
	t.Run("MatchingPrimitive", func(t *testing.T) {
		blocks := []Block{{
			Index:       0,
			Property:    "x",
			Codec:       numericCodec(t, format.Uint16),
			Compression: deltaCodec(t, format.Uint16, format.Int8),
		}}

		_, err := New(1, blocks)
		require.NoError(t, err)
	})

	t.Run("MismatchedPrimitive", func(t *testing.T) {
		blocks := []Block{{
			Index:       0,
			Property:    "x",
			Codec:       numericCodec(t, format.Uint16),
			Compression: deltaCodec(t, format.Uint32, format.Int8),
		}}

		_, err := New(1, blocks)
		require.ErrorIs(t, err, errs.ErrIncompatibleCompression)
	})

	t.Run("DeltaOnNonNumericBlock", func(t *testing.T) {
		blocks := []Block{{
			Index:       0,
			Property:    "s",
			Codec:       stringCodec(t, format.UTF8),
			Compression: deltaCodec(t, format.Uint8, format.Int8),
		}}

		_, err := New(1, blocks)
		require.ErrorIs(t, err, errs.ErrIncompatibleCompression)
	})

	t.Run("IFrameOnlyOnAnyBlock", func(t *testing.T) {
		blocks := []Block{{
			Index:       0,
			Property:    "s",
			Codec:       stringCodec(t, format.UTF8),
			Compression: encoding.IFrameOnlyCodec{},
		}}

		_, err := New(1, blocks)
		require.NoError(t, err)
	})
}

func TestSchemaOptions(t *testing.T) {
	t.Run("StreamCompression", func(t *testing.T) {
		s, err := New(1, u8Blocks(t, "x"), WithStreamCompression(4))
		require.NoError(t, err)

		interval, ok := s.IFrameInterval()
		require.True(t, ok)
		require.Equal(t, 4, interval)
	})

	t.Run("IntervalTooSmall", func(t *testing.T) {
		_, err := New(1, u8Blocks(t, "x"), WithStreamCompression(1))
		require.ErrorIs(t, err, errs.ErrInvalidIFrameInterval)
	})

	t.Run("CustomHeader", func(t *testing.T) {
		s, err := New(1, u8Blocks(t, "x"), WithCustomHeader([]byte{0xDE, 0xAD}))
		require.NoError(t, err)

		info, ok := s.CustomHeader()
		require.True(t, ok)
		require.Equal(t, []byte{0xDE, 0xAD}, info)
	})

	t.Run("ZeroLengthCustomHeader", func(t *testing.T) {
		s, err := New(1, u8Blocks(t, "x"), WithCustomHeader([]byte{}))
		require.NoError(t, err)

		info, ok := s.CustomHeader()
		require.True(t, ok)
		require.Empty(t, info)
	})
}

// ==============================================================================
// Version handling and identity
// ==============================================================================

func TestValidateVersion(t *testing.T) {
	s, err := New(7, u8Blocks(t, "x"))
	require.NoError(t, err)

	require.True(t, s.ValidateVersion(7))
	require.False(t, s.ValidateVersion(8))

	selected, ok := s.Select(7)
	require.True(t, ok)
	require.Same(t, s, selected)

	_, ok = s.Select(8)
	require.False(t, ok)
}

func TestFingerprint(t *testing.T) {
	base, err := New(1, u8Blocks(t, "x", "y"))
	require.NoError(t, err)

	t.Run("Stable", func(t *testing.T) {
		again, err := New(1, u8Blocks(t, "x", "y"))
		require.NoError(t, err)
		require.Equal(t, base.Fingerprint(), again.Fingerprint())
	})

	t.Run("VersionChanges", func(t *testing.T) {
		other, err := New(2, u8Blocks(t, "x", "y"))
		require.NoError(t, err)
		require.NotEqual(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("PropertyChanges", func(t *testing.T) {
		other, err := New(1, u8Blocks(t, "x", "z"))
		require.NoError(t, err)
		require.NotEqual(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("CompressionChanges", func(t *testing.T) {
		blocks := u8Blocks(t, "x", "y")
		blocks[0].Compression = encoding.IFrameOnlyCodec{}

		other, err := New(1, blocks, WithStreamCompression(2))
		require.NoError(t, err)
		require.NotEqual(t, base.Fingerprint(), other.Fingerprint())
	})
}
