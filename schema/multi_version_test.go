package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/keyframe/errs"
)

func TestMultiVersionSelect(t *testing.T) {
	v1, err := New(1, u8Blocks(t, "x"))
	require.NoError(t, err)
	v2, err := New(2, u8Blocks(t, "x", "y"))
	require.NoError(t, err)

	m, err := NewMultiVersion(v1, v2)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())
	require.Len(t, m.Schemas(), 2)

	selected, ok := m.Select(1)
	require.True(t, ok)
	require.Same(t, v1, selected)

	selected, ok = m.Select(2)
	require.True(t, ok)
	require.Same(t, v2, selected)

	_, ok = m.Select(3)
	require.False(t, ok)
}

func TestMultiVersionRejectsDuplicates(t *testing.T) {
	v1, err := New(1, u8Blocks(t, "x"))
	require.NoError(t, err)

	t.Run("SameFingerprint", func(t *testing.T) {
		_, err := NewMultiVersion(v1, v1)
		require.ErrorIs(t, err, errs.ErrDuplicateVersion)
	})

	t.Run("SameVersionDifferentShape", func(t *testing.T) {
		other, err := New(1, u8Blocks(t, "a", "b"))
		require.NoError(t, err)

		_, err = NewMultiVersion(v1, other)
		require.ErrorIs(t, err, errs.ErrDuplicateVersion)
	})

	t.Run("AddAfterConstruction", func(t *testing.T) {
		m, err := NewMultiVersion(v1)
		require.NoError(t, err)

		v2, err := New(2, u8Blocks(t, "x"))
		require.NoError(t, err)
		require.NoError(t, m.Add(v2))
		require.Equal(t, 2, m.Len())
	})
}

func TestMultiVersionEmpty(t *testing.T) {
	m, err := NewMultiVersion()
	require.NoError(t, err)

	_, ok := m.Select(1)
	require.False(t, ok)
}
