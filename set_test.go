package lptable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewSet(t *testing.T) {
	ss, err := NewSet[uint64](4096)
	require.NoError(t, err)
	require.Equal(t, 4096, ss.Capacity())

	_, err = NewSet[uint64](-1)
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestSet_Put(t *testing.T) {
	ss, err := NewSet[uint64](4096)
	require.NoError(t, err)

	added, err := ss.Put(1)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = ss.Put(1)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, ss.Len())
}

func TestSet_Put_Fill(t *testing.T) {
	ss, err := NewSet[uint64](64)
	require.NoError(t, err)

	for i := range uint64(ss.Capacity()) {
		added, err := ss.Put(i)
		require.NoError(t, err)
		require.True(t, added)
	}

	_, err = ss.Put(uint64(ss.Capacity()) + 1)
	require.ErrorIs(t, err, ErrTableFull)
}

func TestSet_Tombstones(t *testing.T) {
	// Use a custom hash function that forces collisions
	// by returning the same home index for everything.
	collisionHash := func(k string) uint64 {
		return 0 // All keys start at index 0
	}

	ss, err := NewSet(16, WithHashFunc[string, struct{}](collisionHash))
	require.NoError(t, err)

	for _, k := range []string{"A", "B", "C"} {
		added, err := ss.Put(k)
		require.NoError(t, err)
		require.True(t, added)
	}

	// Delete the "bridge" element
	require.True(t, ss.Delete("B"))
	require.False(t, ss.Delete("B"))

	// Verify we can still find "C" even though there's a hole at "B"
	require.True(t, ss.Has("C"), "Probe chain broken: could not find 'C' after deleting 'B'")
	require.False(t, ss.Has("B"))

	ss.Compact()
	require.True(t, ss.Has("A"))
	require.True(t, ss.Has("C"))
	require.Zero(t, ss.Stats().Tombstones)

	ss.Reset()
	require.True(t, ss.IsEmpty())
	require.False(t, ss.Has("A"))
}
