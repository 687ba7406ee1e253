package lptable

import (
	"hash/maphash"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

func TestMakeDefaultHash(t *testing.T) {
	v := "foo"
	s := maphash.MakeSeed()

	h1 := MakeDefaultHashFunc[string](s)(v)
	h2 := maphash.Comparable(s, v)

	require.Equal(t, h2, h1)
}

func TestXXH3HashFunc(t *testing.T) {
	type name string

	tests := []struct {
		name string
		seed uint64
		key  name
	}{
		{"empty", 0, ""},
		{"short", 0, "foo"},
		{"seeded", 42, "foo"},
		{"long", 7, "the quick brown fox jumps over the lazy dog, twice over"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := XXH3HashFunc[name](tt.seed)(tt.key)

			require.Equal(t, xxh3.HashSeed([]byte(tt.key), tt.seed), got)
		})
	}

	require.NotEqual(t, XXH3HashFunc[string](0)("foo"), XXH3HashFunc[string](1)("foo"))
}

func TestIdentityHashFunc(t *testing.T) {
	require.Equal(t, uint64(9), IdentityHashFunc[int]()(9))
	require.Equal(t, uint64(255), IdentityHashFunc[uint8]()(255))

	h := IdentityHashFunc[int64]()
	require.Equal(t, uint64(3), h(-3))
	require.Equal(t, uint64(1)<<63, h(math.MinInt64))
	require.Equal(t, uint64(math.MaxInt8)+1, IdentityHashFunc[int8]()(math.MinInt8))
}
