package lptable

import (
	"hash/maphash"

	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// HashFunc must be deterministic for the lifetime of a table.
type HashFunc[K comparable] func(K) uint64

func MakeDefaultHashFunc[K comparable](seed maphash.Seed) HashFunc[K] {
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// XXH3HashFunc hashes string keys with XXH3.
func XXH3HashFunc[K ~string](seed uint64) HashFunc[K] {
	return func(k K) uint64 {
		return xxh3.HashSeed([]byte(k), seed)
	}
}

// IdentityHashFunc uses the absolute value of an integer key as its hash,
// which makes home indexes predictable: abs(key) mod capacity.
func IdentityHashFunc[K constraints.Integer]() HashFunc[K] {
	return func(k K) uint64 {
		if k < 0 {
			// Widen first so the minimum of a narrow type doesn't wrap.
			// math.MinInt64 wraps back to itself, which converts to 1<<63.
			return uint64(-int64(k))
		}

		return uint64(k)
	}
}
