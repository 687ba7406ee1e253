package lptable

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Values are opaque to the map, so unexported fields take part in comparisons.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Map is a fixed-capacity hash map using open addressing with linear probing.
// It never grows: it retains the capacity it was initialized with, and a put
// into a table with no free slot left fails with ErrTableFull. Deleted entries
// leave tombstones behind, which later inserts reuse and Compact drops.
//
// Map is not safe for concurrent use.
type Map[K comparable, V any] struct {
	table[K, V]
}

// Returns a new instance of the map with the given number of slots.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*Map[K, V], error) {
	var m Map[K, V]
	if err := m.init(capacity, opts...); err != nil {
		return nil, err
	}

	return &m, nil
}

// Returns the value stored for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.get(key)
}

func (m *Map[K, V]) Has(key K) bool {
	return m.find(key) >= 0
}

// Puts a key in the map.
// Returns the previous value and whether it was replaced.
func (m *Map[K, V]) Put(key K, value V) (V, bool, error) {
	return m.put(key, value)
}

// Deletes a key from the map, returning the removed value.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	return m.delete(key)
}

// Equal reports whether both maps hold the same entries, regardless of
// capacity, hash function or slot layout. Values are compared with cmp.Equal,
// unexported fields included; opts are passed on to it.
func (m *Map[K, V]) Equal(other *Map[K, V], opts ...cmp.Option) bool {
	if m.Len() != other.Len() {
		return false
	}

	opts = append([]cmp.Option{exportAll}, opts...)

	for k, v := range m.All() {
		ov, ok := other.Get(k)
		if !ok || !cmp.Equal(v, ov, opts...) {
			return false
		}
	}

	return true
}
