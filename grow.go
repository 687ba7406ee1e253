package lptable

import "fmt"

// Grow rehashes every entry of m into a new map with the given capacity,
// keeping m's hash function and logger. m itself is left untouched.
//
// Tables never grow on their own; Grow is meant for callers that hit
// ErrTableFull and want to retry with more room.
func Grow[K comparable, V any](m *Map[K, V], capacity int) (*Map[K, V], error) {
	if capacity < m.Len() {
		return nil, fmt.Errorf("%w: %d slots can't hold %d entries", ErrInvalidCapacity, capacity, m.Len())
	}

	g, err := New(capacity, WithHashFunc[K, V](m.hashFunc), WithLogger[K, V](m.logger))
	if err != nil {
		return nil, err
	}

	for k, v := range m.All() {
		if _, _, err := g.Put(k, v); err != nil {
			return nil, err
		}
	}

	if m.logger != nil {
		m.logger.Info().
			Int("from", m.Capacity()).
			Int("to", capacity).
			Int("size", g.Len()).
			Msg("lptable: grown")
	}

	return g, nil
}
