package lptable

// Set is the key-only variant of Map.
type Set[K comparable] struct {
	table[K, struct{}]
}

func NewSet[K comparable](capacity int, opts ...Option[K, struct{}]) (*Set[K], error) {
	var s Set[K]
	if err := s.init(capacity, opts...); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *Set[K]) Has(key K) bool {
	return s.find(key) >= 0
}

// Puts a key in the set.
// Returns whether a key is new.
func (s *Set[K]) Put(key K) (bool, error) {
	_, replaced, err := s.put(key, struct{}{})
	if err != nil {
		return false, err
	}

	return !replaced, nil
}

func (s *Set[K]) Delete(key K) bool {
	_, ok := s.delete(key)
	return ok
}
