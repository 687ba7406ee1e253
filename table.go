package lptable

import (
	"errors"
	"fmt"
	"hash/maphash"
	"iter"
	"strings"
	"unsafe"

	"github.com/phuslu/log"
)

var (
	ErrInvalidCapacity = errors.New("lptable: invalid capacity")
	ErrTableFull       = errors.New("lptable: table is full")
)

type table[K comparable, V any] struct {
	slots []slot[K, V]

	size       int
	tombstones int

	hashFunc HashFunc[K]
	logger   *log.Logger

	emptyV V
}

type Option[K comparable, V any] func(t *table[K, V])

// Override default hash function.
func WithHashFunc[K comparable, V any](f HashFunc[K]) Option[K, V] {
	return func(t *table[K, V]) {
		t.hashFunc = f
	}
}

// Report full tables, compactions and growth to the given logger.
// A nil logger keeps the table silent.
func WithLogger[K comparable, V any](l *log.Logger) Option[K, V] {
	return func(t *table[K, V]) {
		t.logger = l
	}
}

func (t *table[K, V]) init(capacity int, opts ...Option[K, V]) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	// All slots start unused.
	t.slots = make([]slot[K, V], capacity)
	t.size = 0
	t.tombstones = 0

	for _, opt := range opts {
		opt(t)
	}

	if t.hashFunc == nil {
		t.hashFunc = MakeDefaultHashFunc[K](maphash.MakeSeed())
	}

	return nil
}

// Capacity returns the fixed number of slots.
func (t *table[K, V]) Capacity() int {
	return len(t.slots)
}

// Len returns the number of entries visible to lookups.
func (t *table[K, V]) Len() int {
	return t.size
}

func (t *table[K, V]) IsEmpty() bool {
	return t.size == 0
}

// index returns the home slot of a key.
func (t *table[K, V]) index(key K) int {
	return int(t.hashFunc(key) % uint64(len(t.slots)))
}

func (t *table[K, V]) probe(key K) probeSeq {
	return makeProbeSeq(t.index(key), len(t.slots))
}

// find returns the slot holding key, or -1.
func (t *table[K, V]) find(key K) int {
	for seq := t.probe(key); !seq.done(); seq = seq.next() {
		s := &t.slots[seq.offset]

		switch s.state {
		case slotUnused:
			return -1
		case slotActive:
			if s.key == key {
				return seq.offset
			}
		}
		// Tombstones never end a search.
	}

	return -1
}

func (t *table[K, V]) get(key K) (V, bool) {
	if i := t.find(key); i >= 0 {
		return t.slots[i].value, true
	}

	return t.emptyV, false
}

func (t *table[K, V]) put(key K, value V) (V, bool, error) {
	free := -1

	for seq := t.probe(key); !seq.done(); seq = seq.next() {
		s := &t.slots[seq.offset]

		switch s.state {
		case slotActive:
			if s.key == key {
				old := s.value
				s.value = value

				return old, true, nil
			}
		case slotTombstone:
			// Cache the first reusable slot, but keep looking for the key.
			if free < 0 {
				free = seq.offset
			}
		case slotUnused:
			if free < 0 {
				free = seq.offset
			}

			t.occupy(free, key, value)

			return t.emptyV, false, nil
		}
	}

	// The whole table was walked without a match, so the key is absent
	// and any tombstone seen on the way can take it.
	if free >= 0 {
		t.occupy(free, key, value)
		return t.emptyV, false, nil
	}

	if t.logger != nil {
		t.logger.Warn().
			Int("capacity", len(t.slots)).
			Int("size", t.size).
			Msg("lptable: table is full")
	}

	return t.emptyV, false, ErrTableFull
}

func (t *table[K, V]) occupy(i int, key K, value V) {
	s := &t.slots[i]
	if s.state == slotTombstone {
		t.tombstones--
	}

	s.state = slotActive
	s.key = key
	s.value = value
	t.size++
}

func (t *table[K, V]) delete(key K) (V, bool) {
	i := t.find(key)
	if i < 0 {
		return t.emptyV, false
	}

	s := &t.slots[i]
	v := s.value

	// Drop the payload so the table doesn't pin it; state alone is authoritative.
	*s = slot[K, V]{state: slotTombstone}
	t.size--
	t.tombstones++

	return v, true
}

// Reset returns every slot to unused.
func (t *table[K, V]) Reset() {
	clear(t.slots)

	t.size = 0
	t.tombstones = 0
}

// Compact drops all tombstones in place, keeping every entry reachable.
func (t *table[K, V]) Compact() {
	purged := t.tombstones

	// Mark all tombstones as unused and all active slots as tombstones.
	// Dropping the tombstones breaks the probe invariant, the re-marked
	// active slots tell us which entries still have to be placed again.
	for i := range t.slots {
		s := &t.slots[i]

		switch s.state {
		case slotTombstone:
			*s = slot[K, V]{}
		case slotActive:
			s.state = slotTombstone
		}
	}

	for i := 0; i < len(t.slots); i++ {
		s := &t.slots[i]
		if s.state != slotTombstone {
			continue
		}

		target := t.relocation(s.key, i)
		dst := &t.slots[target]

		switch {
		case target == i:
			s.state = slotActive
		case dst.state == slotUnused:
			*dst = slot[K, V]{state: slotActive, key: s.key, value: s.value}
			*s = slot[K, V]{}
		default:
			// dst still waits for placement: swap and repeat for it.
			s.key, dst.key = dst.key, s.key
			s.value, dst.value = dst.value, s.value
			dst.state = slotActive

			i--
		}
	}

	t.tombstones = 0

	if t.logger != nil {
		t.logger.Debug().
			Int("purged", purged).
			Int("size", t.size).
			Msg("lptable: compacted")
	}
}

// relocation returns the first slot along key's probe sequence that is not
// active yet. Slot `from` holds the key and is not active, so the walk ends
// there at the latest.
func (t *table[K, V]) relocation(key K, from int) int {
	for seq := t.probe(key); !seq.done(); seq = seq.next() {
		if t.slots[seq.offset].state != slotActive {
			return seq.offset
		}
	}

	return from
}

// All yields active entries in slot order.
func (t *table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range t.slots {
			s := &t.slots[i]
			if s.state != slotActive {
				continue
			}

			if !yield(s.key, s.value) {
				return
			}
		}
	}
}

// String renders one "key = value" line per entry, in slot order.
func (t *table[K, V]) String() string {
	var b strings.Builder
	for k, v := range t.All() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}

		fmt.Fprintf(&b, "%v = %v", k, v)
	}

	return b.String()
}

func (t *table[K, V]) Stats() Stats {
	capacity := len(t.slots)
	stats := Stats{
		Size:            t.size,
		Capacity:        capacity,
		Tombstones:      t.tombstones,
		LoadFactor:      float32(t.size) / float32(capacity),
		MemoryFootprint: unsafe.Sizeof(slot[K, V]{}) * uintptr(capacity),

		TombstonesCapacityRatio: float32(t.tombstones) / float32(capacity),
	}

	if t.size > 0 {
		stats.TombstonesSizeRatio = float32(t.tombstones) / float32(t.size)
	}

	return stats
}
