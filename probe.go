package lptable

import "fmt"

// probeSeq is the linear probe sequence starting at a key's home index:
//
//	p(i) := (home + i) mod capacity, for i in [0, capacity)
//
// Every slot is visited exactly once, so a walk that reaches the end has
// seen the whole table. Insert, lookup, delete and compaction all share it.
type probeSeq struct {
	capacity int
	offset   int
	index    int
}

func makeProbeSeq(home, capacity int) probeSeq {
	return probeSeq{
		capacity: capacity,
		offset:   home,
	}
}

func (s probeSeq) next() probeSeq {
	s.index++
	s.offset++
	if s.offset == s.capacity {
		s.offset = 0
	}

	return s
}

// done reports whether all capacity positions were visited.
func (s probeSeq) done() bool {
	return s.index >= s.capacity
}

func (s probeSeq) String() string {
	return fmt.Sprintf("capacity=%d offset=%d index=%d", s.capacity, s.offset, s.index)
}
