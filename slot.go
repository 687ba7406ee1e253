package lptable

type slotState uint8

const (
	// Zero value, so a freshly allocated slot array is all unused.
	slotUnused slotState = iota
	slotActive
	// Left behind by a delete. Lookups walk past it, inserts may reuse it.
	slotTombstone
)

type slot[K comparable, V any] struct {
	state slotState

	// key and value are meaningful only while state is slotActive.
	key   K
	value V
}
