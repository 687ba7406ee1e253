package lptable

import "unsafe"

// Estimates capacity (number of slots) from the given memory size in bytes.
func CapacityFromSize[K comparable, V any](size uintptr) int {
	return int(size / unsafe.Sizeof(slot[K, V]{}))
}
