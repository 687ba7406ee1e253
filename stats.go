package lptable

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

type Stats struct {
	Size                    int
	Capacity                int
	Tombstones              int
	LoadFactor              float32
	TombstonesCapacityRatio float32
	TombstonesSizeRatio     float32
	MemoryFootprint         uintptr
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"size=%s capacity=%s tombstones=%s load=%.2f memory=%s",
		humanize.Comma(int64(s.Size)),
		humanize.Comma(int64(s.Capacity)),
		humanize.Comma(int64(s.Tombstones)),
		s.LoadFactor,
		humanize.Bytes(uint64(s.MemoryFootprint)),
	)
}
