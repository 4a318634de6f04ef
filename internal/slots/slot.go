package slots

import (
	"fmt"
	"sort"
)

// Location addresses a placeholder cell in a run-of-show sheet. Rows and
// columns are zero-based; a negative column means the sheet has none.
type Location struct {
	Sheet             string
	Row               int
	Column            int
	VideoNumberColumn int
	DurationColumn    int
}

// Slot is one placeholder awaiting a video. Index is the placeholder's
// position among the slots preceding the same match.
type Slot struct {
	Location
	Match int
	Index int
}

func (s Slot) String() string {
	return fmt.Sprintf("%s row %d (match #%d, placeholder %d)", s.Sheet, s.Row+1, s.Match, s.Index)
}

// Sort orders slots by match number and then placeholder index. Slots that
// tie keep their relative order.
func Sort(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Match != slots[j].Match {
			return slots[i].Match < slots[j].Match
		}
		return slots[i].Index < slots[j].Index
	})
}
