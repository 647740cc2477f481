package policy

import (
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/residency"
)

// MINVictimFinder evicts the page whose next reference lies farthest in the
// future (Belady's optimal policy).
//
// Forward distances come from a next-use table built once per run instead of
// scanning the rest of the string on every fault. Since a resident page is
// not referenced between its last reference and its next use, the time
// remembered at its last reference is exactly the first occurrence a full
// lookahead would find.
type MINVictimFinder struct {
	table   NextUseTable
	nextUse []int
	length  int
}

// NewMINVictimFinder creates a MINVictimFinder.
func NewMINVictimFinder() *MINVictimFinder {
	return &MINVictimFinder{}
}

// Reset builds the next-use table of p.
func (f *MINVictimFinder) Reset(p *refstring.Problem) {
	f.table = BuildNextUseTable(p.Refs)
	f.nextUse = filled(p.FrameCount, Never)
	f.length = p.Refs.Len()
}

// FindVictim returns the frame with the largest forward distance. Free frames
// and pages that never recur are at distance length. Ties go to the lowest
// frame.
func (f *MINVictimFinder) FindVictim(frames *residency.Frames, now int) int {
	victim := 0
	farthest := -1

	for slot := 0; slot < frames.Len(); slot++ {
		d := f.ForwardDistance(frames, slot, now)
		if farthest < d {
			farthest = d
			victim = slot
		}
	}

	return victim
}

// ForwardDistance returns how many steps after now the page in slot is
// referenced again.
func (f *MINVictimFinder) ForwardDistance(
	frames *residency.Frames,
	slot, now int,
) int {
	if frames.IsEmpty(slot) || f.nextUse[slot] == Never {
		return f.length
	}

	return f.nextUse[slot] - now
}

// Touch remembers the next use of the page referenced at now.
func (f *MINVictimFinder) Touch(slot, now int) {
	f.nextUse[slot] = f.table.After(now)
}

// Fill remembers the next use of the page loaded at now.
func (f *MINVictimFinder) Fill(slot, now int) {
	f.nextUse[slot] = f.table.After(now)
}
