package policy

import (
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/residency"
)

// LFUVictimFinder evicts the least frequently used page. Among pages used
// equally often, the least recently used one goes.
type LFUVictimFinder struct {
	count   []int
	lastUse []int
}

// NewLFUVictimFinder creates an LFUVictimFinder.
func NewLFUVictimFinder() *LFUVictimFinder {
	return &LFUVictimFinder{}
}

// Reset clears all counts.
func (f *LFUVictimFinder) Reset(p *refstring.Problem) {
	f.count = filled(p.FrameCount, 0)
	f.lastUse = filled(p.FrameCount, -1)
}

// FindVictim returns the frame with the smallest use count, breaking ties by
// the earliest last use and then by the lowest frame.
func (f *LFUVictimFinder) FindVictim(_ *residency.Frames, _ int) int {
	victim := 0
	for slot := 1; slot < len(f.count); slot++ {
		switch {
		case f.count[slot] < f.count[victim]:
			victim = slot
		case f.count[slot] == f.count[victim] &&
			f.lastUse[slot] < f.lastUse[victim]:
			victim = slot
		}
	}

	return victim
}

// Touch counts the use.
func (f *LFUVictimFinder) Touch(slot, now int) {
	f.count[slot]++
	f.lastUse[slot] = now
}

// Fill restarts the count of the frame at 1.
func (f *LFUVictimFinder) Fill(slot, now int) {
	f.count[slot] = 1
	f.lastUse[slot] = now
}

// Count returns the use count of the page in slot.
func (f *LFUVictimFinder) Count(slot int) int {
	return f.count[slot]
}
