package policy

import (
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/residency"
)

// LRUVictimFinder evicts the least recently used page.
type LRUVictimFinder struct {
	lastUse []int
}

// NewLRUVictimFinder creates an LRUVictimFinder.
func NewLRUVictimFinder() *LRUVictimFinder {
	return &LRUVictimFinder{}
}

// Reset marks every frame as never used.
func (f *LRUVictimFinder) Reset(p *refstring.Problem) {
	f.lastUse = filled(p.FrameCount, -1)
}

// FindVictim returns the frame with the earliest last use.
func (f *LRUVictimFinder) FindVictim(_ *residency.Frames, _ int) int {
	return argMin(f.lastUse)
}

// Touch records the use.
func (f *LRUVictimFinder) Touch(slot, now int) {
	f.lastUse[slot] = now
}

// Fill records the use.
func (f *LRUVictimFinder) Fill(slot, now int) {
	f.lastUse[slot] = now
}
