package policy

import (
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/residency"
)

// FIFOVictimFinder evicts the page that was loaded first.
type FIFOVictimFinder struct {
	loadTime []int
}

// NewFIFOVictimFinder creates a FIFOVictimFinder.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	return &FIFOVictimFinder{}
}

// Reset marks every frame as never loaded.
func (f *FIFOVictimFinder) Reset(p *refstring.Problem) {
	f.loadTime = filled(p.FrameCount, -1)
}

// FindVictim returns the frame with the earliest load time.
func (f *FIFOVictimFinder) FindVictim(_ *residency.Frames, _ int) int {
	return argMin(f.loadTime)
}

// Touch does nothing. Hits do not change the arrival order.
func (f *FIFOVictimFinder) Touch(_, _ int) {}

// Fill records the load time.
func (f *FIFOVictimFinder) Fill(slot, now int) {
	f.loadTime[slot] = now
}
