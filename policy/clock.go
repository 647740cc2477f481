package policy

import (
	"log"

	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/residency"
)

// ClockVictimFinder implements the second-chance policy. Each frame has a
// reference bit and a hand sweeps the frames in a circle: a frame with its
// bit set loses the bit and is skipped, the first frame without the bit is
// the victim.
type ClockVictimFinder struct {
	referenced []bool
	hand       int
	lastSweep  int
}

// NewClockVictimFinder creates a ClockVictimFinder.
func NewClockVictimFinder() *ClockVictimFinder {
	return &ClockVictimFinder{}
}

// Reset clears every bit and moves the hand back to frame 0.
func (f *ClockVictimFinder) Reset(p *refstring.Problem) {
	f.referenced = make([]bool, p.FrameCount)
	f.hand = 0
	f.lastSweep = 0
}

// FindVictim sweeps from the hand and leaves the hand on the frame after the
// victim. Free frames have no reference bit.
func (f *ClockVictimFinder) FindVictim(_ *residency.Frames, _ int) int {
	n := len(f.referenced)
	cleared := 0

	for {
		slot := f.hand
		f.hand = (f.hand + 1) % n

		if !f.referenced[slot] {
			f.lastSweep = cleared
			return slot
		}

		f.referenced[slot] = false
		cleared++

		if cleared > n {
			log.Panicf("clock hand swept %d frames without a victim", cleared)
		}
	}
}

// Touch sets the reference bit.
func (f *ClockVictimFinder) Touch(slot, _ int) {
	f.referenced[slot] = true
}

// Fill sets the reference bit of the newly loaded page.
func (f *ClockVictimFinder) Fill(slot, _ int) {
	f.referenced[slot] = true
}

// Hand returns the frame the next sweep starts from.
func (f *ClockVictimFinder) Hand() int {
	return f.hand
}

// LastSweep returns how many reference bits the last FindVictim cleared.
func (f *ClockVictimFinder) LastSweep() int {
	return f.lastSweep
}

// Referenced tells if the reference bit of slot is set.
func (f *ClockVictimFinder) Referenced(slot int) bool {
	return f.referenced[slot]
}
