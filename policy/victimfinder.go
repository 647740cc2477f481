package policy

import (
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/residency"
)

// A VictimFinder decides which frame should receive a faulting page. It owns
// the per-frame metadata of its policy.
type VictimFinder interface {
	// Reset discards all metadata and prepares for a run over p.
	Reset(p *refstring.Problem)

	// FindVictim returns the frame to load the faulting page into. It is
	// only called when there is at least one frame.
	FindVictim(frames *residency.Frames, now int) int

	// Touch records a reference to the page already resident in slot.
	Touch(slot, now int)

	// Fill records that a page has just been loaded into slot.
	Fill(slot, now int)
}

// argMin returns the index of the smallest value. Ties go to the lowest
// index.
func argMin(values []int) int {
	victim := 0
	for i := 1; i < len(values); i++ {
		if values[i] < values[victim] {
			victim = i
		}
	}

	return victim
}

func filled(n, value int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = value
	}

	return s
}
