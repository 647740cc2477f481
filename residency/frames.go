// Package residency provides the containers that hold the pages currently
// loaded for the simulated process: a fixed array of frames for the
// fixed-allocation policies and a per-page table for the working set.
package residency

import (
	"log"
)

// Empty marks a frame that holds no page.
const Empty = -1

// Frames is a fixed number of slots, each holding a page or Empty.
type Frames struct {
	slots []int
}

// NewFrames creates n empty frames.
func NewFrames(n int) *Frames {
	if n < 0 {
		log.Panicf("negative frame count %d", n)
	}

	f := &Frames{slots: make([]int, n)}
	f.Reset()

	return f
}

// Reset empties all the frames.
func (f *Frames) Reset() {
	for i := range f.slots {
		f.slots[i] = Empty
	}
}

// Len returns the number of frames.
func (f *Frames) Len() int {
	return len(f.slots)
}

// Lookup returns the frame that holds page.
func (f *Frames) Lookup(page int) (slot int, ok bool) {
	for i, p := range f.slots {
		if p == page {
			return i, true
		}
	}

	return Empty, false
}

// Page returns the page held by a frame, or Empty.
func (f *Frames) Page(slot int) int {
	return f.slots[slot]
}

// IsEmpty tells if a frame holds no page.
func (f *Frames) IsEmpty(slot int) bool {
	return f.slots[slot] == Empty
}

// Place loads page into a frame and returns the page it replaced, which is
// Empty if the frame was free. Loading a page that is already resident in
// another frame is a bug of the caller.
func (f *Frames) Place(slot, page int) (replaced int) {
	if other, ok := f.Lookup(page); ok && other != slot {
		log.Panicf("page %d is already resident in frame %d", page, other)
	}

	replaced = f.slots[slot]
	f.slots[slot] = page

	return replaced
}

// Occupied returns the number of frames holding a page.
func (f *Frames) Occupied() int {
	n := 0
	for _, p := range f.slots {
		if p != Empty {
			n++
		}
	}

	return n
}

// Snapshot returns a copy of the frame contents in slot order.
func (f *Frames) Snapshot() []int {
	s := make([]int, len(f.slots))
	copy(s, f.slots)

	return s
}
