package residency

import "log"

// Absent marks a page that is not in the working set.
const Absent = -1

// WorkingSet tracks, for every page of the process, the last time it was
// referenced. A page is resident exactly when its time is not Absent, so the
// resident set grows and shrinks with the reference pattern.
type WorkingSet struct {
	lastRef []int
	size    int
}

// NewWorkingSet creates an empty working set over pageCount pages.
func NewWorkingSet(pageCount int) *WorkingSet {
	if pageCount < 0 {
		log.Panicf("negative page count %d", pageCount)
	}

	ws := &WorkingSet{lastRef: make([]int, pageCount)}
	ws.Reset()

	return ws
}

// Reset evicts every page.
func (ws *WorkingSet) Reset() {
	for i := range ws.lastRef {
		ws.lastRef[i] = Absent
	}

	ws.size = 0
}

// PageCount returns the number of pages tracked.
func (ws *WorkingSet) PageCount() int {
	return len(ws.lastRef)
}

// Contains tells if page is resident.
func (ws *WorkingSet) Contains(page int) bool {
	return ws.lastRef[page] != Absent
}

// LastReference returns the time page was last referenced, or Absent if
// the page is not resident.
func (ws *WorkingSet) LastReference(page int) int {
	return ws.lastRef[page]
}

// Reference records that page is referenced at time now and reports whether
// the page had to be brought in.
func (ws *WorkingSet) Reference(page, now int) (fault bool) {
	if ws.lastRef[page] == Absent {
		fault = true
		ws.size++
	}

	ws.lastRef[page] = now

	return fault
}

// Evict removes page from the working set.
func (ws *WorkingSet) Evict(page int) {
	if ws.lastRef[page] == Absent {
		return
	}

	ws.lastRef[page] = Absent
	ws.size--
}

// Trim evicts every page last referenced strictly before now-window and
// returns the evicted pages in ascending order. A page referenced exactly
// window steps ago stays.
func (ws *WorkingSet) Trim(now, window int) (evicted []int) {
	limit := now - window
	for page, t := range ws.lastRef {
		if t != Absent && t < limit {
			ws.Evict(page)
			evicted = append(evicted, page)
		}
	}

	return evicted
}

// Size returns the number of resident pages.
func (ws *WorkingSet) Size() int {
	return ws.size
}

// Resident returns the resident pages in ascending order.
func (ws *WorkingSet) Resident() []int {
	pages := make([]int, 0, ws.size)
	for page, t := range ws.lastRef {
		if t != Absent {
			pages = append(pages, page)
		}
	}

	return pages
}
