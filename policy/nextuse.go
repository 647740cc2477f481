package policy

import "github.com/sarchlab/pagesim/refstring"

// Never is the next-use time of a page that is not referenced again.
const Never = -1

// A NextUseTable holds, for every position t of a reference string, the
// position of the next reference to the same page, or Never.
type NextUseTable []int

// BuildNextUseTable fills the table with a single backward scan.
func BuildNextUseTable(refs refstring.ReferenceString) NextUseTable {
	table := make(NextUseTable, refs.Len())
	seen := make(map[int]int)

	for t := refs.Len() - 1; t >= 0; t-- {
		page := refs.At(t)

		next, ok := seen[page]
		if !ok {
			next = Never
		}

		table[t] = next
		seen[page] = t
	}

	return table
}

// After returns the next position after t that references the page
// referenced at t.
func (tb NextUseTable) After(t int) int {
	return tb[t]
}
