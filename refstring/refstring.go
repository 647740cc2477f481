// Package refstring defines the page reference string a simulation runs on,
// together with the parameters of the problem, and provides the ways to
// obtain one: parsing an input file or generating a random case.
package refstring

import "fmt"

// Limits of the problem parameters.
const (
	MaxPageCount  = 100
	MaxFrameCount = 20
	MaxWindowSize = 100
	MaxLength     = 100000
)

// A ReferenceString is the ordered sequence of page identifiers referenced
// by the simulated process. Engines only read it.
type ReferenceString []int

// Len returns the number of references.
func (s ReferenceString) Len() int {
	return len(s)
}

// At returns the page referenced at time t.
func (s ReferenceString) At(t int) int {
	return s[t]
}

// Params are the declared parameters of a problem.
type Params struct {
	PageCount  int `validate:"gte=0,lte=100"`
	FrameCount int `validate:"gte=0,lte=20"`
	WindowSize int `validate:"gte=0,lte=100"`
	Length     int `validate:"gte=0,lte=100000"`
}

func (p Params) String() string {
	return fmt.Sprintf("%d %d %d %d",
		p.PageCount, p.FrameCount, p.WindowSize, p.Length)
}

// A Problem is a validated reference string plus the parameters it was
// declared with.
type Problem struct {
	Params
	Refs ReferenceString
}

// Validate checks the parameter ranges, that the number of references
// matches the declared length, and that every reference names a page in
// [0, PageCount).
func (p *Problem) Validate() error {
	err := p.Params.Validate()
	if err != nil {
		return err
	}

	if len(p.Refs) != p.Length {
		return malformedf(
			"no. of page reference (%d) and string's length (%d) not matched",
			len(p.Refs), p.Length)
	}

	for t, page := range p.Refs {
		if page < 0 {
			return malformedf(
				"page number can't be smaller than 0, got %d at position %d",
				page, t)
		}

		if page >= p.PageCount {
			return malformedf(
				"page number %d at position %d exceeds the total page no. %d",
				page, t, p.PageCount)
		}
	}

	return nil
}
