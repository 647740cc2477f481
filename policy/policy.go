// Package policy implements the page-replacement policies: MIN, FIFO, LRU,
// LFU, Clock, and the variable-allocation Working-Set. Every policy is an
// Engine that consumes a reference string one reference at a time and emits
// a StepRecord per reference.
package policy

import (
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/sim"
)

// NoVictim is the victim of a step that did not replace any frame.
const NoVictim = -1

// Allocation tells how the resident set of a policy is sized.
type Allocation int

// Allocation kinds.
const (
	FixedAllocation Allocation = iota
	VariableAllocation
)

func (a Allocation) String() string {
	if a == VariableAllocation {
		return "variable"
	}

	return "fixed"
}

// A StepRecord describes what happened when a policy processed one
// reference.
type StepRecord struct {
	Policy string
	Time   int
	Page   int
	Fault  bool

	// Victim is the frame the page was loaded into on a fault, or NoVictim.
	// Variable-allocation policies never report a victim.
	Victim int

	// Resident holds the frame contents in slot order (residency.Empty for
	// free frames) for fixed allocation, and the resident pages in ascending
	// order for variable allocation.
	Resident []int

	// Evicted lists the pages that left a variable-allocation resident set
	// in this step.
	Evicted []int

	// Faults is the number of faults up to and including this step.
	Faults int
}

// A Summary is the outcome of running a policy over a whole reference
// string.
type Summary struct {
	Policy     string
	Faults     int
	References int
	Variable   bool

	// AverageResident is the mean resident-set size over all steps. It is
	// only meaningful for variable allocation.
	AverageResident float64
}

// FaultRate returns Faults/References, or 0 for an empty string.
func (s Summary) FaultRate() float64 {
	if s.References == 0 {
		return 0
	}

	return float64(s.Faults) / float64(s.References)
}

// An Engine runs one replacement policy. Reset must be called before the
// first Step of every run; steps are then taken at times 0, 1, 2, ... in
// order.
type Engine interface {
	sim.Named

	Allocation() Allocation
	Reset(p *refstring.Problem)
	Step(t int) StepRecord
	Summary() Summary
}

// Run resets e and drives it over the whole reference string of p, handing
// every step record to visit. It returns the summary of the run.
func Run(
	e Engine,
	p *refstring.Problem,
	visit func(StepRecord),
) Summary {
	e.Reset(p)

	for t := 0; t < p.Refs.Len(); t++ {
		rec := e.Step(t)
		if visit != nil {
			visit(rec)
		}
	}

	return e.Summary()
}
