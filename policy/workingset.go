package policy

import (
	"log"

	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/residency"
)

// WorkingSetEngine keeps resident exactly the pages referenced within the
// last WindowSize steps. The number of frames it occupies varies over time.
type WorkingSetEngine struct {
	name    string
	problem *refstring.Problem
	ws      *residency.WorkingSet

	faults      int
	steps       int
	residentSum int
}

// NewWorkingSetEngine creates a WorkingSetEngine.
func NewWorkingSetEngine() *WorkingSetEngine {
	return &WorkingSetEngine{name: NameWorkingSet}
}

// Name returns the name of the policy.
func (e *WorkingSetEngine) Name() string {
	return e.name
}

// Allocation returns VariableAllocation.
func (e *WorkingSetEngine) Allocation() Allocation {
	return VariableAllocation
}

// WorkingSet returns the resident set of the current run.
func (e *WorkingSetEngine) WorkingSet() *residency.WorkingSet {
	return e.ws
}

// Reset empties the working set.
func (e *WorkingSetEngine) Reset(p *refstring.Problem) {
	e.problem = p
	e.ws = residency.NewWorkingSet(p.PageCount)
	e.faults = 0
	e.steps = 0
	e.residentSum = 0
}

// Step references the page at time t, then drops every page not referenced
// within the window.
func (e *WorkingSetEngine) Step(t int) StepRecord {
	if e.problem == nil {
		log.Panicf("%s: step before reset", e.name)
	}

	if t != e.steps {
		log.Panicf("%s: step %d out of order, expecting %d", e.name, t, e.steps)
	}

	page := e.problem.Refs.At(t)
	rec := StepRecord{
		Policy: e.name,
		Time:   t,
		Page:   page,
		Victim: NoVictim,
	}

	if e.ws.Reference(page, t) {
		rec.Fault = true
		e.faults++
	}

	rec.Evicted = e.ws.Trim(t, e.problem.WindowSize)
	rec.Resident = e.ws.Resident()
	rec.Faults = e.faults

	e.residentSum += len(rec.Resident)
	e.steps++

	return rec
}

// Summary reports the faults and the average resident-set size.
func (e *WorkingSetEngine) Summary() Summary {
	s := Summary{
		Policy:     e.name,
		Faults:     e.faults,
		References: e.steps,
		Variable:   true,
	}

	if e.steps > 0 {
		s.AverageResident = float64(e.residentSum) / float64(e.steps)
	}

	return s
}
