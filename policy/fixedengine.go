package policy

import (
	"log"

	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/residency"
)

// FixedEngine runs a fixed-allocation policy: the process owns FrameCount
// frames and a VictimFinder chooses where each faulting page goes.
type FixedEngine struct {
	name    string
	finder  VictimFinder
	problem *refstring.Problem
	frames  *residency.Frames

	faults int
	steps  int
}

// NewFixedEngine creates a FixedEngine that selects victims with finder.
func NewFixedEngine(name string, finder VictimFinder) *FixedEngine {
	return &FixedEngine{
		name:   name,
		finder: finder,
	}
}

// Name returns the name of the policy.
func (e *FixedEngine) Name() string {
	return e.name
}

// Allocation returns FixedAllocation.
func (e *FixedEngine) Allocation() Allocation {
	return FixedAllocation
}

// Finder returns the victim finder of the engine.
func (e *FixedEngine) Finder() VictimFinder {
	return e.finder
}

// Frames returns the frames of the current run.
func (e *FixedEngine) Frames() *residency.Frames {
	return e.frames
}

// Reset empties all frames and metadata.
func (e *FixedEngine) Reset(p *refstring.Problem) {
	e.problem = p
	e.frames = residency.NewFrames(p.FrameCount)
	e.finder.Reset(p)
	e.faults = 0
	e.steps = 0
}

// Step processes the reference at time t. With zero frames every reference
// faults and nothing becomes resident.
func (e *FixedEngine) Step(t int) StepRecord {
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

	if slot, ok := e.frames.Lookup(page); ok {
		e.finder.Touch(slot, t)
	} else {
		rec.Fault = true
		e.faults++

		if e.frames.Len() > 0 {
			victim := e.finder.FindVictim(e.frames, t)
			e.frames.Place(victim, page)
			e.finder.Fill(victim, t)
			rec.Victim = victim
		}
	}

	e.steps++
	rec.Faults = e.faults
	rec.Resident = e.frames.Snapshot()

	return rec
}

// Summary reports the faults of the steps taken since the last reset.
func (e *FixedEngine) Summary() Summary {
	return Summary{
		Policy:     e.name,
		Faults:     e.faults,
		References: e.steps,
	}
}
