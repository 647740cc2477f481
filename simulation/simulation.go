// Package simulation runs a set of page-replacement policies over one
// reference string and reports every step through hooks.
package simulation

import (
	"log/slog"

	"github.com/sarchlab/pagesim/policy"
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/sim"
)

// RunInfo describes one policy run. It is the item of HookPosRunStart and
// the detail of every other hook invoked during the run.
type RunInfo struct {
	RunID      string
	Policy     string
	Allocation policy.Allocation
	Params     refstring.Params
}

// A Driver runs policies one after another over the same problem.
type Driver struct {
	*sim.HookableBase

	problem *refstring.Problem
	engines []policy.Engine
	idGen   sim.IDGenerator
}

// Problem returns the problem being simulated.
func (d *Driver) Problem() *refstring.Problem {
	return d.problem
}

// Policies returns the names of the policies in the order they run.
func (d *Driver) Policies() []string {
	names := make([]string, 0, len(d.engines))
	for _, e := range d.engines {
		names = append(names, e.Name())
	}

	return names
}

// Run simulates every policy and returns their summaries in run order.
// Engines are reset before each run, so Run can be called repeatedly.
func (d *Driver) Run() []policy.Summary {
	summaries := make([]policy.Summary, 0, len(d.engines))

	for _, e := range d.engines {
		summaries = append(summaries, d.runOne(e))
	}

	return summaries
}

func (d *Driver) runOne(e policy.Engine) policy.Summary {
	info := RunInfo{
		RunID:      d.idGen.Generate(),
		Policy:     e.Name(),
		Allocation: e.Allocation(),
		Params:     d.problem.Params,
	}

	slog.Debug("policy run started",
		"run", info.RunID, "policy", info.Policy, "params", info.Params.String())

	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    sim.HookPosRunStart,
		Item:   info,
	})

	s := policy.Run(e, d.problem, func(rec policy.StepRecord) {
		d.InvokeHook(sim.HookCtx{
			Domain: d,
			Pos:    sim.HookPosStep,
			Item:   rec,
			Detail: info,
		})
	})

	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    sim.HookPosRunEnd,
		Item:   s,
		Detail: info,
	})

	slog.Debug("policy run finished",
		"run", info.RunID, "policy", info.Policy,
		"faults", s.Faults, "references", s.References)

	return s
}
