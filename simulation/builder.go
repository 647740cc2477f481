package simulation

import (
	"log"

	"github.com/sarchlab/pagesim/policy"
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/sim"
)

// Builder can be used to build a Driver.
type Builder struct {
	problem  *refstring.Problem
	policies []string
	hooks    []sim.Hook
	idGen    sim.IDGenerator
}

// MakeBuilder creates a new builder that runs every policy.
func MakeBuilder() Builder {
	return Builder{
		idGen: sim.NewXIDGenerator(),
	}
}

// WithProblem sets the reference string and parameters to simulate.
func (b Builder) WithProblem(p *refstring.Problem) Builder {
	b.problem = p
	return b
}

// WithPolicies restricts the simulation to the named policies. Names are
// matched as by policy.New. The policies still run in the standard order.
func (b Builder) WithPolicies(names ...string) Builder {
	b.policies = append([]string(nil), names...)
	return b
}

// WithHook registers a hook on the driver. Hooks are invoked in the order
// they are added.
func (b Builder) WithHook(h sim.Hook) Builder {
	b.hooks = append(append([]sim.Hook(nil), b.hooks...), h)
	return b
}

// WithIDGenerator sets the generator of run IDs.
func (b Builder) WithIDGenerator(g sim.IDGenerator) Builder {
	b.idGen = g
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.problem == nil {
		log.Panic("simulation requires a problem")
	}

	if b.idGen == nil {
		log.Panic("simulation requires an ID generator")
	}
}

// Build builds the driver.
func (b Builder) Build() *Driver {
	b.parametersMustBeValid()

	d := &Driver{
		HookableBase: sim.NewHookableBase(),
		problem:      b.problem,
		idGen:        b.idGen,
		engines:      b.engines(),
	}

	for _, h := range b.hooks {
		d.AcceptHook(h)
	}

	return d
}

func (b Builder) engines() []policy.Engine {
	if len(b.policies) == 0 {
		return policy.Standard()
	}

	selected := make(map[string]bool)
	for _, name := range b.policies {
		e, ok := policy.New(name)
		if !ok {
			log.Panicf("unknown policy %q", name)
		}

		selected[e.Name()] = true
	}

	engines := make([]policy.Engine, 0, len(selected))
	for _, name := range policy.Names() {
		if !selected[name] {
			continue
		}

		e, _ := policy.New(name)
		engines = append(engines, e)
	}

	return engines
}
