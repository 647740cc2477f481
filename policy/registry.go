package policy

import "strings"

// Names of the policies.
const (
	NameMIN        = "MIN"
	NameFIFO       = "FIFO"
	NameLRU        = "LRU"
	NameLFU        = "LFU"
	NameClock      = "Clock"
	NameWorkingSet = "WS"
)

// Names returns the policy names in the order the policies are simulated.
func Names() []string {
	return []string{
		NameMIN, NameFIFO, NameLRU, NameLFU, NameClock, NameWorkingSet,
	}
}

// New creates a fresh engine for the named policy. Names are matched
// case-insensitively; "workingset" is accepted for WS.
func New(name string) (Engine, bool) {
	switch strings.ToLower(name) {
	case "min", "opt", "optimal":
		return NewFixedEngine(NameMIN, NewMINVictimFinder()), true
	case "fifo":
		return NewFixedEngine(NameFIFO, NewFIFOVictimFinder()), true
	case "lru":
		return NewFixedEngine(NameLRU, NewLRUVictimFinder()), true
	case "lfu":
		return NewFixedEngine(NameLFU, NewLFUVictimFinder()), true
	case "clock":
		return NewFixedEngine(NameClock, NewClockVictimFinder()), true
	case "ws", "workingset":
		return NewWorkingSetEngine(), true
	}

	return nil, false
}

// Standard returns one fresh engine per policy, in simulation order.
func Standard() []Engine {
	engines := make([]Engine, 0, 6)
	for _, name := range Names() {
		e, _ := New(name)
		engines = append(engines, e)
	}

	return engines
}
