// Package report writes the human-readable trace of a simulation to the
// console and to a text file, and optionally a CSV trace of every step.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/policy"
	"github.com/sarchlab/pagesim/residency"
	"github.com/sarchlab/pagesim/sim"
	"github.com/sarchlab/pagesim/simulation"
)

// DefaultOutputFile is where the text report goes unless configured
// otherwise.
const DefaultOutputFile = "output.txt"

// A Reporter is a hook that prints the simulation trace. The console
// receives the policy headers, fault lines and totals. The file receives
// everything, including the resident set after each step. Times are
// printed 1-based.
type Reporter struct {
	console *bufio.Writer
	file    *bufio.Writer
	verbose bool

	allocation policy.Allocation
}

// NewReporter creates a Reporter writing to console and file. With verbose
// set, the console also receives the resident set lines.
func NewReporter(console, file io.Writer, verbose bool) *Reporter {
	return &Reporter{
		console: bufio.NewWriter(console),
		file:    bufio.NewWriter(file),
		verbose: verbose,
	}
}

// NewFileReporter creates a Reporter whose file stream is a newly created
// file at path. The file is flushed and closed when the program exits
// through atexit.
func NewFileReporter(console io.Writer, path string, verbose bool) (
	*Reporter, error,
) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating report %s: %w", path, err)
	}

	r := NewReporter(console, f, verbose)

	atexit.Register(func() {
		_ = r.Flush()

		err := f.Close()
		if err != nil {
			panic(err)
		}
	})

	return r, nil
}

// Func prints the part of the trace that belongs to the hook position.
func (r *Reporter) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosRunStart:
		r.runStart(ctx.Item.(simulation.RunInfo))
	case sim.HookPosStep:
		r.step(ctx.Item.(policy.StepRecord))
	case sim.HookPosRunEnd:
		r.runEnd(ctx.Item.(policy.Summary))
	}
}

func (r *Reporter) runStart(info simulation.RunInfo) {
	r.allocation = info.Allocation
	r.both("--%s--\n", info.Policy)
}

func (r *Reporter) step(rec policy.StepRecord) {
	if rec.Fault {
		switch {
		case r.allocation == policy.VariableAllocation:
			r.both("<page fault> Time %d Insert %d no. of fault %d\n",
				rec.Time+1, rec.Page, rec.Faults)
		case rec.Victim == policy.NoVictim:
			r.both("<page fault> Time %d no frame no. of fault %d\n",
				rec.Time+1, rec.Faults)
		default:
			r.both("<page fault> Time %d replaced index %d no. of fault %d\n",
				rec.Time+1, rec.Victim, rec.Faults)
		}
	}

	line := residentLine(rec)
	fmt.Fprint(r.file, line)

	if r.verbose {
		fmt.Fprint(r.console, line)
	}
}

func (r *Reporter) runEnd(s policy.Summary) {
	if s.Variable {
		r.both("average page frame no.: %.2f\n", s.AverageResident)
	}

	r.both("Total no. of fault: %d/%d\n", s.Faults, s.References)

	_ = r.Flush()
}

// Flush writes any buffered output to the underlying writers.
func (r *Reporter) Flush() error {
	err := r.console.Flush()
	if err != nil {
		return err
	}

	return r.file.Flush()
}

func (r *Reporter) both(format string, args ...any) {
	fmt.Fprintf(r.console, format, args...)
	fmt.Fprintf(r.file, format, args...)
}

func residentLine(rec policy.StepRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[Time %d] ", rec.Time+1)

	for _, page := range rec.Resident {
		if page == residency.Empty {
			continue
		}

		fmt.Fprintf(&b, "%d ", page)
	}

	b.WriteString("\n")

	return b.String()
}
