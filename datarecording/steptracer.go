package datarecording

import (
	"context"

	"github.com/sarchlab/pagesim/policy"
	"github.com/sarchlab/pagesim/report"
	"github.com/sarchlab/pagesim/sim"
	"github.com/sarchlab/pagesim/simulation"
)

// Table names used by the StepTracer.
const (
	StepTable    = "step"
	SummaryTable = "summary"
)

// StepEntry is a row of the step table.
type StepEntry struct {
	RunID    string
	Policy   string
	Time     int
	Page     int
	Fault    bool
	Victim   int
	Resident string
	Faults   int
}

// SummaryEntry is a row of the summary table.
type SummaryEntry struct {
	RunID           string
	Policy          string
	Faults          int
	References      int
	AverageResident float64
}

// StepTracer is a hook that records every step and every run summary. The
// recorder is flushed at the end of every run.
type StepTracer struct {
	recorder  DataRecorder
	skipSteps bool
}

// NewStepTracer creates the step and summary tables in the recorder.
func NewStepTracer(recorder DataRecorder) *StepTracer {
	recorder.CreateTable(StepTable, StepEntry{})
	recorder.CreateTable(SummaryTable, SummaryEntry{})

	return &StepTracer{recorder: recorder}
}

// SummariesOnly stops the tracer from recording individual steps.
func (t *StepTracer) SummariesOnly() *StepTracer {
	t.skipSteps = true
	return t
}

// Func records the step or summary carried by the hook context.
func (t *StepTracer) Func(ctx sim.HookCtx) {
	info, _ := ctx.Detail.(simulation.RunInfo)

	switch ctx.Pos {
	case sim.HookPosStep:
		if t.skipSteps {
			return
		}

		rec := ctx.Item.(policy.StepRecord)
		t.recorder.InsertData(StepTable, StepEntry{
			RunID:    info.RunID,
			Policy:   rec.Policy,
			Time:     rec.Time,
			Page:     rec.Page,
			Fault:    rec.Fault,
			Victim:   rec.Victim,
			Resident: report.JoinPages(rec.Resident),
			Faults:   rec.Faults,
		})
	case sim.HookPosRunEnd:
		s := ctx.Item.(policy.Summary)
		t.recorder.InsertData(SummaryTable, SummaryEntry{
			RunID:           info.RunID,
			Policy:          s.Policy,
			Faults:          s.Faults,
			References:      s.References,
			AverageResident: s.AverageResident,
		})
		t.recorder.Flush()
	}
}

// ReadSummaries returns the summaries recorded in a database file, in the
// order they were recorded.
func ReadSummaries(ctx context.Context, dbFilename string) (
	[]SummaryEntry, error,
) {
	r, err := NewReader(dbFilename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	r.MapTable(SummaryTable, SummaryEntry{})

	rows, _, err := r.Query(ctx, SummaryTable, QueryParams{OrderBy: "rowid"})
	if err != nil {
		return nil, err
	}

	summaries := make([]SummaryEntry, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, *row.(*SummaryEntry))
	}

	return summaries, nil
}
