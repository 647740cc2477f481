package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/policy"
	"github.com/sarchlab/pagesim/sim"
	"github.com/sarchlab/pagesim/simulation"
)

var csvHeader = []string{
	"RunID", "Policy", "Time", "Page", "Fault", "Victim", "Faults", "Resident",
}

// CSVWriter is a hook that writes one CSV row per step. Rows are buffered
// and written in batches.
type CSVWriter struct {
	w *csv.Writer

	rows       [][]string
	bufferSize int
}

// NewCSVWriter creates a CSVWriter and writes the header row.
func NewCSVWriter(w io.Writer) *CSVWriter {
	c := &CSVWriter{
		w:          csv.NewWriter(w),
		bufferSize: 1000,
	}

	c.rows = append(c.rows, csvHeader)

	return c
}

// NewCSVFileWriter creates a CSVWriter backed by a new file at path. If the
// file already exists, it will be overwritten. The file is flushed and
// closed on exit.
func NewCSVFileWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating csv trace %s: %w", path, err)
	}

	c := NewCSVWriter(f)

	atexit.Register(func() {
		_ = c.Flush()

		err := f.Close()
		if err != nil {
			panic(err)
		}
	})

	return c, nil
}

// Func records steps and flushes at the end of each run.
func (c *CSVWriter) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosStep:
		info, _ := ctx.Detail.(simulation.RunInfo)
		c.write(info.RunID, ctx.Item.(policy.StepRecord))
	case sim.HookPosRunEnd:
		_ = c.Flush()
	}
}

func (c *CSVWriter) write(runID string, rec policy.StepRecord) {
	c.rows = append(c.rows, []string{
		runID,
		rec.Policy,
		strconv.Itoa(rec.Time),
		strconv.Itoa(rec.Page),
		strconv.FormatBool(rec.Fault),
		strconv.Itoa(rec.Victim),
		strconv.Itoa(rec.Faults),
		JoinPages(rec.Resident),
	})

	if len(c.rows) >= c.bufferSize {
		_ = c.Flush()
	}
}

// Flush writes the buffered rows.
func (c *CSVWriter) Flush() error {
	err := c.w.WriteAll(c.rows)
	c.rows = nil

	return err
}

// JoinPages formats a resident set as space-separated page numbers. Free
// frames are written as -1 so that the slot order is preserved.
func JoinPages(pages []int) string {
	s := make([]string, len(pages))
	for i, p := range pages {
		s[i] = strconv.Itoa(p)
	}

	return strings.Join(s, " ")
}
