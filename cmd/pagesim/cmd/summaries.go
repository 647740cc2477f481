package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/datarecording"
)

func newSummariesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summaries DATABASE",
		Short: "Print the run summaries stored in a database.",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSummaries(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

func printSummaries(ctx context.Context, out io.Writer, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(path); err != nil {
		if _, errWithExt := os.Stat(path + ".sqlite3"); errWithExt == nil {
			path += ".sqlite3"
		}
	}

	summaries, err := datarecording.ReadSummaries(ctx, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	fmt.Fprintf(out, "%-22s %-6s %8s %10s %8s\n",
		"RUN", "POLICY", "FAULTS", "REFERENCES", "AVERAGE")

	for _, s := range summaries {
		fmt.Fprintf(out, "%-22s %-6s %8d %10d %8.2f\n",
			s.RunID, s.Policy, s.Faults, s.References, s.AverageResident)
	}

	return nil
}
