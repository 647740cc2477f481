package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/refstring"
)

func newGenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random problem to a file.",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed, _ := cmd.Flags().GetInt64("seed")
			path, _ := cmd.Flags().GetString("out")

			p, err := generate(seed, path)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", p.Params.String(), path)

			return nil
		},
	}

	generateCmd.Flags().Int64("seed", 0, "seed, 0 for the clock")
	generateCmd.Flags().String("out", refstring.DefaultGeneratedFile,
		"file to write")

	return generateCmd
}

func generate(seed int64, path string) (*refstring.Problem, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	slog.Info("generating problem", "seed", seed, "file", path)

	p := refstring.NewGenerator(seed).Generate()

	err := refstring.WriteFile(path, p)
	if err != nil {
		return nil, err
	}

	return p, nil
}
