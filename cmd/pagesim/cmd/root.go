// Package cmd provides the command-line interface of pagesim.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/config"
	"github.com/sarchlab/pagesim/refstring"
)

// Exit statuses.
const (
	ExitOK                  = 0
	ExitResourceUnavailable = 1
	ExitMalformedInput      = 2
	ExitAllocationFailure   = 3
	ExitInvalidConfig       = 4
)

// newRootCmd builds the base command and all its subcommands.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pagesim",
		Short: "pagesim simulates page-replacement policies.",
		Long: `pagesim runs the MIN, FIFO, LRU, LFU, Clock and Working-Set ` +
			`page-replacement policies over a reference string and reports ` +
			`every page fault.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	})

	rootCmd.AddCommand(
		newRunCmd(),
		newGenerateCmd(),
		newValidateCmd(),
		newSummariesCmd(),
	)

	return rootCmd
}

// usageArgs reports the errors of an argument check as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		err := check(cmd, args)
		if err != nil {
			return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
		}

		return nil
	}
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It exits the program through atexit so that every report
// is flushed.
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[Error] %v\n", err)
		slog.Debug("command failed", "error", err)
	}

	atexit.Exit(ExitCode(err))
}

// ExitCode maps an error to the exit status of the program.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, refstring.ErrMalformedInput):
		return ExitMalformedInput
	case errors.Is(err, refstring.ErrAllocationFailure):
		return ExitAllocationFailure
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitInvalidConfig
	default:
		return ExitResourceUnavailable
	}
}
