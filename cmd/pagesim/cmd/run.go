package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/config"
	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/policy"
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/report"
	"github.com/sarchlab/pagesim/simulation"
)

const prompt = "Enter 'random'(random input) or file name to open: "

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate every policy over a reference string.",
		Long: "`run --input FILE` simulates the problem stored in FILE. " +
			"`run --random` draws a random problem and stores it first. " +
			"Without either, the input is asked for on the terminal.",
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			closer, err := initLogger(
				cmd.ErrOrStderr(), cfg.LogFile, cfg.SlogLevel())
			if err != nil {
				return err
			}
			atexit.Register(func() { closer.Close() })

			interactive := isatty.IsTerminal(os.Stdin.Fd()) ||
				isatty.IsCygwinTerminal(os.Stdin.Fd())

			_, err = runSimulation(cfg, cmd.InOrStdin(), cmd.OutOrStdout(),
				interactive)
			if err != nil {
				return err
			}

			if cfg.Monitor {
				holdMonitor(cmd.Context(), cmd.OutOrStdout())
			}

			return nil
		},
	}

	f := runCmd.Flags()
	f.String("config", "", "YAML configuration file")
	f.String("input", "", "file holding the problem")
	f.Bool("random", false, "simulate a random problem")
	f.Int64("seed", 0, "seed of the random problem, 0 for the clock")
	f.String("generated-input", refstring.DefaultGeneratedFile,
		"file the random problem is stored in")
	f.String("output", report.DefaultOutputFile, "text report file")
	f.String("csv", "", "CSV trace file")
	f.String("database", "",
		"SQLite database name, \"auto\" for a generated one")
	f.StringSlice("policy", nil,
		"policies to simulate (default all): "+
			strings.ToLower(strings.Join(policy.Names(), ",")))
	f.BoolP("verbose", "v", false, "print the resident set of every step")
	f.String("log-level", "INFO", "DEBUG, INFO, WARN or ERROR")
	f.String("log-file", "", "also append the log to this file")
	f.Bool("monitor", false, "serve the progress over HTTP")
	f.Int("monitor-port", 0, "port of the monitoring server")
	f.Bool("open-browser", false, "open the monitoring page")

	return runCmd
}

// loadConfig layers the config file, the .env file and the environment, and
// the flags set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	f := cmd.Flags()

	path, _ := f.GetString("config")

	cfg, err := config.Load(path, ".env")
	if err != nil {
		return cfg, err
	}

	if f.Changed("input") {
		cfg.Input, _ = f.GetString("input")
	}
	if f.Changed("random") {
		cfg.Random, _ = f.GetBool("random")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("generated-input") {
		cfg.GeneratedInput, _ = f.GetString("generated-input")
	}
	if f.Changed("output") {
		cfg.Output, _ = f.GetString("output")
	}
	if f.Changed("csv") {
		cfg.CSV, _ = f.GetString("csv")
	}
	if f.Changed("database") {
		cfg.Database, _ = f.GetString("database")
	}
	if f.Changed("policy") {
		cfg.Policies, _ = f.GetStringSlice("policy")
	}
	if f.Changed("verbose") {
		cfg.Verbose, _ = f.GetBool("verbose")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("log-file") {
		cfg.LogFile, _ = f.GetString("log-file")
	}
	if f.Changed("monitor") {
		cfg.Monitor, _ = f.GetBool("monitor")
	}
	if f.Changed("monitor-port") {
		cfg.MonitorPort, _ = f.GetInt("monitor-port")
	}
	if f.Changed("open-browser") {
		cfg.OpenBrowser, _ = f.GetBool("open-browser")
	}

	return cfg, cfg.Validate()
}

// runSimulation acquires the problem, attaches the outputs the configuration
// asks for and runs the policies.
func runSimulation(
	cfg config.Config,
	in io.Reader,
	out io.Writer,
	interactive bool,
) ([]policy.Summary, error) {
	if cfg.Input == "" && !cfg.Random {
		if !interactive {
			return nil, fmt.Errorf(
				"%w: either an input file or random is required",
				config.ErrInvalidConfig)
		}

		answer, err := ask(in, out)
		if err != nil {
			return nil, err
		}

		if answer == "random" {
			cfg.Random = true
		} else {
			cfg.Input = answer
		}
	}

	p, err := acquireProblem(cfg, out)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out, p.Params.String())

	b := simulation.MakeBuilder().
		WithProblem(p).
		WithPolicies(cfg.Policies...)

	b, err = attachOutputs(b, cfg, out)
	if err != nil {
		return nil, err
	}

	return b.Build().Run(), nil
}

func ask(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, prompt)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		err := scanner.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}

		return "", fmt.Errorf("%w: reading the input choice: %w",
			config.ErrInvalidConfig, err)
	}

	answer := strings.TrimSpace(scanner.Text())
	if answer == "" {
		return "", fmt.Errorf("%w: no input given", config.ErrInvalidConfig)
	}

	return answer, nil
}

func acquireProblem(cfg config.Config, out io.Writer) (
	*refstring.Problem, error,
) {
	if !cfg.Random {
		return refstring.Load(cfg.Input)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Fprintln(out, "random")
	slog.Info("drawing a random problem", "seed", seed)

	p := refstring.NewGenerator(seed).Generate()

	err := refstring.WriteFile(cfg.GeneratedInput, p)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// holdMonitor keeps the monitoring server up after the runs finish, until
// the process is interrupted or ctx is done.
func holdMonitor(ctx context.Context, out io.Writer) {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(out, "Simulation finished, the monitor stays up until Ctrl+C.")

	<-ctx.Done()
}

func attachOutputs(
	b simulation.Builder,
	cfg config.Config,
	out io.Writer,
) (simulation.Builder, error) {
	reporter, err := report.NewFileReporter(out, cfg.Output, cfg.Verbose)
	if err != nil {
		return b, err
	}
	b = b.WithHook(reporter)

	if cfg.CSV != "" {
		csvWriter, err := report.NewCSVFileWriter(cfg.CSV)
		if err != nil {
			return b, err
		}
		b = b.WithHook(csvWriter)
	}

	if name := cfg.DatabaseName(datarecording.DefaultName); name != "" {
		_, err := os.Stat(name + ".sqlite3")
		if err == nil {
			return b, fmt.Errorf("%w: database %s.sqlite3 already exists",
				config.ErrInvalidConfig, name)
		}

		recorder := datarecording.New(name)
		b = b.WithHook(datarecording.NewStepTracer(recorder))
	}

	if cfg.Monitor {
		m := monitoring.NewMonitor()
		if cfg.MonitorPort != 0 {
			m.WithPortNumber(cfg.MonitorPort)
		}

		url := m.StartServer()
		if cfg.OpenBrowser {
			monitoring.OpenBrowser(url)
		}

		b = b.WithHook(m)
	}

	return b, nil
}
