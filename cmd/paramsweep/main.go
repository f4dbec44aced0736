// Package main provides the CLI entry point for paramsweep, a
// parameter-space sweep harness for the one-tree-sampler benchmark.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/RickFreemanCui/bavc-one-tree-sampler/grid"
	"github.com/RickFreemanCui/bavc-one-tree-sampler/invoke"
	"github.com/RickFreemanCui/bavc-one-tree-sampler/results"
	"github.com/RickFreemanCui/bavc-one-tree-sampler/sweep"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paramsweep",
		Short: "Parameter-space sweep harness for the one-tree-sampler benchmark",
		Long: `Paramsweep enumerates a grid of (lambda, tau) parameters, runs the
benchmark binary once per grid point, and aggregates each run's CSV output
line into one consolidated results file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())

	return root
}

func newRunCmd() *cobra.Command {
	var (
		output    string
		benchmark string
		workers   int
		timeout   time.Duration
		gridPath  string
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark across the configured parameter grid",
		Long: `Run every (lambda, tau) combination of the parameter grid through the
benchmark binary, collecting one CSV row per successful invocation in grid
order. Failed invocations are logged and skipped; the sweep still exits 0.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd.Context(), runConfig{
				output:    output,
				benchmark: benchmark,
				workers:   workers,
				timeout:   timeout,
				gridPath:  gridPath,
				logLevel:  logLevel,
				logFormat: logFormat,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "",
		"Results file path (default param_results_<timestamp>.csv)")
	flags.StringVarP(&benchmark, "benchmark-bin", "b", "./build/my_app",
		"Path to the benchmark binary")
	flags.IntVarP(&workers, "workers", "j", sweep.DefaultWorkers,
		"Maximum concurrent benchmark invocations")
	flags.DurationVar(&timeout, "timeout", invoke.DefaultTimeout,
		"Wall-clock budget per invocation")
	flags.StringVar(&gridPath, "grid", "",
		"YAML grid file (default: built-in grid)")
	flags.StringVar(&logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "text",
		"Log format: text or json")

	return cmd
}

type runConfig struct {
	output    string
	benchmark string
	workers   int
	timeout   time.Duration
	gridPath  string
	logLevel  string
	logFormat string
}

func runSweep(ctx context.Context, cfg runConfig) error {
	logger, err := newLogger(cfg.logLevel, cfg.logFormat)
	if err != nil {
		return err
	}

	gridCfg := grid.DefaultConfig()
	if cfg.gridPath != "" {
		gridCfg, err = grid.Load(cfg.gridPath)
		if err != nil {
			return fmt.Errorf("load grid: %w", err)
		}
	}

	if err := gridCfg.Validate(); err != nil {
		return err
	}

	points := grid.Generate(gridCfg)

	binPath, err := filepath.Abs(cfg.benchmark)
	if err != nil {
		return fmt.Errorf("resolve benchmark path: %w", err)
	}

	output := cfg.output
	if output == "" {
		output = fmt.Sprintf("param_results_%s.csv",
			time.Now().Format("2006-01-02-15-04"))
	}

	logger.InfoContext(ctx, "starting sweep",
		slog.String("benchmark", binPath),
		slog.String("output", output),
		slog.Int("points", len(points)),
		slog.Int("workers", cfg.workers),
		slog.Duration("timeout", cfg.timeout),
	)

	file, err := results.Create(output)
	if err != nil {
		return err
	}
	defer file.Close()

	runner := invoke.NewRunner(binPath, cfg.timeout, logger)
	coord := sweep.NewCoordinator(cfg.workers, runner, logger)

	summary, err := coord.Run(ctx, points, file)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	// Per-tuple failures are not fatal: the sweep ran to completion
	// and the results file holds every row that could be collected.
	logger.InfoContext(ctx, "sweep complete",
		slog.Int("submitted", summary.Submitted),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed),
	)

	return nil
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler

	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return slog.New(handler), nil
}
