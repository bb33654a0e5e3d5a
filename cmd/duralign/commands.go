package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/duralign/align"
	"github.com/katalvlaran/duralign/internal/batch"
	"github.com/katalvlaran/duralign/internal/config"
	"github.com/katalvlaran/duralign/internal/dataset"
	"github.com/katalvlaran/duralign/internal/npy"
	"github.com/katalvlaran/duralign/internal/observe"
	"github.com/katalvlaran/duralign/internal/store"
)

// errItemsFailed is returned by run --strict when any item failed.
var errItemsFailed = errors.New("one or more items failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "duralign",
		Short: "Monotonic frame-to-symbol alignment and duration extraction",
		Long: `duralign finds the cheapest monotonic path through a frames × symbols
cost grid built from per-frame log-probabilities, and turns it into
per-symbol frame durations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newAlignCmd(), newValidateCmd(), newVersionCmd())

	return root
}

// --- run ---

type runFlags struct {
	config    string
	solver    string
	logLevel  string
	workers   int
	ids       []string
	overwrite bool
	strict    bool
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Align every dataset item described by a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, &f)
			if err != nil {
				return err
			}
			return runBatch(cmd.Context(), cfg, f.strict, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "duralign.yaml", "path to the YAML configuration file")
	cmd.Flags().StringVar(&f.solver, "solver", "", "override aligner.solver (dp or dijkstra)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "override log_level")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "override batch.workers")
	cmd.Flags().StringSliceVar(&f.ids, "ids", nil, "override dataset.ids")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "replace existing output files")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "exit non-zero when any item fails")

	return cmd
}

// loadConfig reads the file and applies every flag the user set.
func loadConfig(cmd *cobra.Command, f *runFlags) (*config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("solver") {
		cfg.Aligner.Solver = f.solver
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = config.LogLevel(f.logLevel)
	}
	if flags.Changed("workers") {
		cfg.Batch.Workers = f.workers
	}
	if flags.Changed("ids") {
		cfg.Dataset.IDs = f.ids
	}
	if flags.Changed("overwrite") {
		cfg.Output.Overwrite = f.overwrite
	}
	if err = config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// runBatch wires the configured components and prints the run summary as JSON.
//
// Steps:
//  1. Logger, telemetry and the optional /metrics endpoint.
//  2. Manifest and item selection.
//  3. Optional result cache.
//  4. Batch run.
func runBatch(ctx context.Context, cfg *config.Config, strict bool, stdout, stderr io.Writer) error {
	// 1) Observability
	logger := observe.NewLogger(cfg.LogLevel, stderr)
	slog.SetDefault(logger)

	provider, shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceVersion: version})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Warn("telemetry shutdown", "err", err)
		}
	}()
	metrics, err := observe.NewMetrics(provider.Meter)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	if addr := cfg.Metrics.ListenAddr; addr != "" {
		sctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := observe.Serve(sctx, addr, provider.Handler); err != nil {
				logger.Error("metrics endpoint", "addr", addr, "err", err)
			}
		}()
		logger.Info("serving metrics", "addr", addr)
	}

	// 2) Inputs
	manifest, err := dataset.LoadManifest(cfg.Dataset.Manifest)
	if err != nil {
		return err
	}
	source := &dataset.Source{
		Manifest:  manifest,
		ScoresDir: cfg.Dataset.ScoresDir,
		MaxFrames: cfg.Dataset.MaxFrames,
	}
	ids, err := source.IDs(cfg.Dataset.IDs)
	if err != nil {
		return err
	}

	solver, err := align.ParseSolver(cfg.Aligner.Solver)
	if err != nil {
		return err
	}

	runner := &batch.Runner{
		Source: source,
		Writer: &dataset.Writer{
			DurationsDir:    cfg.Output.DurationsDir,
			AltDurationsDir: cfg.Output.AltDurationsDir,
			Overwrite:       cfg.Output.Overwrite,
		},
		Aligner: align.New(align.WithSolver(solver)),
		Metrics: metrics,
		Logger:  logger,
		Workers: cfg.Batch.Workers,
	}

	// 3) Cache
	if cfg.Cache.Enabled() {
		cache, err := store.Open(store.Config{
			Dir:      cfg.Cache.Dir,
			InMemory: cfg.Cache.InMemory,
			Logger:   logger.With("component", "badger"),
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn("closing cache", "err", err)
			}
		}()
		runner.Cache = cache
	}

	// 4) Run
	sum, runErr := runner.Run(ctx, ids)
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	if strict && sum.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", errItemsFailed, sum.Failed, sum.Total)
	}

	return nil
}

// --- align ---

type alignFlags struct {
	scores       string
	target       string
	solver       string
	durations    string
	altDurations string
}

func newAlignCmd() *cobra.Command {
	var f alignFlags
	cmd := &cobra.Command{
		Use:   "align",
		Short: "Align one score matrix and print the result as JSON",
		Example: `  duralign align --scores utt01.npy --target 12,4,4,31
  duralign align --scores utt01.npy --target 12,4 --solver dijkstra --durations alg/utt01.npy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return alignOne(&f, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&f.scores, "scores", "", "float32/float64 .npy matrix of shape [frames, vocab]")
	cmd.Flags().StringVar(&f.target, "target", "", "comma-separated target symbol ids")
	cmd.Flags().StringVar(&f.solver, "solver", "dp", "shortest-path solver: dp or dijkstra")
	cmd.Flags().StringVar(&f.durations, "durations", "", "also write repaired durations to this .npy file")
	cmd.Flags().StringVar(&f.altDurations, "alt-durations", "", "also write midpoint durations to this .npy file")
	_ = cmd.MarkFlagRequired("scores")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func alignOne(f *alignFlags, stdout io.Writer) error {
	target, err := parseTarget(f.target)
	if err != nil {
		return err
	}
	solver, err := align.ParseSolver(f.solver)
	if err != nil {
		return err
	}

	fh, err := os.Open(f.scores)
	if err != nil {
		return err
	}
	defer fh.Close()
	scores, err := npy.ReadMatrix(fh)
	if err != nil {
		return fmt.Errorf("%s: %w", f.scores, err)
	}

	res, err := align.New(align.WithSolver(solver)).Align(align.Item{
		ID:     strings.TrimSuffix(filepath.Base(f.scores), ".npy"),
		Scores: scores,
		Target: target,
	})
	if err != nil {
		return err
	}

	outputs := []struct {
		path   string
		values []int
	}{
		{f.durations, res.Durations},
		{f.altDurations, res.DurationsAlt},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err = writeInts(out.path, out.values); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// parseTarget reads "3, 1,4" as [3 1 4].
func parseTarget(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("target: %q is not an integer", f)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, errors.New("target: no symbol ids")
	}

	return out, nil
}

func writeInts(path string, values []int) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fh.Close(); err == nil {
			err = cerr
		}
	}()

	return npy.WriteInts(fh, values)
}

// --- validate-config ---

func newValidateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Check a configuration file and print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err = enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "duralign.yaml", "path to the YAML configuration file")

	return cmd
}

// --- version ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the duralign version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "duralign", version)
		},
	}
}
