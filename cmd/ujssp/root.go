// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/emmelineperneel/UJSSP/config"
	"github.com/emmelineperneel/UJSSP/numeric"
	"github.com/emmelineperneel/UJSSP/report"
	"github.com/emmelineperneel/UJSSP/solver"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfgPath string
	cfg     config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	d := config.Default()

	root := &cobra.Command{
		Use:           "ujssp",
		Short:         "Envelope-dominance subset selection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg

			zc := zap.NewProductionConfig()
			if cfg.Verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			if a.logger, err = zc.Build(); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML configuration file")
	pf.String(config.FlagName("mode"), d.Mode, "additive (jobs) or multiplicative (factors)")
	pf.String(config.FlagName("precision"), d.Precision, "native or arbitrary (default depends on mode)")
	pf.Uint(config.FlagName("bits"), numeric.DefaultPrecision, "arbitrary-precision mantissa bits")
	pf.Duration(config.FlagName("time_limit"), 0, "wall-clock budget (default: none for additive, 20m for multiplicative)")
	pf.Float64(config.FlagName("match_tolerance"), d.MatchTolerance, "exact-match tolerance")
	pf.Float64(config.FlagName("prune_tolerance"), d.PruneTolerance, "multiplicative prune slack")
	pf.String(config.FlagName("order"), d.Order, "default, ratio, ascending, descending or random")
	pf.Int64(config.FlagName("seed"), d.Seed, "seed for random order and generators")
	pf.Int(config.FlagName("workers"), d.Workers, "goroutines for candidate expansion")
	pf.Bool(config.FlagName("track_subsets"), d.TrackSubsets, "report the selected subset")
	pf.Bool(config.FlagName("speedups"), d.Speedups, "skip parents that cannot profit from the next job")
	pf.Bool(config.FlagName("check_invariants"), d.CheckInvariants, "validate the envelope after every item")
	pf.String(config.FlagName("format"), d.Format, fmt.Sprintf("output format %v", report.Formats()))
	pf.StringP(config.FlagName("output"), "o", "", "output file (default stdout)")
	pf.String(config.FlagName("metrics_file"), "", "write Prometheus metrics to this textfile")
	pf.BoolP(config.FlagName("verbose"), "v", false, "debug logging")

	root.AddCommand(
		newSolveCmd(a),
		newDPCmd(a),
		newGenerateCmd(a),
		newConfigCmd(a),
	)
	return root
}

// output opens the configured destination; close is a no-op for stdout.
func (a *app) output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if a.cfg.Output == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(a.cfg.Output)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// solverOptions adds the logger to the configured options.
func (a *app) solverOptions(cfgOpts []solver.Option) []solver.Option {
	return append(cfgOpts, solver.WithLogger(a.logger))
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cfg.WriteYAML(cmd.OutOrStdout())
		},
	}
}
