// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emmelineperneel/UJSSP/instance"
	"github.com/emmelineperneel/UJSSP/metrics"
	"github.com/emmelineperneel/UJSSP/report"
	"github.com/emmelineperneel/UJSSP/solver"
)

// solveFunc is solver.Solve or solver.SolveDP.
type solveFunc func(context.Context, *instance.Instance, ...solver.Option) (solver.Result, error)

func newSolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solve FILE",
		Short: "Run the envelope engine on a .dat instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := a.cfg.InstanceMode()
			if err != nil {
				return err
			}
			return a.run(cmd, args[0], mode, solver.Solve)
		},
	}
}

func newDPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dp FILE",
		Short: "Run the dynamic-programming reference on a jobs instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], instance.Additive, solver.SolveDP)
		},
	}
}

// run loads, orders and solves one instance, then writes the report and
// the optional metrics textfile.
func (a *app) run(cmd *cobra.Command, path string, mode instance.Mode, solve solveFunc) error {
	in, err := instance.ReadFile(path, mode)
	if err != nil {
		return err
	}
	order, err := a.cfg.SortOrder()
	if err != nil {
		return err
	}
	if in, err = instance.Sort(in, order, a.cfg.Seed); err != nil {
		return err
	}

	cfgOpts, err := a.cfg.SolverOptions(mode)
	if err != nil {
		return err
	}
	opts := a.solverOptions(cfgOpts)

	var (
		reg *prometheus.Registry
		rec *metrics.Recorder
	)
	if a.cfg.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		rec = metrics.NewRecorder(reg)
		opts = append(opts, solver.WithOnStep(rec.OnStep))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	a.logger.Info("solving",
		zap.String("file", path),
		zap.Stringer("mode", mode),
		zap.Stringer("order", order),
		zap.Int("items", in.Len()),
	)
	res, err := solve(ctx, in, opts...)
	if err != nil {
		return err
	}

	if rec != nil {
		rec.Observe(res)
		if err = metrics.WriteTextfile(reg, a.cfg.MetricsFile); err != nil {
			return err
		}
	}

	w, closeFn, err := a.output(cmd)
	if err != nil {
		return err
	}
	if err = report.Write(a.cfg.Format, w, report.New(res, in)); err != nil {
		_ = closeFn()
		return err
	}
	return closeFn()
}
