// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emmelineperneel/UJSSP/instance"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		kind   string
		n      int
		method string
		yes    bool
		ub     int64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random .dat instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := instance.ParseMode(kind)
			if err != nil {
				return err
			}

			var in *instance.Instance
			switch mode {
			case instance.Additive:
				m, err := instance.ParseProbMethod(method)
				if err != nil {
					return err
				}
				in, err = instance.GenerateJobs(a.cfg.Seed, n, m)
				if err != nil {
					return err
				}
			case instance.Multiplicative:
				if in, err = instance.GenerateFactors(a.cfg.Seed, n, yes, ub); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: %s", instance.ErrUnsupportedMode, kind)
			}

			a.logger.Debug("generated", zap.Stringer("mode", mode), zap.Int("items", n), zap.Int64("seed", a.cfg.Seed))
			w, closeFn, err := a.output(cmd)
			if err != nil {
				return err
			}
			if err = instance.Write(w, in); err != nil {
				_ = closeFn()
				return err
			}
			return closeFn()
		},
	}

	f := cmd.Flags()
	f.StringVar(&kind, "kind", "jobs", "jobs or factors")
	f.IntVarP(&n, "items", "n", 10, "number of items")
	f.StringVar(&method, "method", "uniform", "job probabilities: uniform, low, mid or high")
	f.BoolVar(&yes, "yes", false, "factors: guarantee a perfect split")
	f.Int64Var(&ub, "ub", 1000, "factors: largest value")
	return cmd
}
