// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"

	"github.com/emmelineperneel/UJSSP/instance"
)

// MaxDPBudget caps the DP table width (sum of all costs).
const MaxDPBudget = 1 << 24

// SolveDP is the budget-indexed dynamic program for the additive mode, the
// reference the envelope engine is checked against.
//
// Implementation:
//   - Backwards over jobs: rev_j[b] = max(rev_{j+1}[b], p_j·(r_j + rev_{j+1}[b−c_j])).
//   - Objective: max_b rev_0[b] − b, starting from 0 (the empty selection).
//   - Decisions are kept as one bitset per job and replayed forwards.
//
// Only TimeLimit and Logger are read from opts. Precision is always Native.
//
// Complexity: O(n·B) time, O(B) floats + O(n·B) bits, B = Σ c_j.
func SolveDP(ctx context.Context, in *instance.Instance, opts ...Option) (Result, error) {
	if in == nil {
		return Result{}, ErrNilInstance
	}
	if in.Mode != instance.Additive {
		return Result{}, fmt.Errorf("%w: DP needs jobs, got %s", instance.ErrUnsupportedMode, in.Mode)
	}
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	o := DefaultOptions(instance.Additive)
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return Result{}, err
	}

	var (
		jobs   = in.Jobs
		n      = len(jobs)
		start  = time.Now()
		budget int64
		res    = Result{Mode: instance.Additive, Precision: Native, Arith: "dp"}
	)
	for _, j := range jobs {
		budget += j.Cost
		if budget > MaxDPBudget {
			return Result{}, fmt.Errorf("%w: costs exceed %d", ErrBudgetTooLarge, MaxDPBudget)
		}
	}

	var deadline time.Time
	if o.TimeLimit > 0 {
		deadline = start.Add(o.TimeLimit)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}

	var (
		width = int(budget) + 1
		next  = make([]float64, width) // rev_{j+1}
		cur   = make([]float64, width) // rev_j
		take  = make([]*bitset.BitSet, n)
		b, j  int
	)
	for j = n - 1; j >= 0; j-- {
		if !deadline.IsZero() && time.Now().After(deadline) {
			res.State, res.Steps, res.Elapsed = StateTimedOut, n-1-j, time.Since(start)
			return res, nil
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var (
			c = int(jobs[j].Cost)
			r = float64(jobs[j].Revenue)
			p = jobs[j].Prob
		)
		take[j] = bitset.New(uint(width))
		for b = 0; b < width; b++ {
			cur[b] = next[b]
			if c <= b {
				if inc := p * (r + next[b-c]); inc > cur[b] {
					cur[b] = inc
					take[j].Set(uint(b))
				}
			}
		}
		next, cur = cur, next
		res.Considered += width
	}

	// next holds rev_0.
	best, bestB := 0.0, 0
	for b = 0; b < width; b++ {
		if v := next[b] - float64(b); v > best {
			best, bestB = v, b
		}
	}

	res.Include = make([]bool, n)
	ids := make([]int, n)
	for j, b = 0, bestB; j < n; j++ {
		ids[j] = jobs[j].ID
		if take[j].Test(uint(b)) {
			res.Include[j] = true
			b -= int(jobs[j].Cost)
		}
	}
	res.Selected = selectIDs(res.Include, ids)

	res.State = StateDone
	res.Steps = n
	res.Objective = best
	res.ObjectiveText = strconv.FormatFloat(best, 'g', -1, 64)
	res.Elapsed = time.Since(start)
	o.Logger.Info("dp finished",
		zap.Int("items", n),
		zap.Int64("budget", budget),
		zap.Float64("objective", best),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
