// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"

	"github.com/emmelineperneel/UJSSP/envelope"
	"github.com/emmelineperneel/UJSSP/instance"
	"github.com/emmelineperneel/UJSSP/numeric"
)

// engine is the driver loop. It owns the envelope and the bounds for the
// whole run; the strategy only supplies the mode-specific rules.
type engine[T numeric.Real[T]] struct {
	// Configuration
	arith numeric.Arith[T]
	strat strategy[T]
	opts  Options
	log   *zap.Logger
	mode  instance.Mode
	n     int
	ids   []int // source ID per processing position

	// Time budget
	now         func() time.Time
	start       time.Time
	deadline    time.Time
	useDeadline bool

	// Run state
	state  State
	env    *envelope.Envelope[T]
	bounds envelope.Bounds[T]
	match  *envelope.Candidate[T]

	// Counters
	considered   int
	materialized int

	outcomes []outcome[T] // reused across items
}

func newEngine[T numeric.Real[T]](arith numeric.Arith[T], strat strategy[T], mode instance.Mode, ids []int, o Options, now func() time.Time) *engine[T] {
	return &engine[T]{
		arith: arith,
		strat: strat,
		opts:  o,
		log:   o.Logger.With(zap.Stringer("mode", mode), zap.String("arith", arith.Name())),
		mode:  mode,
		n:     len(ids),
		ids:   ids,
		now:   now,
	}
}

// setDeadline merges Options.TimeLimit with the context deadline.
func (e *engine[T]) setDeadline(ctx context.Context) {
	if e.opts.TimeLimit > 0 {
		e.deadline, e.useDeadline = e.start.Add(e.opts.TimeLimit), true
	}
	if d, ok := ctx.Deadline(); ok && (!e.useDeadline || d.Before(e.deadline)) {
		e.deadline, e.useDeadline = d, true
	}
}

// expired is the time guard, evaluated once per item.
func (e *engine[T]) expired() bool {
	return e.useDeadline && e.now().After(e.deadline)
}

// run drives Initializing → Stepping → Finalizing → Done, or TimedOut.
func (e *engine[T]) run(ctx context.Context) (Result, error) {
	e.state = StateInitializing
	e.start = e.now()
	e.setDeadline(ctx)
	res := Result{Mode: e.mode, Precision: e.opts.Precision, Arith: e.arith.Name()}

	root := e.strat.seed()
	if e.opts.TrackSubsets {
		root.Subset = bitset.New(uint(e.n))
	}
	e.env = envelope.New(e.arith, root)
	lower, upper := e.strat.domain()
	var err error
	if e.bounds, err = envelope.NewBounds(lower, upper); err != nil {
		return res, err
	}

	e.state = StateStepping
	for j := 0; j < e.n; j++ {
		if e.expired() {
			// The envelope does not account for the remaining items.
			e.env = nil
			e.state = StateTimedOut
			res.State, res.Steps, res.Elapsed = StateTimedOut, j, e.now().Sub(e.start)
			e.log.Info("time limit reached", zap.Int("steps", j), zap.Duration("elapsed", res.Elapsed))
			return res, nil
		}
		if err = ctx.Err(); err != nil {
			return res, err
		}

		var done bool
		if done, err = e.step(ctx, j); err != nil {
			return res, fmt.Errorf("item %d: %w", j, err)
		}
		res.Steps = j + 1
		if done {
			break
		}
	}

	e.state = StateFinalizing
	if err = e.strat.finalize(e.env, e.bounds, e.match, &res); err != nil {
		return res, err
	}
	res.EarlyMatch = e.match != nil
	res.Selected = selectIDs(res.Include, e.ids)
	res.Considered = e.considered
	res.Materialized = e.materialized
	res.Removed = e.env.Removed()

	e.state = StateDone
	res.State = StateDone
	res.Elapsed = e.now().Sub(e.start)
	e.log.Info("run finished",
		zap.Int("items", e.n),
		zap.Int("steps", res.Steps),
		zap.Float64("objective", res.Objective),
		zap.Int("considered", res.Considered),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// step processes item j. It reports done when the run can stop early:
// an exact match, a proven unreachable target, or an empty envelope.
//
// Steps:
//  1. Expand every candidate (possibly sharded).
//  2. Scan outcomes in envelope order: counters, observe, match, children.
//  3. Exact match: collapse to the matching child and stop.
//  4. Strategy bounds on the pre-merge envelope, then strategy prune.
//  5. Bounds update; TrimFront if lower rose, TrimBack if upper fell.
//  6. Insert children in generation order.
//  7. Optional invariant check, hook, debug log.
func (e *engine[T]) step(ctx context.Context, j int) (bool, error) {
	e.strat.begin(j)
	parents := e.env.Candidates()

	// 1.
	outs, err := e.expand(ctx, j, parents)
	if err != nil {
		return false, err
	}

	// 2.
	children := make([]envelope.Candidate[T], 0, len(outs))
	for i := range outs {
		o := &outs[i]
		e.considered++
		if !o.composed {
			continue
		}
		e.strat.observe(j, parents[i], o)
		if o.match && e.match == nil {
			m := parents[i].Include(uint(j), o.intercept, o.slope)
			e.match = &m
		}
		if o.keep {
			children = append(children, parents[i].Include(uint(j), o.intercept, o.slope))
		}
	}
	e.materialized += len(children)

	// 3.
	if e.match != nil {
		e.env.Collapse(*e.match)
		e.log.Debug("exact match", zap.Int("item", j))
		e.report(j, len(children), 0)
		return true, nil
	}

	// 4.
	lower, upper, err := e.strat.bounds(j, e.env)
	if errors.Is(err, errUnreachable) {
		e.log.Debug("target unreachable", zap.Int("item", j))
		return true, nil
	}
	if err != nil {
		return false, err
	}
	e.strat.prune(e.env)

	// 5.
	mv, err := e.bounds.Update(lower, upper)
	if err != nil {
		return false, err
	}
	if mv.LowerRose {
		e.env.TrimFront(lower)
	}
	if mv.UpperFell {
		e.env.TrimBack(upper)
	}

	// 6.
	kept := 0
	for _, c := range children {
		ok, err := e.env.Insert(c, lower, upper)
		if err != nil {
			return false, err
		}
		if ok {
			kept++
		}
	}

	// 7.
	if e.opts.CheckInvariants {
		if err = e.env.Validate(); err != nil {
			return false, err
		}
	}
	e.report(j, len(children), kept)
	return e.env.Len() == 0, nil
}

// report feeds the OnStep hook and the debug log.
func (e *engine[T]) report(j, children, kept int) {
	info := StepInfo{
		Mode:     e.mode,
		Step:     j,
		Size:     e.env.Len(),
		Children: children,
		Kept:     kept,
		Removed:  e.env.Removed(),
		Lower:    e.bounds.Lower.Float64(),
		Upper:    e.bounds.Upper.Float64(),
	}
	if e.opts.OnStep != nil {
		e.opts.OnStep(info)
	}
	if ce := e.log.Check(zap.DebugLevel, "step"); ce != nil {
		ce.Write(
			zap.Int("item", j),
			zap.Int("size", info.Size),
			zap.Int("children", children),
			zap.Int("kept", kept),
			zap.Stringer("lower", e.bounds.Lower),
			zap.Stringer("upper", e.bounds.Upper),
		)
	}
}
