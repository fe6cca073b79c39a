// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/emmelineperneel/UJSSP/instance"
	"github.com/emmelineperneel/UJSSP/numeric"
)

// Solve runs the envelope-dominance engine on in, whose items must already
// be in processing order (see instance.Sort).
//
// Behavior:
//   - Options start from DefaultOptions(in.Mode); opts are applied in order.
//   - The numeric strategy is chosen once here (Native → float64,
//     Arbitrary → *big.Float); the engine itself is generic.
//   - A timed-out run is not an error: Result.State == StateTimedOut.
//   - An unreachable multiplicative target is not an error: Found == false.
//
// Errors: ErrNilInstance, ErrBadOption, instance validation errors,
// ctx.Err() on cancellation, and the envelope defects
// (envelope.ErrNumericInstability, envelope.ErrInvariant,
// envelope.ErrBoundsCrossed).
func Solve(ctx context.Context, in *instance.Instance, opts ...Option) (Result, error) {
	if in == nil {
		return Result{}, ErrNilInstance
	}
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	o := DefaultOptions(in.Mode)
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return Result{}, err
	}

	if o.Precision == Arbitrary {
		return run[numeric.Big](ctx, in, numeric.NewBigArith(o.Bits), o, time.Now)
	}
	return run[numeric.Float](ctx, in, numeric.FloatArith{}, o, time.Now)
}

// run instantiates the engine for one numeric strategy.
func run[T numeric.Real[T]](ctx context.Context, in *instance.Instance, arith numeric.Arith[T], o Options, now func() time.Time) (Result, error) {
	var (
		strat strategy[T]
		ids   = make([]int, in.Len())
	)
	switch in.Mode {
	case instance.Additive:
		for i, j := range in.Jobs {
			ids[i] = j.ID
		}
		strat = newAdditive(arith, in.Jobs, o)
	case instance.Multiplicative:
		for i, f := range in.Factors {
			ids[i] = f.ID
		}
		strat = newMultiplicative(arith, in.Factors, o)
	default:
		return Result{}, fmt.Errorf("%w: %d", instance.ErrUnsupportedMode, int(in.Mode))
	}

	return newEngine(arith, strat, in.Mode, ids, o, now).run(ctx)
}
