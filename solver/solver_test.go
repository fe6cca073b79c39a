package solver_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/emmelineperneel/UJSSP/instance"
	"github.com/emmelineperneel/UJSSP/solver"
)

func TestSolve_AdditiveScenario(t *testing.T) {
	for _, p := range []solver.Precision{solver.Native, solver.Arbitrary} {
		t.Run(p.String(), func(t *testing.T) {
			res, err := solver.Solve(context.Background(), scenario(), solver.WithPrecision(p))
			require.NoError(t, err)
			assert.Equal(t, solver.StateDone, res.State)
			assert.Equal(t, 2, res.Steps)
			assert.InDelta(t, 40.0, res.Objective, epsProfit)
			assert.Equal(t, []bool{true, false}, res.Include)
			assert.Equal(t, []int{0}, res.Selected)
			assert.Equal(t, instance.Additive, res.Mode)
		})
	}
}

func TestSolve_AdditiveMatchesBruteForce(t *testing.T) {
	methods := []instance.ProbMethod{
		instance.ProbUniform, instance.ProbJointLow, instance.ProbJointMid, instance.ProbJointHigh,
	}
	orders := []instance.Order{instance.OrderRatio, instance.OrderRandom}
	for seed := int64(1); seed <= 4; seed++ {
		for _, m := range methods {
			for _, ord := range orders {
				in := mustJobs(t, seed, 10, m, ord)
				want := bruteAdditive(t, in.Jobs)

				for _, opts := range [][]solver.Option{
					nil,
					{solver.WithoutSpeedups()},
					{solver.WithPrecision(solver.Arbitrary)},
				} {
					res, err := solver.Solve(context.Background(), in, append(opts, solver.WithInvariantChecks())...)
					require.NoError(t, err)
					require.InDelta(t, want, res.Objective, epsProfit, "seed=%d method=%d order=%s", seed, m, ord)
					require.InDelta(t, res.Objective, profitOf(in.Jobs, res.Include), epsProfit)
				}
			}
		}
	}
}

// Jobs in the order given, not sorted by ratio: skipping a job can leave
// more revenue reachable than taking every later one.
func TestSolve_AdditiveRawOrderMatchesBruteForce(t *testing.T) {
	cases := map[string][]instance.Job{
		"skip beats take": {
			{Revenue: 37, Cost: 50, Prob: .406},
			{Revenue: 55, Cost: 73, Prob: .585},
			{Revenue: 191, Cost: 38, Prob: .330},
			{Revenue: 32, Cost: 49, Prob: .911},
			{Revenue: 77, Cost: 16, Prob: .332},
			{Revenue: 85, Cost: 59, Prob: .209},
			{Revenue: 74, Cost: 25, Prob: .986},
		},
	}
	for seed := int64(1); seed <= 40; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		jobs := make([]instance.Job, 1+rnd.Intn(12))
		for i := range jobs {
			jobs[i] = instance.Job{
				Revenue: int64(rnd.Intn(200)),
				Cost:    int64(1 + rnd.Intn(80)),
				Prob:    0.01 + 0.98*rnd.Float64(),
			}
		}
		cases[fmt.Sprintf("seed %d", seed)] = jobs
	}

	for name, jobs := range cases {
		t.Run(name, func(t *testing.T) {
			in := instance.NewJobs(jobs...)
			want := bruteAdditive(t, in.Jobs)

			dp, err := solver.SolveDP(context.Background(), in)
			require.NoError(t, err)
			require.InDelta(t, want, dp.Objective, epsProfit)

			for _, opts := range [][]solver.Option{
				nil,
				{solver.WithoutSpeedups()},
				{solver.WithPrecision(solver.Arbitrary)},
			} {
				res, err := solver.Solve(context.Background(), in, append(opts, solver.WithInvariantChecks())...)
				require.NoError(t, err)
				require.InDelta(t, want, res.Objective, epsProfit)
				require.InDelta(t, res.Objective, profitOf(in.Jobs, res.Include), epsProfit)
			}
		})
	}
}

func TestSolve_AdditiveAgreesWithDP(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		in := mustJobs(t, seed, 25, instance.ProbJointMid, instance.OrderRatio)

		env, err := solver.Solve(context.Background(), in)
		require.NoError(t, err)
		dp, err := solver.SolveDP(context.Background(), in)
		require.NoError(t, err)

		assert.InDelta(t, dp.Objective, env.Objective, epsProfit, "seed=%d", seed)
		assert.InDelta(t, dp.Objective, profitOf(in.Jobs, dp.Include), epsProfit)
	}
}

func TestSolve_Multiplicative(t *testing.T) {
	tests := []struct {
		name      string
		values    []int64
		found     bool
		early     bool
		objective float64
		selected  []int
		closest   float64
	}{
		{name: "yes", values: []int64{2, 3, 6}, found: true, early: true, objective: 6, selected: []int{0, 1}, closest: 6},
		{name: "no", values: []int64{4, 9, 25}, found: false, closest: 36},
		{name: "empty", values: nil, found: true, objective: 1, selected: []int{}, closest: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := solver.Solve(context.Background(), instance.NewFactors(tt.values...))
			require.NoError(t, err)
			assert.Equal(t, solver.StateDone, res.State)
			assert.Equal(t, tt.found, res.Found)
			assert.Equal(t, tt.early, res.EarlyMatch)
			assert.InDelta(t, tt.closest, res.Closest, 1e-9)
			assert.False(t, res.PrecisionLoss)
			if tt.found {
				assert.InDelta(t, tt.objective, res.Objective, 1e-9)
				assert.Equal(t, tt.selected, res.Selected)
			}
		})
	}
}

func TestSolve_MultiplicativeNoCarriesClosestSubset(t *testing.T) {
	res, err := solver.Solve(context.Background(), instance.NewFactors(4, 9, 25))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.InDelta(t, 30.0, res.Root, 1e-9)
	assert.InDelta(t, 36.0, res.Closest, 1e-9)
	assert.Equal(t, []int{0, 1}, res.ClosestSubset)
}

func TestSolve_MultiplicativeMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 60; trial++ {
		n := 1 + rng.Intn(8)
		values := make([]int64, n)
		for i := range values {
			values[i] = 2 + rng.Int63n(11)
		}
		want := bruteSplit(t, values)

		res, err := solver.Solve(context.Background(), instance.NewFactors(values...), solver.WithInvariantChecks())
		require.NoError(t, err)
		require.Equal(t, want, res.Found, "values=%v", values)
		if res.Found {
			p := productOf(values, res.Include)
			assert.Equal(t, float64(p), res.Objective)
			assert.Equal(t, factorJoint(values), p*p, "values=%v", values)
		}
	}
}

func TestSolve_MultiplicativeGeneratedYes(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		in, err := instance.GenerateFactors(seed, 8, true, 50)
		require.NoError(t, err)
		in, err = instance.Sort(in, instance.OrderAscending, seed)
		require.NoError(t, err)

		res, err := solver.Solve(context.Background(), in)
		require.NoError(t, err)
		require.True(t, res.Found, "values=%v", factorValues(in))
	}
}

func factorJoint(values []int64) int64 {
	p := int64(1)
	for _, v := range values {
		p *= v
	}
	return p
}

func TestSolve_EmptyAdditive(t *testing.T) {
	res, err := solver.Solve(context.Background(), instance.NewJobs())
	require.NoError(t, err)
	assert.Equal(t, solver.StateDone, res.State)
	assert.Equal(t, 0, res.Steps)
	assert.Zero(t, res.Objective)
	assert.Empty(t, res.Include)
	assert.Empty(t, res.Selected)
}

func TestSolve_WithoutSubsets(t *testing.T) {
	res, err := solver.Solve(context.Background(), scenario(), solver.WithoutSubsets())
	require.NoError(t, err)
	assert.InDelta(t, 40.0, res.Objective, epsProfit)
	assert.Nil(t, res.Include)
	assert.Nil(t, res.Selected)

	res, err = solver.Solve(context.Background(), instance.NewFactors(2, 3, 6), solver.WithoutSubsets())
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Nil(t, res.Include)
	assert.Nil(t, res.ClosestSubset)
	assert.InDelta(t, 6.0, res.Objective, 1e-9)
}

func TestSolve_PrecisionLoss(t *testing.T) {
	// Two primes near 10^6 and their product: the root is ~10^12, beyond
	// what float64 resolves at a 1e-10 tolerance.
	const p, q = 1000003, 1000033
	in := instance.NewFactors(p, q, p*q)

	big, err := solver.Solve(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, solver.Arbitrary, big.Precision)
	assert.Equal(t, "big512", big.Arith)
	assert.False(t, big.PrecisionLoss)
	assert.True(t, big.Found)
	assert.Equal(t, []int{0, 1}, big.Selected)
	assert.Equal(t, "1000036000099", big.ObjectiveText)

	native, err := solver.Solve(context.Background(), in, solver.WithPrecision(solver.Native))
	require.NoError(t, err)
	assert.Equal(t, "float64", native.Arith)
	assert.True(t, native.PrecisionLoss)
}

func TestSolve_OnStepAndInvariants(t *testing.T) {
	in := mustJobs(t, 3, 30, instance.ProbUniform, instance.OrderRatio)

	var steps []solver.StepInfo
	res, err := solver.Solve(context.Background(), in,
		solver.WithInvariantChecks(),
		solver.WithOnStep(func(s solver.StepInfo) { steps = append(steps, s) }),
	)
	require.NoError(t, err)
	require.Len(t, steps, in.Len())
	for i, s := range steps {
		assert.Equal(t, i, s.Step)
		assert.GreaterOrEqual(t, s.Size, 1)
		assert.LessOrEqual(t, s.Kept, s.Children)
		assert.LessOrEqual(t, s.Lower, s.Upper)
	}
	assert.Equal(t, res.Removed, steps[len(steps)-1].Removed)
	assert.LessOrEqual(t, res.Materialized, res.Considered)
}

func TestSolve_WorkersAreDeterministic(t *testing.T) {
	defer goleak.VerifyNone(t)

	in := mustJobs(t, 5, 60, instance.ProbJointHigh, instance.OrderRatio)
	seq, err := solver.Solve(context.Background(), in)
	require.NoError(t, err)
	par, err := solver.Solve(context.Background(), in, solver.WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, seq.Objective, par.Objective)
	assert.Equal(t, seq.Include, par.Include)
	assert.Equal(t, seq.Considered, par.Considered)
	assert.Equal(t, seq.Removed, par.Removed)
}

func TestSolve_Logs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	_, err := solver.Solve(context.Background(), scenario(), solver.WithLogger(zap.New(core)))
	require.NoError(t, err)

	assert.Equal(t, 2, logs.FilterMessage("step").Len())
	require.Equal(t, 1, logs.FilterMessage("run finished").Len())
	fields := logs.FilterMessage("run finished").All()[0].ContextMap()
	assert.Equal(t, "additive", fields["mode"])
	assert.Equal(t, "float64", fields["arith"])
}

func TestSolve_Errors(t *testing.T) {
	_, err := solver.Solve(context.Background(), nil)
	assert.ErrorIs(t, err, solver.ErrNilInstance)

	broken := func(o *solver.Options) { o.Workers = 0 }
	_, err = solver.Solve(context.Background(), scenario(), broken)
	assert.ErrorIs(t, err, solver.ErrBadOption)

	bad := instance.NewJobs(instance.Job{Revenue: 10, Cost: 1, Prob: 1.5})
	_, err = solver.Solve(context.Background(), bad)
	assert.ErrorIs(t, err, instance.ErrInvalidItem)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { solver.WithWorkers(0) })
	assert.Panics(t, func() { solver.WithBits(10) })
	assert.Panics(t, func() { solver.WithTimeLimit(-time.Second) })
	assert.Panics(t, func() { solver.WithMatchTolerance(math.NaN()) })
	assert.Panics(t, func() { solver.WithPruneTolerance(-1) })
	assert.Panics(t, func() { solver.WithPrecision(solver.Precision(9)) })
	assert.NotPanics(t, func() { solver.WithLogger(nil) })
}

func TestDefaultOptions(t *testing.T) {
	add := solver.DefaultOptions(instance.Additive)
	assert.Equal(t, solver.Native, add.Precision)
	assert.Zero(t, add.TimeLimit)
	assert.True(t, add.TrackSubsets)
	assert.True(t, add.Speedups)

	mul := solver.DefaultOptions(instance.Multiplicative)
	assert.Equal(t, solver.Arbitrary, mul.Precision)
	assert.Equal(t, solver.DefaultMultiplicativeTimeLimit, mul.TimeLimit)
	assert.Equal(t, solver.DefaultMatchTolerance, mul.MatchTolerance)
}

func TestSolve_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := solver.Solve(ctx, scenario())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSolve_ExpiredDeadlineTimesOut(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	res, err := solver.Solve(ctx, scenario())
	require.NoError(t, err)
	assert.Equal(t, solver.StateTimedOut, res.State)
	assert.Equal(t, 0, res.Steps)
	assert.Nil(t, res.Include)
	assert.Zero(t, res.Objective)
}

func TestParsePrecision(t *testing.T) {
	p, err := solver.ParsePrecision("arbitrary")
	require.NoError(t, err)
	assert.Equal(t, solver.Arbitrary, p)

	_, err = solver.ParsePrecision("quad")
	assert.ErrorIs(t, err, solver.ErrBadOption)

	b, err := solver.StateTimedOut.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "timed_out", string(b))
}
