package solver_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emmelineperneel/UJSSP/instance"
)

const (
	// epsProfit compares float64 objectives of small instances.
	epsProfit = 1e-6
)

// scenario is the two-job instance whose optimum takes only the first job:
// 0.5·100 − 10 = 40 beats 0.5·100 + 0.25·100 − 70 = 5.
func scenario() *instance.Instance {
	return instance.NewJobs(
		instance.Job{Revenue: 100, Cost: 10, Prob: 0.5},
		instance.Job{Revenue: 100, Cost: 60, Prob: 0.5},
	)
}

// profitOf is the expected profit of running the included jobs in order:
// each revenue is earned only if every earlier included job succeeded, and
// every cost is paid.
func profitOf(jobs []instance.Job, include []bool) float64 {
	var (
		v       float64
		survive = 1.0
	)
	for i, j := range jobs {
		if !include[i] {
			continue
		}
		v += survive * j.Prob * float64(j.Revenue)
		survive *= j.Prob
		v -= float64(j.Cost)
	}
	return v
}

// bruteAdditive enumerates every subset. O(2^n · n).
func bruteAdditive(t *testing.T, jobs []instance.Job) float64 {
	t.Helper()
	require.LessOrEqual(t, len(jobs), 16, "brute force is exponential")

	var (
		n       = len(jobs)
		best    = 0.0
		include = make([]bool, n)
	)
	for mask := 0; mask < 1<<n; mask++ {
		for i := range include {
			include[i] = mask&(1<<i) != 0
		}
		best = math.Max(best, profitOf(jobs, include))
	}
	return best
}

// bruteSplit reports whether some subset of values multiplies to √Π.
func bruteSplit(t *testing.T, values []int64) bool {
	t.Helper()
	require.LessOrEqual(t, len(values), 16, "brute force is exponential")

	joint := int64(1)
	for _, v := range values {
		joint *= v
	}
	for mask := 0; mask < 1<<len(values); mask++ {
		p := int64(1)
		for i, v := range values {
			if mask&(1<<i) != 0 {
				p *= v
			}
		}
		if joint%p == 0 && joint/p == p {
			return true
		}
	}
	return false
}

// factorValues extracts the plain values of a multiplicative instance.
func factorValues(in *instance.Instance) []int64 {
	out := make([]int64, len(in.Factors))
	for i, f := range in.Factors {
		out[i] = f.Value
	}
	return out
}

// productOf multiplies the included factors.
func productOf(values []int64, include []bool) int64 {
	p := int64(1)
	for i, v := range values {
		if include[i] {
			p *= v
		}
	}
	return p
}

// mustJobs generates a sorted additive instance or fails the test.
func mustJobs(t testing.TB, seed int64, n int, method instance.ProbMethod, order instance.Order) *instance.Instance {
	t.Helper()
	in, err := instance.GenerateJobs(seed, n, method)
	require.NoError(t, err)
	in, err = instance.Sort(in, order, seed)
	require.NoError(t, err)
	return in
}
