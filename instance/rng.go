// SPDX-License-Identifier: MIT

// Deterministic randomness for ordering and generation.
//
// Determinism: same seed ⇒ identical instances and orders on every platform.
// No time-based sources anywhere; a *rand.Rand is never shared across
// goroutines.

package instance

import "math/rand"

// defaultSeed replaces seed == 0 so the zero value stays reproducible.
const defaultSeed int64 = 1

// newRNG returns a deterministic *rand.Rand. seed == 0 ⇒ defaultSeed.
//
// Complexity: O(1).
func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// permutation returns a Fisher–Yates shuffle of 0..n-1 drawn from rng.
//
// Complexity: O(n) time, O(n) space.
func permutation(n int, rng *rand.Rand) []int {
	p := make([]int, n)
	var i, j int
	for i = 0; i < n; i++ {
		p[i] = i
	}
	for i = n - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// uniformInt draws from the closed range [lo, hi]; hi < lo yields hi.
func uniformInt(rng *rand.Rand, lo, hi int64) int64 {
	if hi <= lo {
		return hi
	}
	return lo + rng.Int63n(hi-lo+1)
}

// uniformFloat draws from [lo, hi).
func uniformFloat(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
