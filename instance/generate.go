// SPDX-License-Identifier: MIT

package instance

import (
	"fmt"
	"math"
	"strings"
)

// ProbMethod selects how GenerateJobs draws success probabilities.
type ProbMethod int

const (
	// ProbUniform draws each p from U(0.01, 0.99), redrawing while ⌊p·r⌋ < 1.
	ProbUniform ProbMethod = iota
	// ProbJointLow fixes the joint probability in U(0.01, 0.10).
	ProbJointLow
	// ProbJointMid fixes the joint probability in U(0.10, 0.40).
	ProbJointMid
	// ProbJointHigh fixes the joint probability in U(0.40, 0.90).
	ProbJointHigh
)

func (m ProbMethod) String() string {
	switch m {
	case ProbUniform:
		return "uniform"
	case ProbJointLow:
		return "low"
	case ProbJointMid:
		return "mid"
	case ProbJointHigh:
		return "high"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseProbMethod accepts "uniform", "low", "mid" and "high".
func ParseProbMethod(s string) (ProbMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uniform", "":
		return ProbUniform, nil
	case "low":
		return ProbJointLow, nil
	case "mid", "medium":
		return ProbJointMid, nil
	case "high":
		return ProbJointHigh, nil
	}
	return ProbUniform, fmt.Errorf("%w: unknown probability method %q", ErrGenerate, s)
}

// Generator limits.
const (
	minRevenue = 50
	maxRevenue = 500
	maxWeight  = 1000

	// maxFactorAttempts bounds the retries of the "yes" construction.
	maxFactorAttempts = 100000
)

// GenerateJobs draws n jobs deterministically from seed.
//
// Revenues are uniform in [50, 500]. Probabilities follow method; for the
// joint methods a joint probability P is drawn first and split over the
// jobs by random weights, p_i = P^(w_i/Σw). Costs are uniform integers in
// [⌈P·r_i⌉, ⌊p_i·r_i⌋], so every job alone is worth doing but all of them
// together are not.
func GenerateJobs(seed int64, n int, method ProbMethod) (*Instance, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative job count %d", ErrGenerate, n)
	}
	var lo, hi float64
	switch method {
	case ProbUniform:
	case ProbJointLow:
		lo, hi = 0.01, 0.10
	case ProbJointMid:
		lo, hi = 0.10, 0.40
	case ProbJointHigh:
		lo, hi = 0.40, 0.90
	default:
		return nil, fmt.Errorf("%w: unknown probability method %d", ErrGenerate, int(method))
	}

	var (
		rng   = newRNG(seed)
		jobs  = make([]Job, n)
		joint = 1.0
		i     int
	)
	for i = range jobs {
		jobs[i] = Job{ID: i, Revenue: uniformInt(rng, minRevenue, maxRevenue)}
	}

	if method == ProbUniform {
		for i = range jobs {
			p := uniformFloat(rng, 0.01, 0.99)
			for math.Floor(p*float64(jobs[i].Revenue)) < 1 {
				p = uniformFloat(rng, 0.01, 0.99)
			}
			jobs[i].Prob = p
			joint *= p
		}
	} else {
		joint = uniformFloat(rng, lo, hi)
		weights := make([]int64, n)
		var total int64
		for i = range weights {
			weights[i] = uniformInt(rng, 1, maxWeight)
			total += weights[i]
		}
		for i = range jobs {
			jobs[i].Prob = math.Exp(math.Log(joint) * float64(weights[i]) / float64(total))
		}
	}

	for i = range jobs {
		r := float64(jobs[i].Revenue)
		jobs[i].Cost = uniformInt(rng, int64(math.Ceil(joint*r)), int64(math.Floor(jobs[i].Prob*r)))
	}

	in := &Instance{Mode: Additive, Jobs: jobs}
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerate, err)
	}
	return in, nil
}

// GenerateFactors draws n factors in [2, ub] deterministically from seed.
//
// With yes == false the factors are independent. With yes == true the
// instance is built to have a perfect split: the first j factors are drawn
// freely, their product P is factored into primes, and the primes are dealt
// into the remaining n−j factors without exceeding ub, so both halves
// multiply to P. Unlucky draws are retried; ErrGenerate after too many.
func GenerateFactors(seed int64, n int, yes bool, ub int64) (*Instance, error) {
	if ub < 2 {
		return nil, fmt.Errorf("%w: upper bound %d < 2", ErrGenerate, ub)
	}
	if n < 0 || (yes && n < 2) {
		return nil, fmt.Errorf("%w: factor count %d", ErrGenerate, n)
	}

	rng := newRNG(seed)
	values := make([]int64, n)
	if !yes {
		for i := range values {
			values[i] = uniformInt(rng, 2, ub)
		}
		return NewFactors(values...), nil
	}

	for attempt := 0; attempt < maxFactorAttempts; attempt++ {
		j := int(uniformInt(rng, 1, int64(n-1)))
		var primes []int64
		for i := 0; i < j; i++ {
			values[i] = uniformInt(rng, 2, ub)
			primes = append(primes, primeFactors(values[i])...)
		}
		r := n - j
		if len(primes) < r {
			continue
		}
		if dealPrimes(values[j:], primes, ub, rng.Perm(len(primes)), rng.Intn) {
			return NewFactors(values...), nil
		}
	}
	return nil, fmt.Errorf("%w: no yes-instance with n=%d ub=%d after %d attempts",
		ErrGenerate, n, ub, maxFactorAttempts)
}

// dealPrimes fills groups so that their product is the product of primes
// and each group stays ≤ ub. The first len(groups) primes of order seed
// one group each; the rest go to a random group with room. It reports
// false when some prime fits nowhere.
func dealPrimes(groups []int64, primes []int64, ub int64, order []int, pick func(int) int) bool {
	var (
		r    = len(groups)
		room = make([]int, 0, r)
	)
	for g := range groups {
		groups[g] = primes[order[g]]
	}
	for _, k := range order[r:] {
		p := primes[k]
		room = room[:0]
		for g := range groups {
			if groups[g] <= ub/p {
				room = append(room, g)
			}
		}
		if len(room) == 0 {
			return false
		}
		groups[room[pick(len(room))]] *= p
	}
	return true
}

// primeFactors returns the prime factors of v ≥ 2 with multiplicity, by
// trial division.
func primeFactors(v int64) []int64 {
	var out []int64
	for v%2 == 0 {
		out = append(out, 2)
		v /= 2
	}
	for d := int64(3); d*d <= v; d += 2 {
		for v%d == 0 {
			out = append(out, d)
			v /= d
		}
	}
	if v > 1 {
		out = append(out, v)
	}
	return out
}
