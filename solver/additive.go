// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/emmelineperneel/UJSSP/envelope"
	"github.com/emmelineperneel/UJSSP/instance"
	"github.com/emmelineperneel/UJSSP/numeric"
)

// additive is the expected-profit mode.
//
// A candidate is the line value(R) = I + S·R where I is the expected profit
// of its subset and S the probability that all of its jobs succeed, R being
// the revenue still to be earned after the last job. Including job j maps
//
//	I' = I + S·r_j·p_j − c_j,   S' = S·p_j.
//
// The domain is [0, U_j], U_j the largest expected revenue any subset of
// the later jobs can still earn given that job j succeeded. After the last job U = 0 and the answer is the
// candidate optimal at R = 0, i.e. the largest intercept.
type additive[T numeric.Real[T]] struct {
	n        int
	speedups bool

	rp     []T // r_j·p_j
	p      []T
	c      []T
	suffix []T // suffix[j] = U_j
	total  T   // U before the first job
	zero   T
	one    T
}

func newAdditive[T numeric.Real[T]](arith numeric.Arith[T], jobs []instance.Job, o Options) *additive[T] {
	n := len(jobs)
	s := &additive[T]{
		n:        n,
		speedups: o.Speedups,
		rp:       make([]T, n),
		p:        make([]T, n),
		c:        make([]T, n),
		suffix:   make([]T, n),
		zero:     arith.FromInt64(0),
		one:      arith.FromInt64(1),
	}
	for j, job := range jobs {
		s.p[j] = arith.FromFloat64(job.Prob)
		s.c[j] = arith.FromInt64(job.Cost)
		s.rp[j] = arith.FromInt64(job.Revenue).Mul(s.p[j])
	}

	// U_{n-1} = 0, U_{j-1} = max(U_j, rp_j + p_j·U_j): job j is either
	// skipped or taken ahead of the best later subset.
	u := s.zero
	for j := n - 1; j >= 0; j-- {
		s.suffix[j] = u
		u = numeric.Max(u, s.rp[j].Add(s.p[j].Mul(u)))
	}
	s.total = u
	return s
}

func (s *additive[T]) seed() envelope.Candidate[T] {
	return envelope.Candidate[T]{Intercept: s.zero, Slope: s.one}
}

func (s *additive[T]) domain() (T, T) { return s.zero, s.total }

func (s *additive[T]) begin(int) {}

func (s *additive[T]) compose(j int, parent envelope.Candidate[T]) outcome[T] {
	// A parent optimal only below r_j·p_j never profits from job j.
	if s.speedups && parent.Limit.Cmp(s.rp[j]) < 0 {
		return outcome[T]{}
	}
	return outcome[T]{
		intercept: parent.Intercept.Add(parent.Slope.Mul(s.rp[j])).Sub(s.c[j]),
		slope:     parent.Slope.Mul(s.p[j]),
		composed:  true,
		keep:      true,
	}
}

func (s *additive[T]) observe(int, envelope.Candidate[T], *outcome[T]) {}

func (s *additive[T]) bounds(j int, _ *envelope.Envelope[T]) (T, T, error) {
	return s.zero, s.suffix[j], nil
}

func (s *additive[T]) prune(*envelope.Envelope[T]) int { return 0 }

func (s *additive[T]) finalize(env *envelope.Envelope[T], b envelope.Bounds[T], _ *envelope.Candidate[T], res *Result) error {
	i, err := env.Locate(b.Lower)
	if err != nil {
		return err
	}
	best := env.At(i)
	v := best.Value(b.Lower)
	res.Objective = v.Float64()
	res.ObjectiveText = v.String()
	res.Include = best.Members(s.n)
	return nil
}
