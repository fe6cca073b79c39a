// SPDX-License-Identifier: MIT

package solver

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"

	"github.com/emmelineperneel/UJSSP/envelope"
	"github.com/emmelineperneel/UJSSP/instance"
	"github.com/emmelineperneel/UJSSP/numeric"
)

// multiplicative is the product partition mode: find a subset whose product
// equals root = √(Π a_i).
//
// A candidate with product P is the line I = −log P, S = −root/P, so
// including factor a maps
//
//	I' = I − log a,   S' = S / a.
//
// Slopes grow with P, so the front of the envelope holds the smallest
// product and the back the largest. The domain is expressed through the
// factor P_rem still to be multiplied in: [1/P_ub, 1/P_lb].
type multiplicative[T numeric.Real[T]] struct {
	arith  numeric.Arith[T]
	n      int
	values []int64
	ids    []int

	joint *big.Int
	rem   *big.Int // product of the items not processed yet

	root     T
	one      T
	zero     T
	matchTol T
	hi       T // root + prune tolerance
	lo       T // root − prune tolerance
	slack    T // prune tolerance

	// Per item, set by begin and bounds.
	a         T
	loga      T
	remBefore T // P_rem including item j
	remAfter  T // P_rem excluding item j

	unreachable   bool
	precisionLoss bool

	closest     T
	closestDist T
	closestSet  *bitset.BitSet
}

func newMultiplicative[T numeric.Real[T]](arith numeric.Arith[T], factors []instance.Factor, o Options) *multiplicative[T] {
	s := &multiplicative[T]{
		arith:  arith,
		n:      len(factors),
		values: make([]int64, len(factors)),
		ids:    make([]int, len(factors)),
		joint:  big.NewInt(1),
		one:    arith.FromInt64(1),
		zero:   arith.FromInt64(0),
	}
	var v big.Int
	for i, f := range factors {
		s.values[i] = f.Value
		s.ids[i] = f.ID
		s.joint.Mul(s.joint, v.SetInt64(f.Value))
	}
	s.rem = new(big.Int).Set(s.joint)

	s.root = arith.Sqrt(arith.FromBigInt(s.joint))
	s.matchTol = arith.FromFloat64(o.MatchTolerance)
	s.slack = arith.FromFloat64(o.PruneTolerance)
	s.hi = s.root.Add(s.slack)
	s.lo = s.root.Sub(s.slack)
	s.precisionLoss = arith.Lossy(s.joint) || !numeric.Resolves(arith, s.root, o.MatchTolerance)

	// The empty subset is the first "closest" product.
	s.closest = s.one
	s.closestDist = s.root.Sub(s.one).Abs()
	if o.TrackSubsets {
		s.closestSet = bitset.New(uint(s.n))
	}
	return s
}

// product recovers P = exp(−I).
func product[T numeric.Real[T]](c envelope.Candidate[T]) T {
	return c.Intercept.Neg().Exp()
}

func (s *multiplicative[T]) seed() envelope.Candidate[T] {
	return envelope.Candidate[T]{Intercept: s.zero, Slope: s.root.Neg()}
}

func (s *multiplicative[T]) domain() (T, T) {
	x := s.one.Quo(s.root)
	return x, x
}

func (s *multiplicative[T]) begin(j int) {
	s.a = s.arith.FromInt64(s.values[j])
	s.loga = s.a.Log()
	s.remBefore = s.arith.FromBigInt(s.rem)
}

func (s *multiplicative[T]) compose(j int, parent envelope.Candidate[T]) outcome[T] {
	o := outcome[T]{
		intercept: parent.Intercept.Sub(s.loga),
		slope:     parent.Slope.Quo(s.a),
		composed:  true,
	}
	o.score = o.intercept.Neg().Exp()
	o.match = o.score.Sub(s.root).Abs().Cmp(s.matchTol) < 0

	// Overshoot, or the remaining factors cannot lift it to the root.
	o.keep = o.score.Cmp(s.hi) <= 0 && o.score.Mul(s.remBefore).Cmp(s.lo) >= 0
	return o
}

func (s *multiplicative[T]) observe(j int, parent envelope.Candidate[T], o *outcome[T]) {
	d := o.score.Sub(s.root).Abs()
	if d.Cmp(s.closestDist) >= 0 {
		return
	}
	s.closest, s.closestDist = o.score, d
	if parent.Subset != nil {
		s.closestSet = parent.Subset.Clone().Set(uint(j))
	}
}

// bounds divides item j out of P_rem and derives
//
//	P_ub = min(root / P_first, P_rem)
//	P_lb = max(1, root / (P_last · a_j))
//
// from the pre-merge envelope. P_lb > P_ub (beyond the prune tolerance)
// means even the largest reachable product falls short, or the smallest
// one overshoots. That is not a broken envelope: it proves no subset can
// reach the root, so the run ends normally with Found == false and
// errUnreachable never leaves the package. Crossings within the prune
// tolerance are rounding noise and the bounds are clamped instead.
func (s *multiplicative[T]) bounds(j int, env *envelope.Envelope[T]) (T, T, error) {
	s.rem.Quo(s.rem, big.NewInt(s.values[j]))
	s.remAfter = s.arith.FromBigInt(s.rem)

	pub, plb := s.remAfter, s.one
	if env.Len() > 0 {
		pub = numeric.Min(s.root.Quo(product(env.Front())), s.remAfter)
		plb = numeric.Max(s.one, s.root.Quo(product(env.Back()).Mul(s.a)))
	}
	if plb.Cmp(pub) > 0 {
		if plb.Sub(pub).Cmp(s.slack) > 0 {
			s.unreachable = true
			return s.zero, s.zero, errUnreachable
		}
		plb = pub
	}
	return s.one.Quo(pub), s.one.Quo(plb), nil
}

// prune drops front candidates whose product times P_rem stays below the
// root. Products grow along the envelope, so the dropped set is a prefix.
func (s *multiplicative[T]) prune(env *envelope.Envelope[T]) int {
	return env.DropFrontWhile(func(c envelope.Candidate[T]) bool {
		return product(c).Mul(s.remAfter).Cmp(s.lo) < 0
	})
}

func (s *multiplicative[T]) finalize(env *envelope.Envelope[T], _ envelope.Bounds[T], match *envelope.Candidate[T], res *Result) error {
	res.Root = s.root.Float64()
	res.RootText = s.root.String()
	res.PrecisionLoss = s.precisionLoss
	res.Closest = s.closest.Float64()
	res.ClosestText = s.closest.String()
	if s.closestSet != nil {
		res.ClosestSubset = selectIDs(members(s.closestSet, s.n), s.ids)
	}

	ans := match
	if ans == nil && !s.unreachable && env.Len() > 0 {
		ans = s.nearest(env)
	}
	if ans == nil {
		return nil
	}

	p := product(*ans)
	res.Objective = p.Float64()
	res.ObjectiveText = p.String()
	res.Include = ans.Members(s.n)
	if res.Include == nil {
		res.Found = p.Sub(s.root).Abs().Cmp(s.matchTol) < 0
		return nil
	}

	// Exact check on integers: P² = joint.
	exact := big.NewInt(1)
	var v big.Int
	for i, in := range res.Include {
		if in {
			exact.Mul(exact, v.SetInt64(s.values[i]))
		}
	}
	res.ObjectiveText = exact.String()
	res.Objective, _ = new(big.Float).SetInt(exact).Float64()
	res.Found = v.Mul(exact, exact).Cmp(s.joint) == 0
	return nil
}

// nearest returns the survivor whose product is closest to the root.
func (s *multiplicative[T]) nearest(env *envelope.Envelope[T]) *envelope.Candidate[T] {
	var (
		best  envelope.Candidate[T]
		bestD T
	)
	for i := 0; i < env.Len(); i++ {
		c := env.At(i)
		d := product(c).Sub(s.root).Abs()
		if i == 0 || d.Cmp(bestD) < 0 {
			best, bestD = c, d
		}
	}
	return &best
}

func members(b *bitset.BitSet, n int) []bool {
	out := make([]bool, n)
	for i, ok := b.NextSet(0); ok && int(i) < n; i, ok = b.NextSet(i + 1) {
		out[i] = true
	}
	return out
}
