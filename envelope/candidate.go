// SPDX-License-Identifier: MIT

package envelope

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/emmelineperneel/UJSSP/numeric"
)

// Candidate is one linear function value(x) = Intercept + Slope·x.
//
// Limit is the optimality limit: the upper end of the sub-interval on which
// this candidate is maximal relative to its right neighbour. It is assigned
// by the Envelope; values set by callers are overwritten on Insert.
//
// Subset marks the included items. It is nil when the run does not track
// subsets, in which case the candidate is identified only by its line.
type Candidate[T numeric.Real[T]] struct {
	Intercept T
	Slope     T
	Limit     T
	Subset    *bitset.BitSet
}

// Value evaluates the line at x.
func (c Candidate[T]) Value(x T) T {
	return c.Intercept.Add(c.Slope.Mul(x))
}

// Before reports whether c sorts before o: smaller slope first, and on equal
// slopes the larger intercept first (the smaller one is never kept).
func (c Candidate[T]) Before(o Candidate[T]) bool {
	switch c.Slope.Cmp(o.Slope) {
	case -1:
		return true
	case 1:
		return false
	}
	return c.Intercept.Cmp(o.Intercept) > 0
}

// Include returns the child candidate obtained by adding item j to c with the
// given line. The parent's subset is cloned, never shared.
func (c Candidate[T]) Include(j uint, intercept, slope T) Candidate[T] {
	child := Candidate[T]{Intercept: intercept, Slope: slope}
	if c.Subset != nil {
		child.Subset = c.Subset.Clone().Set(j)
	}
	return child
}

// Members returns the inclusion vector of length n, or nil when the subset
// is not tracked.
func (c Candidate[T]) Members(n int) []bool {
	if c.Subset == nil {
		return nil
	}
	out := make([]bool, n)
	for i, ok := c.Subset.NextSet(0); ok && int(i) < n; i, ok = c.Subset.NextSet(i + 1) {
		out[i] = true
	}
	return out
}

// intersect returns the abscissa where a and b meet, solving
// a.Intercept + a.Slope·x = b.Intercept + b.Slope·x.
// Equal slopes are reported as ErrNumericInstability.
func intersect[T numeric.Real[T]](a, b Candidate[T]) (x T, err error) {
	den := b.Slope.Sub(a.Slope)
	if den.Sign() == 0 {
		return x, ErrNumericInstability
	}
	x = a.Intercept.Sub(b.Intercept).Quo(den)
	if x.IsNaN() {
		return x, ErrNumericInstability
	}
	return x, nil
}
