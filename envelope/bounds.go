// SPDX-License-Identifier: MIT

package envelope

import (
	"fmt"

	"github.com/emmelineperneel/UJSSP/numeric"
)

// Bounds is the feasible parameter interval [Lower, Upper].
type Bounds[T numeric.Real[T]] struct {
	Lower T
	Upper T
}

// Move reports which end of the interval narrowed on the last Update.
type Move struct {
	LowerRose bool
	UpperFell bool
}

// NewBounds returns [lower, upper] or ErrBoundsCrossed.
func NewBounds[T numeric.Real[T]](lower, upper T) (Bounds[T], error) {
	if lower.Cmp(upper) > 0 {
		return Bounds[T]{}, fmt.Errorf("%w: [%s, %s]", ErrBoundsCrossed, lower, upper)
	}
	return Bounds[T]{Lower: lower, Upper: upper}, nil
}

// Update replaces both ends and reports which of them narrowed. Callers trim
// the envelope only on the side that moved inward. A crossing interval is an
// invariant violation; the previous bounds are kept and ErrBoundsCrossed is
// returned.
func (b *Bounds[T]) Update(lower, upper T) (Move, error) {
	if lower.IsNaN() || upper.IsNaN() {
		return Move{}, fmt.Errorf("%w: NaN bound", ErrNumericInstability)
	}
	if lower.Cmp(upper) > 0 {
		return Move{}, fmt.Errorf("%w: [%s, %s]", ErrBoundsCrossed, lower, upper)
	}
	mv := Move{
		LowerRose: lower.Cmp(b.Lower) > 0,
		UpperFell: upper.Cmp(b.Upper) < 0,
	}
	b.Lower, b.Upper = lower, upper
	return mv, nil
}

// Contains reports whether Lower ≤ x ≤ Upper.
func (b Bounds[T]) Contains(x T) bool {
	return b.Lower.Cmp(x) <= 0 && x.Cmp(b.Upper) <= 0
}
