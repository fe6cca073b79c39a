// SPDX-License-Identifier: MIT

package envelope

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/emmelineperneel/UJSSP/numeric"
)

// Envelope is the ordered set of non-dominated candidates.
type Envelope[T numeric.Real[T]] struct {
	arith   numeric.Arith[T]
	items   []Candidate[T]
	posInf  T
	negInf  T
	removed int
}

// New returns an envelope holding only root, whose Limit becomes +∞.
func New[T numeric.Real[T]](arith numeric.Arith[T], root Candidate[T]) *Envelope[T] {
	e := &Envelope[T]{
		arith:  arith,
		posInf: arith.Inf(1),
		negInf: arith.Inf(-1),
	}
	root.Limit = e.posInf
	e.items = []Candidate[T]{root}
	return e
}

// Len returns the number of candidates.
func (e *Envelope[T]) Len() int { return len(e.items) }

// At returns the i-th candidate in slope order.
func (e *Envelope[T]) At(i int) Candidate[T] { return e.items[i] }

// Front returns the candidate with the smallest slope.
func (e *Envelope[T]) Front() Candidate[T] { return e.items[0] }

// Back returns the candidate with the largest slope.
func (e *Envelope[T]) Back() Candidate[T] { return e.items[len(e.items)-1] }

// Removed returns how many candidates were discarded so far, by dominance
// or trimming.
func (e *Envelope[T]) Removed() int { return e.removed }

// Candidates returns a copy of the entries in slope order.
func (e *Envelope[T]) Candidates() []Candidate[T] {
	out := make([]Candidate[T], len(e.items))
	copy(out, e.items)
	return out
}

// Insert merges c into the envelope over the domain [lower, upper].
// It reports whether c was kept. A rejected candidate leaves the envelope
// untouched.
//
// Steps:
//  1. r = first entry with Slope ≥ c.Slope, l = r−1.
//  2. Equal slope at r: keep the larger intercept. If the existing entry
//     wins, c is dominated; otherwise the existing entry falls inside the
//     splice range.
//  3. x_r = c∩items[r] (+∞ past the end), x_l = items[l]∩c (−∞ before start).
//  4. Reject when x_r ≤ x_l, or there is no left entry and x_r ≤ lower, or
//     there is no right entry and x_l ≥ upper.
//  5. Walk l left while the intersection with items[l−1] does not move left,
//     walk r right while the intersection with items[r+1] does not move
//     right. Entries strictly between l and r are dominated by c.
//  6. Splice them out; drop the first entry if its region ends at or below
//     lower, the last entry if its region starts at or above upper.
//  7. Insert c at l+1 with Limit = x_r; set items[l].Limit = x_l.
//
// Errors: ErrNumericInstability when an intersection cannot be computed.
func (e *Envelope[T]) Insert(c Candidate[T], lower, upper T) (kept bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var nan big.ErrNaN
			if pe, ok := rec.(error); ok && errors.As(pe, &nan) {
				kept, err = false, fmt.Errorf("%w: %v", ErrNumericInstability, pe)
				return
			}
			panic(rec)
		}
	}()

	var (
		n  = len(e.items)
		r  = sort.Search(n, func(i int) bool { return e.items[i].Slope.Cmp(c.Slope) >= 0 })
		l  = r - 1
		xr T
		xl T
	)

	// Step 2: the tie-break precedes every division.
	if r < n && e.items[r].Slope.Cmp(c.Slope) == 0 {
		if e.items[r].Intercept.Cmp(c.Intercept) >= 0 {
			return false, nil
		}
		r++
	}

	// Step 3.
	if r == n {
		xr = e.posInf
	} else if xr, err = intersect(c, e.items[r]); err != nil {
		return false, err
	}
	if l == -1 {
		xl = e.negInf
	} else if xl, err = intersect(e.items[l], c); err != nil {
		return false, err
	}

	// Step 4.
	if xr.Cmp(xl) <= 0 {
		return false, nil
	}
	if l == -1 && xr.Cmp(lower) <= 0 {
		return false, nil
	}
	if r == n && xl.Cmp(upper) >= 0 {
		return false, nil
	}

	// Step 5.
	var nx T
	for l >= 1 {
		if nx, err = intersect(e.items[l-1], c); err != nil {
			return false, err
		}
		if nx.Cmp(xl) < 0 {
			break
		}
		xl = nx
		l--
	}
	for r <= n-2 {
		if nx, err = intersect(c, e.items[r+1]); err != nil {
			return false, err
		}
		if nx.Cmp(xr) > 0 {
			break
		}
		xr = nx
		r++
	}

	// Step 6.
	if r-l > 1 {
		e.removeRange(l+1, r)
		r = l + 1
	}
	if l == 0 && xl.Cmp(lower) <= 0 {
		e.removeRange(0, 1)
		l = -1
		r--
	}
	if r == len(e.items)-1 && xr.Cmp(upper) >= 0 {
		e.removeRange(r, r+1)
	}
	if r == len(e.items) {
		xr = e.posInf
	}

	// Step 7.
	c.Limit = xr
	e.insertAt(l+1, c)
	if l >= 0 {
		e.items[l].Limit = xl
	}

	return true, nil
}

// TrimFront drops leading entries whose optimality limit is below lower,
// keeping at least one entry. It returns the number removed.
func (e *Envelope[T]) TrimFront(lower T) int {
	k := 0
	for len(e.items)-k >= 2 && e.items[k].Limit.Cmp(lower) < 0 {
		k++
	}
	e.removeRange(0, k)
	return k
}

// TrimBack drops trailing entries while the second-to-last limit exceeds
// upper, keeping at least one entry. The new last entry is re-opened to +∞.
func (e *Envelope[T]) TrimBack(upper T) int {
	n := len(e.items)
	k := n
	for k >= 2 && e.items[k-2].Limit.Cmp(upper) > 0 {
		k--
	}
	if k == n {
		return 0
	}
	e.removeRange(k, n)
	e.items[k-1].Limit = e.posInf
	return n - k
}

// DropFrontWhile removes leading entries while drop reports true. Unlike
// TrimFront it may empty the envelope.
func (e *Envelope[T]) DropFrontWhile(drop func(Candidate[T]) bool) int {
	k := 0
	for k < len(e.items) && drop(e.items[k]) {
		k++
	}
	e.removeRange(0, k)
	return k
}

// Collapse replaces the whole envelope by c.
func (e *Envelope[T]) Collapse(c Candidate[T]) {
	e.removed += len(e.items)
	c.Limit = e.posInf
	e.items = append(e.items[:0], c)
}

// Locate returns the index of the entry optimal at x: the first entry whose
// Limit is ≥ x. ErrEmpty when the envelope has no entries.
func (e *Envelope[T]) Locate(x T) (int, error) {
	n := len(e.items)
	if n == 0 {
		return -1, ErrEmpty
	}
	i := sort.Search(n, func(i int) bool { return e.items[i].Limit.Cmp(x) >= 0 })
	if i == n {
		i = n - 1
	}
	return i, nil
}

// Evaluate returns the envelope value at x.
func (e *Envelope[T]) Evaluate(x T) (T, error) {
	i, err := e.Locate(x)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.items[i].Value(x), nil
}

// Validate checks the invariants: strictly increasing slopes, strictly
// increasing limits and a +∞ limit on the last entry.
func (e *Envelope[T]) Validate() error {
	var i int
	for i = 0; i < len(e.items); i++ {
		c := e.items[i]
		if c.Intercept.IsNaN() || c.Slope.IsNaN() || c.Limit.IsNaN() {
			return fmt.Errorf("%w: NaN in entry %d", ErrInvariant, i)
		}
		if i == 0 {
			continue
		}
		p := e.items[i-1]
		if p.Slope.Cmp(c.Slope) >= 0 {
			return fmt.Errorf("%w: slope[%d]=%s is not below slope[%d]=%s",
				ErrInvariant, i-1, p.Slope, i, c.Slope)
		}
		if p.Limit.Cmp(c.Limit) >= 0 {
			return fmt.Errorf("%w: limit[%d]=%s is not below limit[%d]=%s",
				ErrInvariant, i-1, p.Limit, i, c.Limit)
		}
	}
	if n := len(e.items); n > 0 && !(e.items[n-1].Limit.IsInf() && e.items[n-1].Limit.Sign() > 0) {
		return fmt.Errorf("%w: last limit %s is not +Inf", ErrInvariant, e.items[n-1].Limit)
	}
	return nil
}

// removeRange deletes items[i:j] as one atomic splice.
func (e *Envelope[T]) removeRange(i, j int) {
	if j <= i {
		return
	}
	n := len(e.items)
	copy(e.items[i:], e.items[j:])
	for k := n - (j - i); k < n; k++ {
		e.items[k] = Candidate[T]{}
	}
	e.items = e.items[:n-(j-i)]
	e.removed += j - i
}

// insertAt places c at position i, shifting the tail right.
func (e *Envelope[T]) insertAt(i int, c Candidate[T]) {
	e.items = append(e.items, Candidate[T]{})
	copy(e.items[i+1:], e.items[i:])
	e.items[i] = c
}
