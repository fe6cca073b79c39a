// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/emmelineperneel/UJSSP/envelope"
	"github.com/emmelineperneel/UJSSP/numeric"
)

// outcome is the result of composing one parent with item j. It carries the
// child line only; the subset marker is materialised later, on the solver
// goroutine, for children that survive.
type outcome[T numeric.Real[T]] struct {
	intercept T
	slope     T
	score     T    // mode-specific diagnostic (multiplicative: product)
	composed  bool // false when the parent was skipped outright
	keep      bool // the child should be offered to the envelope
	match     bool // the child hits the target exactly
}

// strategy is a composition mode: two pure compose functions plus the
// mode-specific bounds, prune and answer rules around them.
//
// compose must not mutate the strategy; it may run on several goroutines.
// Every other method runs on the solver goroutine.
type strategy[T numeric.Real[T]] interface {
	// seed returns the empty-subset candidate (Subset is attached by the
	// engine).
	seed() envelope.Candidate[T]

	// domain returns the initial bounds.
	domain() (lower, upper T)

	// begin prepares per-item constants before expansion of item j.
	begin(j int)

	// compose derives the child of parent with item j.
	compose(j int, parent envelope.Candidate[T]) outcome[T]

	// observe sees every composed child in envelope order.
	observe(j int, parent envelope.Candidate[T], o *outcome[T])

	// bounds returns the domain after item j, computed on the envelope as it
	// was before the merge. errUnreachable ends the run with a negative
	// answer.
	bounds(j int, env *envelope.Envelope[T]) (lower, upper T, err error)

	// prune applies the mode-specific prefix trim and returns the number of
	// dropped candidates.
	prune(env *envelope.Envelope[T]) int

	// finalize fills the answer fields of res.
	finalize(env *envelope.Envelope[T], b envelope.Bounds[T], match *envelope.Candidate[T], res *Result) error
}

// selectIDs maps an inclusion vector in processing order to source IDs.
func selectIDs(include []bool, ids []int) []int {
	if include == nil {
		return nil
	}
	out := make([]int, 0, len(include))
	for i, in := range include {
		if in {
			out = append(out, ids[i])
		}
	}
	return out
}
