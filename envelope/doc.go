// SPDX-License-Identifier: MIT
// Package envelope maintains the upper envelope of linear candidate functions
// over a narrowing parameter domain.
//
// 🚀 What is the envelope?
//
//	Every Candidate is a line  value(x) = Intercept + Slope·x  tagged with the
//	subset of items it represents. The Envelope keeps only candidates that are
//	maximal somewhere in the current domain [Lower, Upper]:
//
//	        value
//	          │            ╱ C
//	          │     ___.──╱
//	          │ ___╱ B   ╱
//	          │╱ A      ╱
//	          └────┬───┬──────── x
//	             A∩B  B∩C
//
//	Entries are ordered by strictly increasing Slope. Entry i is optimal on
//	(Limit[i−1], Limit[i]]; the last entry's Limit is +∞, so the envelope
//	covers the whole real line without gaps.
//
// ✨ Operations:
//   - Insert        merge one candidate with dominance elimination (binary
//     search, tie-break, left/right walks, one contiguous splice).
//   - TrimFront     drop the prefix whose sub-intervals lie below Lower.
//   - TrimBack      drop the suffix whose sub-intervals lie above Upper.
//   - Collapse      keep a single candidate (exact-match fast path).
//   - Locate        find the entry optimal at x; Evaluate gives its value.
//   - Validate      check the ordering and coverage invariants.
//
// Bounds tracks [Lower, Upper] and reports which end narrowed on each
// update, so callers trim only the end that moved.
//
// Numeric type:
//
//	Envelope and Bounds are generic over numeric.Real, so the same code runs
//	on float64 and on arbitrary precision values.
//
// Concurrency:
//
//	Not safe for concurrent mutation. One goroutine owns an Envelope for the
//	lifetime of a run.
//
// Complexity:
//   - Insert:  O(log n + k) where k is the number of entries removed.
//   - Trims:   O(k) for k removed entries.
//   - Locate:  O(log n).
package envelope
