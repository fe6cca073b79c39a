// SPDX-License-Identifier: MIT

// Package solver runs the envelope-dominance engine over an ordered
// instance, in one of two composition modes.
//
// 🚀 What is the engine?
//
// Items are consumed one at a time. Every candidate subset is a line
// value(x) = I + S·x over a scalar parameter x; the envelope keeps only the
// lines that are maximal somewhere in the current domain [lower, upper].
// Per item the driver loop:
//
//  1. checks the time budget and the context;
//  2. expands every candidate with the item (optionally on several workers);
//  3. stops on an exact match (multiplicative mode);
//  4. narrows the domain and trims the envelope from the side that moved;
//  5. merges the surviving children with dominance elimination.
//
// After the last item the answer is read off the envelope.
//
// ✨ Modes
//
//   - Additive (expected profit of unreliable jobs):
//     I' = I + S·r·p − c, S' = S·p. Answer: best value at x = 0.
//   - Multiplicative (product partition):
//     I' = I − log a, S' = S / a. Answer: a subset whose product is
//     √(Π a_i), or "no" with the closest product seen.
//
// ⚙️ Precision
//
// The engine is generic over numeric.Real. Solve picks float64 (Native) or
// *big.Float (Arbitrary, 512 bits by default) once, from Options. The
// multiplicative mode defaults to Arbitrary; Result.PrecisionLoss reports
// when the chosen strategy cannot resolve the target.
//
// ⏱ Time budget
//
// Options.TimeLimit and the context deadline are checked once per item.
// On expiry the run ends in StateTimedOut with elapsed time only; the
// partial envelope is discarded. Context cancellation returns ctx.Err().
//
// SolveDP is the budget-indexed dynamic program for the additive mode,
// used as a reference.
//
// Complexity:
//   - Time:  O(Σ_j |E_j| · log |E_j|) envelope work, |E_j| the envelope size
//     before item j; worst case exponential in n.
//   - Space: O(max_j |E_j| · n/64) words with subset tracking.
package solver
