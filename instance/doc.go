// SPDX-License-Identifier: MIT

// Package instance holds the problem data consumed by the solver: unreliable
// jobs for the additive mode and integer factors for the multiplicative
// (product partition) mode.
//
// 🚀 What is in here?
//
//   - Job and Factor items, grouped in an Instance tagged with its Mode.
//   - Read / Write for the plain-text ".dat" format:
//
//     n
//     revenue  cost  prob     (additive, one job per line)
//     value                   (multiplicative, one factor per line)
//
//   - Sort, which arranges items in the order the solver must process them.
//     Ordering changes how much the solver can prune, never its answer.
//   - GenerateJobs / GenerateFactors, deterministic random instances.
//
// ✨ Key properties
//
//   - Fail fast: malformed lines, wrong item counts and out-of-range values
//     are rejected before any solver work starts (ErrMalformed, ErrCount,
//     ErrInvalidItem).
//   - Every item keeps its ID, the zero-based position in the source file,
//     so solver answers can be mapped back after reordering.
//   - Determinism: the same seed always yields the same instance and the
//     same random order.
package instance
