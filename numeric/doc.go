// SPDX-License-Identifier: MIT

// Package numeric provides the scalar arithmetic used by the envelope engine.
//
// The engine never works on float64 directly. It is generic over a value type
// T satisfying Real[T], and it obtains constants (zero, one, ±∞, converted
// integers) from an Arith[T] strategy chosen once, when a run is configured.
//
// Two strategies ship with the package:
//
//   - Float (FloatArith)    native float64. Fast; adequate for the additive
//     (expected profit) mode where every quantity stays well inside the
//     float64 range.
//   - Big   (BigArith)      math/big.Float at a configurable precision
//     (default 512 bits) with exp/log from github.com/ALTree/bigfloat.
//     Required by the multiplicative (product partition) mode, where joint
//     products overflow the 53-bit mantissa long before they overflow the
//     exponent range.
//
// Value semantics:
//
//	Every operation returns a fresh value; receivers are never mutated.
//	Big values therefore allocate per operation, which is the price of
//	keeping Candidate records free of aliasing.
//
// NaN policy:
//
//	Float can carry NaN and reports it through IsNaN. Big cannot represent
//	NaN; math/big panics with big.ErrNaN instead. Callers that must fail
//	loudly on numeric instability (the envelope merge) recover that panic
//	and turn it into an error.
package numeric
