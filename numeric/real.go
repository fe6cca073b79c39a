// SPDX-License-Identifier: MIT

package numeric

import "math/big"

// Real is the arithmetic contract every engine scalar satisfies.
// Implementations are immutable value types: methods return new values.
type Real[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Quo(T) T
	Neg() T
	Abs() T

	// Exp and Log are needed by the multiplicative composition mode.
	Exp() T
	Log() T

	// Cmp returns -1, 0 or +1. Infinities compare as expected.
	Cmp(T) int
	Sign() int
	IsInf() bool
	IsNaN() bool

	// Float64 returns the nearest float64 (may round, overflow to ±Inf).
	Float64() float64
	String() string
}

// Arith is the construction-time strategy that produces values of type T.
type Arith[T Real[T]] interface {
	// Name identifies the strategy in logs and reports ("float64", "big512").
	Name() string

	FromFloat64(float64) T
	FromInt64(int64) T
	FromBigInt(*big.Int) T

	// Inf returns +∞ for sign >= 0 and −∞ otherwise.
	Inf(sign int) T

	// Sqrt returns the square root of a non-negative value.
	Sqrt(T) T

	// Epsilon is the relative resolution of the representation
	// (distance from 1 to the next representable value).
	Epsilon() float64

	// Lossy reports whether x cannot be represented exactly.
	Lossy(x *big.Int) bool
}

// Near reports whether |a−b| < tol.
func Near[T Real[T]](a, b, tol T) bool {
	return a.Sub(b).Abs().Cmp(tol) < 0
}

// Min returns the smaller of a and b (a on ties).
func Min[T Real[T]](a, b T) T {
	if b.Cmp(a) < 0 {
		return b
	}
	return a
}

// Max returns the larger of a and b (a on ties).
func Max[T Real[T]](a, b T) T {
	if b.Cmp(a) > 0 {
		return b
	}
	return a
}

// Resolves reports whether tol is distinguishable at the magnitude of x
// under the strategy's resolution, i.e. |x|·ε ≤ tol. When it is false an
// absolute tolerance test around x degenerates into exact equality.
func Resolves[T Real[T]](arith Arith[T], x T, tol float64) bool {
	return abs64(x.Float64())*arith.Epsilon() <= tol
}

func abs64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
