// SPDX-License-Identifier: MIT

package numeric

import (
	"math"
	"math/big"
	"strconv"
)

// Float is the native float64 scalar.
type Float float64

// Compile-time contract checks.
var (
	_ Real[Float]  = Float(0)
	_ Arith[Float] = FloatArith{}
)

// Add returns f + o.
func (f Float) Add(o Float) Float { return f + o }

// Sub returns f − o.
func (f Float) Sub(o Float) Float { return f - o }

// Mul returns f · o.
func (f Float) Mul(o Float) Float { return f * o }

// Quo returns f / o, ±Inf or NaN on a zero divisor as in IEEE 754.
func (f Float) Quo(o Float) Float { return f / o }

// Neg returns −f.
func (f Float) Neg() Float { return -f }

// Abs returns |f|.
func (f Float) Abs() Float { return Float(math.Abs(float64(f))) }

// Exp returns e^f.
func (f Float) Exp() Float { return Float(math.Exp(float64(f))) }

// Log returns ln(f). Log(0) is −Inf.
func (f Float) Log() Float { return Float(math.Log(float64(f))) }

// Cmp orders f and o. NaN operands compare as equal to everything; callers
// check IsNaN where it matters.
func (f Float) Cmp(o Float) int {
	switch {
	case f < o:
		return -1
	case f > o:
		return 1
	default:
		return 0
	}
}

// Sign returns −1, 0 or +1.
func (f Float) Sign() int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	default:
		return 0
	}
}

// IsInf reports ±Inf.
func (f Float) IsInf() bool { return math.IsInf(float64(f), 0) }

// IsNaN reports f != f.
func (f Float) IsNaN() bool { return math.IsNaN(float64(f)) }

// Float64 returns f unchanged.
func (f Float) Float64() float64 { return float64(f) }

// String prints the shortest representation that round-trips.
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// FloatArith is the float64 strategy.
type FloatArith struct{}

// Name is "float64".
func (FloatArith) Name() string { return "float64" }

// FromFloat64 wraps x.
func (FloatArith) FromFloat64(x float64) Float { return Float(x) }

// FromInt64 rounds x to the nearest float64.
func (FloatArith) FromInt64(x int64) Float { return Float(x) }

// Sqrt returns √x, NaN for negative x.
func (FloatArith) Sqrt(x Float) Float { return Float(math.Sqrt(float64(x))) }

// Epsilon is the float64 machine epsilon, 2^-52.
func (FloatArith) Epsilon() float64 { return 0x1p-52 }

// Inf returns +Inf for sign >= 0, else −Inf.
func (FloatArith) Inf(sign int) Float { return Float(math.Inf(signOf(sign))) }

// FromBigInt rounds x to the nearest float64. Lossy tells whether it had to.
func (FloatArith) FromBigInt(x *big.Int) Float {
	f, _ := new(big.Float).SetInt(x).Float64()
	return Float(f)
}

// Lossy is true when x needs more than 53 significant bits.
func (FloatArith) Lossy(x *big.Int) bool {
	_, acc := new(big.Float).SetInt(x).Float64()
	return acc != big.Exact
}

func signOf(sign int) int {
	if sign >= 0 {
		return 1
	}
	return -1
}
