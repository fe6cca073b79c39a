// SPDX-License-Identifier: MIT

package numeric

import (
	"math"
	"math/big"
	"strconv"

	"github.com/ALTree/bigfloat"
)

// DefaultPrecision is the mantissa size (bits) used by NewBigArith(0).
const DefaultPrecision uint = 512

// Big is an arbitrary precision scalar backed by *big.Float.
// The zero value is 0 at DefaultPrecision.
type Big struct {
	v *big.Float
}

var (
	_ Real[Big]  = Big{}
	_ Arith[Big] = BigArith{}
)

// val returns the underlying float, materialising the zero value.
func (b Big) val() *big.Float {
	if b.v == nil {
		return new(big.Float).SetPrec(DefaultPrecision)
	}
	return b.v
}

// prec picks the working precision of a binary operation.
func (b Big) prec(o Big) uint {
	p, q := b.val().Prec(), o.val().Prec()
	if q > p {
		return q
	}
	return p
}

// Add returns b + o at the wider of the two precisions.
func (b Big) Add(o Big) Big {
	return Big{new(big.Float).SetPrec(b.prec(o)).Add(b.val(), o.val())}
}

// Sub returns b − o.
func (b Big) Sub(o Big) Big {
	return Big{new(big.Float).SetPrec(b.prec(o)).Sub(b.val(), o.val())}
}

// Mul returns b · o.
func (b Big) Mul(o Big) Big {
	return Big{new(big.Float).SetPrec(b.prec(o)).Mul(b.val(), o.val())}
}

// Quo panics with big.ErrNaN for 0/0 and ∞/∞, like math/big.
func (b Big) Quo(o Big) Big {
	return Big{new(big.Float).SetPrec(b.prec(o)).Quo(b.val(), o.val())}
}

// Neg returns −b at b's precision.
func (b Big) Neg() Big {
	x := b.val()
	return Big{new(big.Float).SetPrec(x.Prec()).Neg(x)}
}

// Abs returns |b|.
func (b Big) Abs() Big {
	x := b.val()
	return Big{new(big.Float).SetPrec(x.Prec()).Abs(x)}
}

// Exp returns e^b at b's precision.
func (b Big) Exp() Big {
	x := b.val()
	if x.IsInf() {
		if x.Sign() > 0 {
			return Big{new(big.Float).SetPrec(x.Prec()).SetInf(false)}
		}
		return Big{new(big.Float).SetPrec(x.Prec())}
	}
	return Big{bigfloat.Exp(x)}
}

// Log returns ln(b). Log(0) is −∞; a negative argument panics with big.ErrNaN.
func (b Big) Log() Big {
	x := b.val()
	switch x.Sign() {
	case 0:
		return Big{new(big.Float).SetPrec(x.Prec()).SetInf(true)}
	case -1:
		panic(big.ErrNaN{})
	}
	if x.IsInf() {
		return Big{new(big.Float).SetPrec(x.Prec()).SetInf(false)}
	}
	return Big{bigfloat.Log(x)}
}

// Cmp orders b and o.
func (b Big) Cmp(o Big) int { return b.val().Cmp(o.val()) }

// Sign returns −1, 0 or +1.
func (b Big) Sign() int { return b.val().Sign() }

// IsInf reports ±∞.
func (b Big) IsInf() bool { return b.val().IsInf() }

// IsNaN is always false: big.Float has no NaN and panics instead.
func (b Big) IsNaN() bool { return false }

// String prints 24 significant digits.
func (b Big) String() string { return b.val().Text('g', 24) }

// Float64 rounds to the nearest float64; values out of range become ±Inf.
func (b Big) Float64() float64 {
	f, _ := b.val().Float64()
	return f
}

// Float returns a copy of the underlying value.
func (b Big) Float() *big.Float {
	return new(big.Float).Copy(b.val())
}

// BigArith is the arbitrary precision strategy.
type BigArith struct {
	// Prec is the mantissa size in bits.
	Prec uint
}

// NewBigArith returns a strategy at prec bits (DefaultPrecision when 0).
func NewBigArith(prec uint) BigArith {
	if prec == 0 {
		prec = DefaultPrecision
	}
	return BigArith{Prec: prec}
}

func (a BigArith) bits() uint {
	if a.Prec == 0 {
		return DefaultPrecision
	}
	return a.Prec
}

// Name is "big" followed by the precision, e.g. "big512".
func (a BigArith) Name() string { return "big" + strconv.FormatUint(uint64(a.bits()), 10) }

// FromFloat64 converts x exactly. NaN panics with big.ErrNaN.
func (a BigArith) FromFloat64(x float64) Big {
	if math.IsNaN(x) {
		panic(big.ErrNaN{})
	}
	return Big{new(big.Float).SetPrec(a.bits()).SetFloat64(x)}
}

// FromInt64 converts x, exactly unless Prec < 64.
func (a BigArith) FromInt64(x int64) Big {
	return Big{new(big.Float).SetPrec(a.bits()).SetInt64(x)}
}

// FromBigInt rounds x to Prec bits; see Lossy.
func (a BigArith) FromBigInt(x *big.Int) Big {
	return Big{new(big.Float).SetPrec(a.bits()).SetInt(x)}
}

// Inf returns +∞ for sign >= 0, else −∞.
func (a BigArith) Inf(sign int) Big {
	return Big{new(big.Float).SetPrec(a.bits()).SetInf(sign < 0)}
}

// Sqrt returns √x at Prec bits. Sqrt(0) is 0; a negative x panics.
func (a BigArith) Sqrt(x Big) Big {
	v := x.val()
	if v.Sign() == 0 {
		return Big{new(big.Float).SetPrec(a.bits())}
	}
	return Big{new(big.Float).SetPrec(a.bits()).Sqrt(v)}
}

// Epsilon is 2^(1−Prec), the relative spacing of values at Prec bits.
func (a BigArith) Epsilon() float64 {
	return math.Ldexp(1, -int(a.bits()-1))
}

// Lossy is true when x needs more significant bits than Prec.
func (a BigArith) Lossy(x *big.Int) bool {
	return new(big.Float).SetPrec(a.bits()).SetInt(x).Acc() != big.Exact
}
