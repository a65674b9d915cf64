// Package bigfloat implements an arbitrary-precision binary floating
// point number: sign * significand * 2^exponent, with an explicit
// tracked precision (the number of reliable bits of significand) rather
// than a fixed mantissa width.
package bigfloat

import (
	"fmt"
	"math/bits"

	"github.com/agbru/bigpi/internal/bignum"
	apperrors "github.com/agbru/bigpi/internal/errors"
)

// BigFloat represents sign * significand * 2^exponent. Precision tracks
// how many low bits of significand are actually reliable; it can exceed
// or fall short of significand's bit width, and callers are expected to
// widen it (via WithPrecision) before an operation that needs more
// digits than the value currently carries.
type BigFloat struct {
	precision   int64
	significand bignum.BigInt
	exponent    int64
}

// New constructs a BigFloat with the given precision and significand.
func New(precision int64, significand bignum.BigInt) BigFloat {
	return BigFloat{precision: precision, significand: significand}
}

// Zero returns the zero value at the given precision.
func Zero(precision int64) BigFloat {
	return BigFloat{precision: precision}
}

// Precision returns the number of reliable bits.
func (f BigFloat) Precision() int64 { return f.precision }

// WithPrecision returns a copy of f with precision replaced.
func (f BigFloat) WithPrecision(precision int64) BigFloat {
	f.precision = precision
	return f
}

// IsZero reports whether f's significand is zero.
func (f BigFloat) IsZero() bool { return f.significand.IsZero() }

// FractionalPartPrecision returns the number of reliable bits below the
// binary point.
func (f BigFloat) FractionalPartPrecision() int64 {
	reliable := -(f.lowestReliableBit() + f.exponent)
	if reliable < 0 {
		return 0
	}
	return reliable
}

// String renders f as "significand * 2^exponent" for debugging.
func (f BigFloat) String() string {
	if f.exponent >= 0 {
		return fmt.Sprintf("%s * 2^%d", f.significand.String(), f.exponent)
	}
	return fmt.Sprintf("%s * 2^(%d)", f.significand.String(), f.exponent)
}

func (f BigFloat) lowestReliableBit() int64 {
	return int64(f.significand.NumberOfBits()) - f.precision
}

// extendSignificand multiplies significand by 2^(exponent_-exponent) and
// sets exponent to exponent. The caller must ensure exponent < f.exponent.
func (f BigFloat) extendSignificand(exponent int64) BigFloat {
	f.significand = f.significand.Shl(uint64(f.exponent - exponent))
	f.exponent = exponent
	return f
}

// simplify drops bits of significand known to lie below the lowest
// reliable bit, and collapses the value to zero once precision has been
// exhausted entirely.
func (f BigFloat) simplify() BigFloat {
	if f.precision <= 0 {
		f.exponent -= f.precision
		f.precision = 0
		f.significand = bignum.BigInt{}
		return f
	}
	if lowest := f.lowestReliableBit(); lowest > 64 {
		shift := lowest - 1
		f.significand = f.significand.Shr(uint64(shift))
		f.exponent += shift
	}
	return f
}

// Add returns lhs + rhs.
func (lhs BigFloat) Add(rhs BigFloat) BigFloat {
	if lhs.exponent < rhs.exponent {
		rhs = rhs.extendSignificand(lhs.exponent)
	} else if lhs.exponent > rhs.exponent {
		lhs = lhs.extendSignificand(rhs.exponent)
	}

	lowestReliableBit := lhs.lowestReliableBit()
	if r := rhs.lowestReliableBit(); r > lowestReliableBit {
		lowestReliableBit = r
	}

	lhs.significand = lhs.significand.Add(rhs.significand)
	lhs.precision = int64(lhs.significand.NumberOfBits()) - lowestReliableBit
	return lhs.simplify()
}

// Neg returns -f.
func (f BigFloat) Neg() BigFloat {
	f.significand = f.significand.Neg()
	return f
}

// Sub returns lhs - rhs.
func (lhs BigFloat) Sub(rhs BigFloat) BigFloat { return lhs.Add(rhs.Neg()) }

// Mul returns lhs * rhs.
func (lhs BigFloat) Mul(rhs BigFloat) BigFloat {
	lhs.significand = lhs.significand.Mul(rhs.significand)
	if rhs.precision < lhs.precision {
		lhs.precision = rhs.precision
	}
	lhs.exponent += rhs.exponent
	return lhs.simplify()
}

// Shl returns f with its exponent increased by n. n may be negative, in
// which case this behaves like Shr(-n).
func (f BigFloat) Shl(n int64) BigFloat {
	f.exponent += n
	return f
}

// Shr returns f with its exponent decreased by n. n may be negative, in
// which case this behaves like Shl(-n).
func (f BigFloat) Shr(n int64) BigFloat {
	f.exponent -= n
	return f
}

// IntegerPart returns the integer part of f (the significand shifted so
// the binary point sits at bit 0).
func (f BigFloat) IntegerPart() bignum.BigInt {
	if f.exponent > 0 {
		return f.significand.Shl(uint64(f.exponent))
	}
	return f.significand.Shr(uint64(-f.exponent))
}

// FractionalPart returns the fractional part of abs(f).
func (f BigFloat) FractionalPart() BigFloat {
	dotBit := -f.exponent
	if dotBit < f.lowestReliableBit() {
		return Zero(0)
	}

	ansPrecision := dotBit - f.lowestReliableBit()
	if dotBit <= 0 {
		return New(ansPrecision, bignum.BigInt{})
	}

	mag := f.significand.Abs().ShiftMod2Pow(0, uint64(dotBit))
	ansSignificand := bignum.NewBigInt(mag, false)
	return New(ansPrecision, ansSignificand).Shr(dotBit)
}

// ApproximateInverse returns a coarse (~32-bit) reciprocal of f, used as
// the seed for Newton iteration in Inverse. It returns a
// DivideByZeroError if f is zero.
func (f BigFloat) ApproximateInverse() (BigFloat, error) {
	negative := f.significand.Sign() < 0
	tmp := f.significand.Abs()
	bitWidth := tmp.NumberOfBits()
	exp := f.exponent

	if bitWidth > 32 {
		tmp = tmp.Shr(bitWidth - 32)
		exp += int64(bitWidth - 32)
	}

	value, _ := tmp.Uint64()
	if value == 0 {
		return BigFloat{}, apperrors.NewDivideByZeroError("bigfloat.Inverse")
	}

	precision := f.precision
	if precision > 32 {
		precision = 32
	}

	if value == 1 {
		sig := bignum.NewBigInt(bignum.NewBigUint(1), negative)
		return New(precision, sig).Shr(exp), nil
	}

	approxDiv, _ := bits.Div64(1, 0, value)
	sig := bignum.NewBigInt(bignum.NewBigUint(approxDiv), negative)
	return New(precision, sig).Shr(64 + exp), nil
}

// ApproximateSqrt returns a coarse (~31-bit) square root of f, used as
// the seed for Newton iteration in SqrtInverse. It returns a
// DomainError if f is negative.
func (f BigFloat) ApproximateSqrt() (BigFloat, error) {
	if f.significand.Sign() < 0 {
		return BigFloat{}, apperrors.NewDomainError("bigfloat.Sqrt", "sqrt of negative number")
	}

	tmp := f.significand.Abs()
	bitWidth := tmp.NumberOfBits()
	exp := f.exponent

	switch {
	case bitWidth > 64:
		tmp = tmp.Shr(bitWidth - 64)
		exp += int64(bitWidth - 64)
	case bitWidth < 64:
		tmp = tmp.Shl(64 - bitWidth)
		exp -= int64(64 - bitWidth)
	}

	if exp%2 != 0 {
		tmp = tmp.Shr(1)
		exp++
	}

	value, _ := tmp.Uint64()
	sqrtValue := isqrt(value)

	precision := f.precision / 2
	if precision > 31 {
		precision = 31
	}

	sig := bignum.NewBigInt(bignum.NewBigUint(sqrtValue), false)
	return New(precision, sig).Shl(exp / 2), nil
}

// isqrt returns floor(sqrt(v)) via Newton's method.
func isqrt(v uint64) uint64 {
	if v == 0 {
		return 0
	}
	x := v
	y := x/2 + x&1
	for y < x {
		x = y
		y = (x + v/x) / 2
	}
	return x
}

// Inverse returns 1/num to num's own precision, via Newton iteration
// starting from ApproximateInverse and doubling precision each step.
func Inverse(num BigFloat) (BigFloat, error) {
	targetPrecision := num.Precision()
	a, err := num.ApproximateInverse()
	if err != nil {
		return BigFloat{}, err
	}

	one := New(targetPrecision, bignum.NewBigIntFromInt64(1))
	for a.Precision() < targetPrecision {
		a = a.WithPrecision(2 * a.Precision())
		x := one.Sub(num.Mul(a))
		x = x.Mul(a)
		a = a.WithPrecision(a.Precision() - 1)
		a = a.Add(x)
	}

	return a, nil
}

// Quo returns lhs/rhs. It returns a DivideByZeroError if rhs is zero.
func Quo(lhs, rhs BigFloat) (BigFloat, error) {
	inv, err := Inverse(rhs)
	if err != nil {
		return BigFloat{}, err
	}
	return lhs.Mul(inv), nil
}

// SqrtInverse returns 1/sqrt(num) to num's own precision, via Newton
// iteration on the reciprocal square root.
func SqrtInverse(num BigFloat) (BigFloat, error) {
	targetPrecision := num.Precision()

	approxSqrt, err := num.ApproximateSqrt()
	if err != nil {
		return BigFloat{}, err
	}
	a, err := Inverse(approxSqrt)
	if err != nil {
		return BigFloat{}, err
	}

	one := New(targetPrecision, bignum.NewBigIntFromInt64(1))
	for a.Precision() < targetPrecision {
		a = a.WithPrecision(2 * a.Precision())
		x := one.Sub(num.Mul(a).Mul(a))
		x = a.Mul(x).Shr(1)
		a = a.WithPrecision(a.Precision() - 1)
		a = a.Add(x)
	}

	return a, nil
}

// Sqrt returns sqrt(num). It returns a DomainError if num is negative.
func Sqrt(num BigFloat) (BigFloat, error) {
	if num.IsZero() {
		return Zero(num.Precision()), nil
	}

	sqrtInv, err := SqrtInverse(num)
	if err != nil {
		return BigFloat{}, err
	}
	return num.Mul(sqrtInv), nil
}
