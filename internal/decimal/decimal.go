// Package decimal converts bignum and bigfloat values to decimal
// strings: it has no inverse (no parsing) because nothing in this
// repository's operations needs to read decimal literals back in.
package decimal

import (
	"strings"

	"github.com/agbru/bigpi/internal/bigfloat"
	"github.com/agbru/bigpi/internal/bignum"
	apperrors "github.com/agbru/bigpi/internal/errors"
)

const log2Of10 = 3.321928094887362

// make10Pow returns 10^n. n is always a decimal digit count in this
// package, far short of the exponent at which BigUint.Pow can overflow.
func make10Pow(n uint64) bignum.BigUint {
	p, _ := bignum.NewBigUint(10).Pow(n)
	return p
}

// log10Int returns floor(log10(num)) via binary search over powers of
// ten, doubling the search bound until it brackets num. It returns a
// DomainError for zero, which has no logarithm.
func log10Int(num bignum.BigUint) (int64, error) {
	if num.IsZero() {
		return 0, apperrors.NewDomainError("decimal.log10Int", "number must be greater than zero")
	}

	r := int64(1)
	for make10Pow(uint64(r)).Cmp(num) <= 0 {
		r *= 2
	}

	l := r / 2
	for r-l > 1 {
		m := (l + r) / 2
		if make10Pow(uint64(m)).Cmp(num) <= 0 {
			l = m
		} else {
			r = m
		}
	}
	return l, nil
}

// makePaddedString renders value as a fixed-width, zero-padded decimal
// string of exactly length digits.
func makePaddedString(value uint64, length int64) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = '0'
	}
	idx := length - 1
	for value > 0 && idx >= 0 {
		buf[idx] = byte(value%10) + '0'
		value /= 10
		idx--
	}
	return string(buf)
}

// fractionalPartToString renders digitLen decimal digits of num's
// fractional part, recursively halving the digit count so that each
// leaf extracts at most 19 digits (the most a uint64 can hold) via
// IntegerPart, in the same divide-and-conquer shape as the kernel this
// package is grounded on.
func fractionalPartToString(num bigfloat.BigFloat, digitLen int64) string {
	origPrecision := num.Precision()

	if digitLen <= 0 {
		return ""
	}
	if digitLen <= 19 {
		scale := bigfloat.New(origPrecision, bignum.NewBigInt(make10Pow(uint64(digitLen)), false))
		scaled := num.Mul(scale)
		value, _ := scaled.IntegerPart().Abs().Uint64()
		return makePaddedString(value, digitLen)
	}

	upperLen := digitLen / 2
	lowerLen := digitLen - upperLen

	upperStr := fractionalPartToString(num, upperLen)

	scale := bigfloat.New(origPrecision, bignum.NewBigInt(make10Pow(uint64(upperLen)), false))
	num = num.Mul(scale)
	lowerStr := fractionalPartToString(num.FractionalPart(), lowerLen)

	var sb strings.Builder
	sb.WriteString(upperStr)
	sb.WriteString(lowerStr)
	return sb.String()
}

// BigUintToString renders num in decimal, via reciprocal scaling:
// num is multiplied by 1/10^digitLen (computed to extra precision) to
// bring it into [0, 1), then the fractional-digit extractor above reads
// off digitLen decimal digits.
func BigUintToString(num bignum.BigUint) (string, error) {
	if num.IsZero() {
		return "0", nil
	}

	log10, err := log10Int(num)
	if err != nil {
		return "", err
	}
	digitLen := log10 + 1
	numberOfBits := int64(num.NumberOfBits())

	b := bigfloat.New(numberOfBits+10, bignum.NewBigInt(make10Pow(uint64(digitLen)), false))
	invB, err := bigfloat.Inverse(b)
	if err != nil {
		return "", err
	}

	f := bigfloat.New(numberOfBits+10, bignum.NewBigInt(num, false)).Mul(invB)
	// Round-to-nearest nudge: inv_B/2, half a unit in the last decimal
	// place.
	f = f.Add(invB.Shr(1))

	return fractionalPartToString(f, digitLen), nil
}

// BigIntToString renders num in decimal, with a leading "-" for
// negative values.
func BigIntToString(num bignum.BigInt) (string, error) {
	absStr, err := BigUintToString(num.Abs())
	if err != nil {
		return "", err
	}
	if num.Sign() < 0 {
		return "-" + absStr, nil
	}
	return absStr, nil
}

// BigFloatToString renders num in decimal as "integer.fractional", with
// the fractional digit count derived from num's reliable bit count
// (converted to decimal digits via log2(10)).
func BigFloatToString(num bigfloat.BigFloat) (string, error) {
	integerPart := num.IntegerPart()
	fractionalPart := num.FractionalPart()

	integerStr, err := BigIntToString(integerPart)
	if err != nil {
		return "", err
	}

	fracPrecision := fractionalPart.FractionalPartPrecision()
	digitLen := int64(float64(fracPrecision) / log2Of10)
	fractionalStr := fractionalPartToString(fractionalPart, digitLen)

	var sb strings.Builder
	sb.WriteString(integerStr)
	sb.WriteByte('.')
	sb.WriteString(fractionalStr)
	return sb.String(), nil
}
