package bignum

import "math/bits"

// karatsubaLimbThreshold is the minimum limb count (of the smaller
// operand) below which Karatsuba recursion bottoms out to schoolbook
// multiplication. The source this is grounded on names the variable
// "byte_len" but actually counts limbs (each 8 bytes) — the threshold
// value, 64 limbs, is carried over unchanged.
const karatsubaLimbThreshold = 64

// MultiplyNaive multiplies lhs and rhs with the schoolbook double loop,
// carrying each partial product through the result with 128-bit
// intermediate arithmetic (via math/bits.Add64/Mul64).
func MultiplyNaive(lhs, rhs BigUint) BigUint {
	if lhs.IsZero() || rhs.IsZero() {
		return BigUint{}
	}

	out := make([]uint64, len(lhs.limbs)+len(rhs.limbs))
	for i := 0; i < len(lhs.limbs); i++ {
		if lhs.limbs[i] == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < len(rhs.limbs); j++ {
			hi, lo := bits.Mul64(lhs.limbs[i], rhs.limbs[j])
			lo, c1 := bits.Add64(lo, out[i+j], 0)
			lo, c2 := bits.Add64(lo, carry, 0)
			out[i+j] = lo
			carry = hi + c1 + c2
		}
		for k := i + len(rhs.limbs); carry > 0; k++ {
			sum, c := bits.Add64(out[k], carry, 0)
			out[k] = sum
			carry = c
		}
	}

	return BigUint{limbs: trimLeadingZeros(out)}
}

// MultiplyKaratsuba multiplies lhs and rhs using Karatsuba's
// divide-and-conquer algorithm, falling back to MultiplyNaive once
// either operand is at or below karatsubaLimbThreshold limbs.
func MultiplyKaratsuba(lhs, rhs BigUint) BigUint {
	maxLen := len(lhs.limbs)
	if len(rhs.limbs) > maxLen {
		maxLen = len(rhs.limbs)
	}
	minLen := len(lhs.limbs)
	if len(rhs.limbs) < minLen {
		minLen = len(rhs.limbs)
	}

	if minLen <= karatsubaLimbThreshold {
		return MultiplyNaive(lhs, rhs)
	}

	shiftBits := uint64((maxLen+1)/2) * 64

	lhsHigh := lhs.Shr(shiftBits)
	rhsHigh := rhs.Shr(shiftBits)
	lhsLow := lhs.ShiftMod2Pow(0, shiftBits)
	rhsLow := rhs.ShiftMod2Pow(0, shiftBits)

	k1 := MultiplyKaratsuba(lhsLow, rhsLow)
	k2 := MultiplyKaratsuba(lhsHigh, rhsHigh)
	k3 := MultiplyKaratsuba(lhsHigh.Add(lhsLow), rhsHigh.Add(rhsLow))

	// k3 - k1 - k2 is always non-negative for valid Karatsuba operands.
	mid, err := k3.Sub(k1)
	if err == nil {
		mid, err = mid.Sub(k2)
	}
	if err != nil {
		// Unreachable for well-formed inputs; treat as zero cross term
		// rather than panic on an internal algorithmic invariant.
		mid = BigUint{}
	}

	result := k1
	result = result.ShlAddAssign(k2, 2*shiftBits)
	result = result.ShlAddAssign(mid, shiftBits)
	return result
}

// Multiply multiplies lhs and rhs, choosing schoolbook or Karatsuba by
// operand size. This is the default multiplier used internally by
// Pow and by BigInt; it never reaches for the SSA kernel, matching the
// two-algorithm dispatch of the kernel this package is grounded on. The
// three-way schoolbook/Karatsuba/SSA dispatcher with a configurable SSA
// crossover lives in package mul.
func Multiply(lhs, rhs BigUint) BigUint {
	minLen := len(lhs.limbs)
	if len(rhs.limbs) < minLen {
		minLen = len(rhs.limbs)
	}
	if minLen <= karatsubaLimbThreshold {
		return MultiplyNaive(lhs, rhs)
	}
	return MultiplyKaratsuba(lhs, rhs)
}
