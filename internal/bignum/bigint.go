package bignum

import "fmt"

// BigInt is an arbitrary-precision signed integer built on BigUint. Zero
// is always represented with a non-negative sign, so equality comparison
// of two zero BigInts never depends on how each was produced.
type BigInt struct {
	negative bool
	mag      BigUint
}

// NewBigInt constructs a BigInt from a magnitude and a sign. Zero is
// always normalized to non-negative regardless of the requested sign.
func NewBigInt(mag BigUint, negative bool) BigInt {
	if mag.IsZero() {
		negative = false
	}
	return BigInt{negative: negative, mag: mag}
}

// NewBigIntFromInt64 constructs a BigInt from a signed 64-bit integer.
func NewBigIntFromInt64(v int64) BigInt {
	if v < 0 {
		return NewBigInt(NewBigUint(uint64(-v)), true)
	}
	return NewBigInt(NewBigUint(uint64(v)), false)
}

// IsZero reports whether the value is zero.
func (b BigInt) IsZero() bool { return b.mag.IsZero() }

// Sign returns -1, 0, or +1.
func (b BigInt) Sign() int {
	if b.mag.IsZero() {
		return 0
	}
	if b.negative {
		return -1
	}
	return 1
}

// Abs returns the unsigned magnitude of b.
func (b BigInt) Abs() BigUint { return b.mag }

// Neg returns -b.
func (b BigInt) Neg() BigInt {
	if b.mag.IsZero() {
		return b
	}
	return BigInt{negative: !b.negative, mag: b.mag}
}

// Cmp returns -1, 0, or +1 as b is less than, equal to, or greater than rhs.
func (b BigInt) Cmp(rhs BigInt) int {
	if b.negative != rhs.negative {
		if b.mag.IsZero() && rhs.mag.IsZero() {
			return 0
		}
		if b.negative {
			return -1
		}
		return 1
	}
	c := b.mag.Cmp(rhs.mag)
	if b.negative {
		return -c
	}
	return c
}

// Add returns b + rhs.
func (b BigInt) Add(rhs BigInt) BigInt {
	if b.negative == rhs.negative {
		return NewBigInt(b.mag.Add(rhs.mag), b.negative)
	}

	// Differing signs: subtract the smaller magnitude from the larger,
	// taking the sign of the larger.
	switch b.mag.Cmp(rhs.mag) {
	case 0:
		return BigInt{}
	case 1:
		diff, _ := b.mag.Sub(rhs.mag)
		return NewBigInt(diff, b.negative)
	default:
		diff, _ := rhs.mag.Sub(b.mag)
		return NewBigInt(diff, rhs.negative)
	}
}

// Sub returns b - rhs.
func (b BigInt) Sub(rhs BigInt) BigInt {
	return b.Add(rhs.Neg())
}

// Mul returns b * rhs, using the schoolbook/Karatsuba magnitude
// multiplier. Zero is always non-negative regardless of operand signs.
func (b BigInt) Mul(rhs BigInt) BigInt {
	mag := Multiply(b.mag, rhs.mag)
	return NewBigInt(mag, b.negative != rhs.negative)
}

// NumberOfBits returns the number of bits required to represent the
// magnitude of b (0 for zero).
func (b BigInt) NumberOfBits() uint64 { return b.mag.NumberOfBits() }

// Shl returns b << n, preserving sign.
func (b BigInt) Shl(n uint64) BigInt { return BigInt{negative: b.negative, mag: b.mag.Shl(n)} }

// Shr returns b >> n, preserving sign.
func (b BigInt) Shr(n uint64) BigInt { return NewBigInt(b.mag.Shr(n), b.negative) }

// String renders b as a signed hex-limb debug string.
func (b BigInt) String() string {
	if b.negative {
		return fmt.Sprintf("-%s", b.mag.String())
	}
	return fmt.Sprintf("+%s", b.mag.String())
}
