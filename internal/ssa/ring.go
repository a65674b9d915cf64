// Package ssa implements the Schönhage–Strassen multiplication kernel:
// arithmetic in the ring GF(2^n+1) and the NTT-based transform used to
// multiply BigUint operands whose bit length is large enough that
// Karatsuba stops paying for itself.
package ssa

import (
	apperrors "github.com/agbru/bigpi/internal/errors"
	"github.com/agbru/bigpi/internal/bignum"
)

// Elem is an element of the ring Z/(2^n+1)Z, represented by a BigUint
// value in [0, 2^n]. The principal root of unity used by this package's
// NTT is 2, which is why every twiddle factor (Make2Pow) is a pure
// shift-and-reduce instead of a general multiplication.
type Elem struct {
	n     uint64
	value bignum.BigUint
}

// NewElem wraps value as a GF(2^n+1) element. value is assumed already
// reduced to [0, 2^n]; callers that cannot guarantee this should reduce
// via ApplyMod first (see Make2Pow for the analogous internal use).
func NewElem(n uint64, value bignum.BigUint) Elem {
	return Elem{n: n, value: value}
}

// N returns the ring's modulus exponent.
func (e Elem) N() uint64 { return e.n }

// Value returns the element's BigUint representative.
func (e Elem) Value() bignum.BigUint { return e.value }

// applyMod reduces value_ (which may be as large as roughly 2^(2n+2)
// after a multiply) back to a representative in [0, 2^n] using the
// identity 2^n = -1 (mod 2^n+1): splitting value = q*2^n + r gives
// value = r - q (mod 2^n+1).
func (e Elem) applyMod() Elem {
	q := e.value.Shr(e.n)
	if q.IsZero() {
		return e
	}

	r := e.value.ModAssign2Pow(e.n)
	if r.Cmp(q) < 0 {
		r = r.AddAssign2Pow(e.n).Inc()
	}
	diff, _ := r.Sub(q)
	return Elem{n: e.n, value: diff}
}

func (e Elem) checkN(op string, rhs Elem) error {
	if e.n != rhs.n {
		return apperrors.NewParameterMismatchError(op, e.n, rhs.n)
	}
	return nil
}

// Add returns e + rhs. It returns a ParameterMismatchError if the two
// elements belong to rings of different n.
func (e Elem) Add(rhs Elem) (Elem, error) {
	if err := e.checkN("ssa.Elem.Add", rhs); err != nil {
		return Elem{}, err
	}
	return Elem{n: e.n, value: e.value.Add(rhs.value)}.applyMod(), nil
}

// Sub returns e - rhs. It returns a ParameterMismatchError if the two
// elements belong to rings of different n.
func (e Elem) Sub(rhs Elem) (Elem, error) {
	if err := e.checkN("ssa.Elem.Sub", rhs); err != nil {
		return Elem{}, err
	}
	lhsValue := e.value
	if lhsValue.Cmp(rhs.value) < 0 {
		lhsValue = lhsValue.AddAssign2Pow(e.n).Inc()
	}
	diff, _ := lhsValue.Sub(rhs.value)
	return Elem{n: e.n, value: diff}.applyMod(), nil
}

// Mul returns e * rhs. It returns a ParameterMismatchError if the two
// elements belong to rings of different n.
func (e Elem) Mul(rhs Elem) (Elem, error) {
	if err := e.checkN("ssa.Elem.Mul", rhs); err != nil {
		return Elem{}, err
	}
	product := bignum.Multiply(e.value, rhs.value)
	return Elem{n: e.n, value: product}.applyMod(), nil
}

// Make2Pow returns 2^p reduced into GF(2^n+1) directly from the
// exponent, without materializing the full unreduced power of two more
// than once. This is what makes every NTT twiddle factor free: powers
// of the principal root ω=2 are pure shifts.
func Make2Pow(p, n uint64) Elem {
	p %= 2 * n
	value := bignum.NewBigUint(1).Shl(p)
	e := Elem{n: n, value: value}
	if p > n {
		e = e.applyMod()
	}
	return e
}
