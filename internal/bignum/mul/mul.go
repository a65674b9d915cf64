// Package mul provides the production multiplication dispatcher: it
// wires schoolbook, Karatsuba, and the SSA (Schönhage–Strassen) kernel
// behind a single entry point selected by operand size, with the
// Karatsuba/SSA crossover configurable instead of left as dead code.
package mul

import (
	"github.com/agbru/bigpi/internal/bignum"
	"github.com/agbru/bigpi/internal/ssa"
)

// Algorithm identifies which multiplication strategy was used or should
// be forced, for orchestration and benchmarking.
type Algorithm string

const (
	Schoolbook Algorithm = "schoolbook"
	Karatsuba  Algorithm = "karatsuba"
	SSA        Algorithm = "ssa"
)

// Thresholds configures the bit-length crossover between Karatsuba and
// SSA. The schoolbook/Karatsuba cut is not configurable: Multiply sends
// operands above 64*64 bits (64 limbs, the kernel's own internal
// crossover) to Karatsuba. SSA requires a configurable crossover above
// which the NTT kernel's fixed overhead pays for itself, since unlike
// the Karatsuba split this one the reference implementation leaves
// permanently disabled.
type Thresholds struct {
	// SSABitThreshold is the operand bit-length above which Multiply
	// dispatches to the SSA kernel instead of Karatsuba.
	SSABitThreshold uint64
}

// DefaultThresholds returns empirically reasonable crossover points.
// SSA's NTT fan-out only wins once Karatsuba's O(n^1.585) constant
// factors are dwarfed by its recursion depth; 1<<20 bits (~1M bits, ~
// 131KB operands) is a conservative crossover matching the scale at
// which agbruneau-FibGo's own FFT threshold (500,000 bits) kicks in.
func DefaultThresholds() Thresholds {
	return Thresholds{SSABitThreshold: 1 << 20}
}

// Multiply multiplies lhs and rhs, selecting schoolbook, Karatsuba, or
// SSA by operand bit length according to thresholds.
func Multiply(lhs, rhs bignum.BigUint, thresholds Thresholds) bignum.BigUint {
	_, bitLen := selectAlgorithm(lhs, rhs, thresholds)
	return multiplyWith(lhs, rhs, bitLenToAlgorithm(bitLen, thresholds))
}

// MultiplyWithAlgorithm forces a specific algorithm, bypassing threshold
// selection. It exists so the comparison orchestration (and tests for
// testable property 3: the three algorithms must agree) can run every
// algorithm over the same operand pair.
func MultiplyWithAlgorithm(lhs, rhs bignum.BigUint, algo Algorithm) bignum.BigUint {
	return multiplyWith(lhs, rhs, algo)
}

// SelectedAlgorithm reports which algorithm Multiply would choose for
// the given operands under thresholds, without performing the
// multiplication.
func SelectedAlgorithm(lhs, rhs bignum.BigUint, thresholds Thresholds) Algorithm {
	algo, _ := selectAlgorithm(lhs, rhs, thresholds)
	return algo
}

func selectAlgorithm(lhs, rhs bignum.BigUint, thresholds Thresholds) (Algorithm, uint64) {
	bitLen := lhs.NumberOfBits()
	if r := rhs.NumberOfBits(); r > bitLen {
		bitLen = r
	}
	return bitLenToAlgorithm(bitLen, thresholds), bitLen
}

func bitLenToAlgorithm(bitLen uint64, thresholds Thresholds) Algorithm {
	if bitLen >= thresholds.SSABitThreshold {
		return SSA
	}
	if bitLen > 64*64 {
		return Karatsuba
	}
	return Schoolbook
}

func multiplyWith(lhs, rhs bignum.BigUint, algo Algorithm) bignum.BigUint {
	switch algo {
	case Schoolbook:
		return bignum.MultiplyNaive(lhs, rhs)
	case SSA:
		return ssa.Multiply(lhs, rhs)
	default:
		return bignum.MultiplyKaratsuba(lhs, rhs)
	}
}
