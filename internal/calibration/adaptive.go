// This file implements adaptive threshold and concurrency-depth generation
// based on hardware characteristics.

package calibration

import (
	"runtime"

	"github.com/agbru/bigpi/internal/config"
)

// ─────────────────────────────────────────────────────────────────────────────
// Concurrency Depth Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateConcurrencyDepths generates a list of goroutine fan-out depths to
// benchmark for the binary-splitting recursion, based on the number of
// available CPU cores.
//
// The rationale:
// - Single-core: only sequential (0) makes sense, since fan-out has no benefit
// - 2-4 cores: test shallow depths, since fan-out overhead is relatively high
// - 8+ cores: include deeper fan-out, since more parallelism can pay off
// - 16+ cores: add even deeper fan-out for very fine-grained splitting
func GenerateConcurrencyDepths() []int {
	numCPU := runtime.NumCPU()

	depths := []int{0} // sequential (no fan-out)

	switch {
	case numCPU == 1:
		return depths
	case numCPU <= 4:
		depths = append(depths, 1, 2, 3)
	case numCPU <= 8:
		depths = append(depths, 1, 2, 3, 4, 5)
	case numCPU <= 16:
		depths = append(depths, 1, 2, 3, 4, 5, 6)
	default:
		depths = append(depths, 1, 2, 3, 4, 5, 6, 7)
	}

	return depths
}

// GenerateQuickConcurrencyDepths generates a smaller set of depths for quick
// auto-calibration at startup.
func GenerateQuickConcurrencyDepths() []int {
	numCPU := runtime.NumCPU()

	if numCPU == 1 {
		return []int{0}
	}

	switch {
	case numCPU <= 4:
		return []int{0, 2, 3}
	case numCPU <= 8:
		return []int{0, 2, 4, 5}
	default:
		return []int{0, 2, 4, 6, 7}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Adaptive Karatsuba Threshold Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateKaratsubaThresholds generates a list of schoolbook/Karatsuba
// crossover points (in operand bits) to benchmark.
func GenerateKaratsubaThresholds() []int {
	return []int{256, 512, 1024, 2048, 4096, 8192}
}

// GenerateQuickKaratsubaThresholds generates a smaller set for quick
// calibration.
func GenerateQuickKaratsubaThresholds() []int {
	return []int{512, 2048, 4096}
}

// ─────────────────────────────────────────────────────────────────────────────
// Adaptive SSA Threshold Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateSSAThresholds generates a list of Karatsuba/SSA crossover points
// (in operand bits) to benchmark.
func GenerateSSAThresholds() []int {
	return []int{1 << 16, 1 << 18, 1 << 19, 1 << 20, 1 << 21}
}

// GenerateQuickSSAThresholds generates a smaller set for quick calibration.
func GenerateQuickSSAThresholds() []int {
	return []int{1 << 18, 1 << 20, 1 << 21}
}

// ─────────────────────────────────────────────────────────────────────────────
// Threshold Estimation (without benchmarking)
// Delegates to config.EstimateOptimal* — canonical implementations live there.
// ─────────────────────────────────────────────────────────────────────────────

// EstimateOptimalKaratsubaThreshold delegates to config.EstimateOptimalKaratsubaThreshold.
func EstimateOptimalKaratsubaThreshold() int { return config.EstimateOptimalKaratsubaThreshold() }

// EstimateOptimalSSAThreshold delegates to config.EstimateOptimalSSAThreshold.
func EstimateOptimalSSAThreshold() int { return config.EstimateOptimalSSAThreshold() }
