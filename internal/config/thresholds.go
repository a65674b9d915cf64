package config

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (-threshold, -ssa-threshold)
//   2. Environment variables (BIGPI_THRESHOLD, BIGPI_SSA_THRESHOLD)
//   3. Cached calibration profile (see internal/calibration)
//   4. Adaptive hardware estimation (this file)
//   5. Static defaults in internal/bignum/mul

// ApplyAdaptiveThresholds adjusts the configuration thresholds based on
// hardware characteristics (CPU cores, SIMD width) when default values
// are detected. This provides automatic performance optimization without
// requiring explicit calibration.
//
// The function only modifies thresholds that are set to their zero
// default, preserving any user-specified overrides via command-line
// flags or environment variables.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = EstimateOptimalKaratsubaThreshold()
	}
	if cfg.SSAThreshold == 0 {
		cfg.SSAThreshold = EstimateOptimalSSAThreshold()
	}
	return cfg
}

// EstimateOptimalKaratsubaThreshold provides a heuristic estimate of the
// optimal schoolbook/Karatsuba crossover (in operand bits) without
// running benchmarks.
func EstimateOptimalKaratsubaThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 8192 // single core: favor the simpler schoolbook path longer
	case numCPU <= 4:
		return 4096
	case numCPU <= 16:
		return 2048
	default:
		return 1024
	}
}

// EstimateOptimalSSAThreshold provides a heuristic estimate of the
// optimal Karatsuba/SSA crossover (in operand bits) without running
// benchmarks. Wide integer SIMD (AVX2 and above) speeds up the limb
// arithmetic both algorithms share, but it speeds up SSA's NTT butterfly
// passes more, since those touch every element independently; detecting
// it lets the crossover shift down from the conservative scalar default.
func EstimateOptimalSSAThreshold() int {
	base := 1 << 20 // 1M bits, matching mul.DefaultThresholds's own baseline

	if cpu.X86.HasAVX2 {
		return base / 2
	}
	return base
}
