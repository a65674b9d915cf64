package metrics

import (
	"fmt"
	"time"
)

// Indicators summarizes a pi computation's throughput for display,
// derived from the digit count produced and the time it took.
type Indicators struct {
	// Digits is the number of decimal digits computed.
	Digits uint64
	// DigitsPerSecond is the overall throughput of the computation.
	DigitsPerSecond float64
	// SplitDepth is the binary-splitting recursion depth the
	// Chudnovsky driver reached for this digit count, roughly
	// ceil(log2(Digits)).
	SplitDepth int
	// StepsPerSecond is SplitDepth divided by elapsed seconds, a rough
	// measure of how quickly the recursion is being walked.
	StepsPerSecond float64
}

// splitDepth returns the binary-splitting recursion depth for digits
// decimal digits of output, matching how internal/pi partitions its
// series summation.
func splitDepth(digits uint64) int {
	depth := 0
	for n := digits; n > 1; n >>= 1 {
		depth++
	}
	return depth
}

// Compute derives Indicators from a completed computation's digit
// count and wall-clock duration.
func Compute(digits uint64, duration time.Duration) *Indicators {
	seconds := duration.Seconds()
	if seconds <= 0 {
		seconds = 1e-9
	}
	depth := splitDepth(digits)
	return &Indicators{
		Digits:          digits,
		DigitsPerSecond: float64(digits) / seconds,
		SplitDepth:      depth,
		StepsPerSecond:  float64(depth) / seconds,
	}
}

// ComputeLive derives a partial Indicators snapshot mid-calculation
// from the target digit count, the average progress fraction (0..1)
// across running calculators, and the elapsed time so far.
func ComputeLive(targetDigits uint64, averageProgress float64, elapsed time.Duration) *Indicators {
	if averageProgress <= 0 {
		averageProgress = 0.0001
	}
	estimatedDigits := uint64(float64(targetDigits) * averageProgress)
	return Compute(estimatedDigits, elapsed)
}

// FormatDigitsPerSecond renders a digits-per-second throughput value
// with a fixed-point format suitable for a narrow metrics column.
func FormatDigitsPerSecond(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.2fM/s", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2fK/s", v/1e3)
	default:
		return fmt.Sprintf("%.1f/s", v)
	}
}
