package metrics

import (
	"fmt"

	units "github.com/docker/go-units"
)

// bitsPerDecimalDigit is log2(10), the number of bits needed to
// represent one decimal digit.
const bitsPerDecimalDigit = 3.3219280948873626

// piTemporaries is the number of digit-sized big integers the
// Chudnovsky binary-splitting driver keeps live at once (the P/Q/T
// triple at each merge level, plus scratch for the final division and
// square root). It bounds a rough peak-memory estimate, not an exact
// count.
const piTemporaries = 8

// MemoryEstimate summarizes the projected peak memory usage of a pi
// computation to a given digit count.
type MemoryEstimate struct {
	// DigitBytes is the size, in bytes, of a single result-sized big
	// integer holding that many decimal digits.
	DigitBytes uint64
	// TotalBytes is the projected peak across all live temporaries.
	TotalBytes uint64
}

// EstimateMemoryUsage projects the peak memory a Chudnovsky computation
// to the given digit count will need, based on the bit width of a
// single result-sized big integer and the number of same-sized
// temporaries the driver keeps live at once.
func EstimateMemoryUsage(digits uint64) MemoryEstimate {
	bits := float64(digits) * bitsPerDecimalDigit
	digitBytes := uint64(bits/8) + 1
	return MemoryEstimate{
		DigitBytes: digitBytes,
		TotalBytes: digitBytes * piTemporaries,
	}
}

// FormatMemoryEstimate renders a MemoryEstimate as a human-readable
// total.
func FormatMemoryEstimate(est MemoryEstimate) string {
	return units.BytesSize(float64(est.TotalBytes))
}

// ParseMemoryLimit parses a human-readable size string such as "4GiB"
// or "512MB" into a byte count.
func ParseMemoryLimit(s string) (uint64, error) {
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid memory limit %q: %w", s, err)
	}
	return uint64(n), nil
}
