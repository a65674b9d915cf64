package format

import (
	"fmt"
	"strings"
	"time"
)

// ProgressState tracks the individual progress of a fixed number of
// concurrent calculators and computes their average. This is the shared
// aggregation primitive behind both the CLI's progress bar and the TUI's
// dashboard.
type ProgressState struct {
	progresses     []float64
	numCalculators int
}

// NewProgressState creates a ProgressState tracking numCalculators
// independent progress values, all starting at zero.
func NewProgressState(numCalculators int) *ProgressState {
	return &ProgressState{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
	}
}

// Update records the latest progress value (0.0 to 1.0) for one
// calculator. Out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage returns the mean progress across all tracked
// calculators, or 0 if there are none.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numCalculators == 0 {
		return 0.0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numCalculators)
}

// ProgressWithETA layers a smoothed completion-rate estimate on top of a
// ProgressState, letting callers display a remaining-time estimate
// alongside the aggregated progress bar.
type ProgressWithETA struct {
	*ProgressState
	numCalculators int
	startTime      time.Time
	progressRate   float64 // fraction of total work completed per second
}

// NewProgressWithETA creates a ProgressWithETA tracking numCalculators
// concurrent calculators, with the clock for rate estimation starting
// now.
func NewProgressWithETA(numCalculators int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState:  NewProgressState(numCalculators),
		numCalculators: numCalculators,
		startTime:      time.Now(),
	}
}

// UpdateWithETA records a progress update and returns the new aggregated
// average alongside a refreshed ETA estimate.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()
	if elapsed := time.Since(p.startTime).Seconds(); elapsed > 0 {
		p.progressRate = avg / elapsed
	}
	return avg, p.GetETA()
}

// GetETA returns the current estimated time remaining, without
// recording a new update. It returns 0 before enough progress has been
// observed to estimate a rate, and caps the estimate at 24 hours to
// avoid displaying absurd figures for near-stalled runs.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining < 0 {
		remaining = 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	const maxETA = 24 * time.Hour
	if eta > maxETA {
		eta = maxETA
	}
	return eta
}

// FormatETA renders an ETA duration for display. Non-positive or
// sub-second durations get a placeholder rather than a misleadingly
// precise figure.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// ProgressBar renders a textual progress bar of the given character
// width, clamping progress to [0, 1].
func ProgressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgressBarWithETA combines a progress bar, percentage, and ETA
// into a single display line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

// FormatNumberString inserts thousands separators into a base-10 digit
// string, preserving a leading sign.
func FormatNumberString(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(s[:rem])
		b.WriteByte(',')
	}
	for i := rem; i < n; i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < n {
			b.WriteByte(',')
		}
	}

	result := b.String()
	if neg {
		result = "-" + result
	}
	return result
}
