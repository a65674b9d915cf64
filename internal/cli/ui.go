//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/bigpi/internal/format"
	"github.com/agbru/bigpi/internal/progress"
	"github.com/agbru/bigpi/internal/ui"
	"github.com/briandowns/spinner"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
// This approach provides a more human-readable output for short durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// TruncationLimit is the digit threshold from which a result is truncated
	// in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the beginning
	// and end of a truncated number.
	DisplayEdges = 25
	// HexDisplayEdges specifies the number of hex characters to display at the
	// beginning and end of a truncated hexadecimal number.
	HexDisplayEdges = 40
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	// Optimized to 200ms to reduce updates and improve performance.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState is kept here for backward compatibility within the CLI
// package; the real implementation lives in internal/format so the TUI
// can share it.
type ProgressState = format.ProgressState

// NewProgressState delegates to format.NewProgressState.
func NewProgressState(numCalculators int) *ProgressState {
	return format.NewProgressState(numCalculators)
}

// progressBar delegates to format.ProgressBar.
func progressBar(p float64, length int) string {
	return format.ProgressBar(p, length)
}

// DisplayProgress consumes progress updates from progressChan, driving a
// spinner and progress bar until the channel closes. It calls wg.Done
// before returning, so callers run it in its own goroutine.
//
// Parameters:
//   - wg: signaled when display is finished.
//   - progressChan: receives updates from one or more concurrent calculators.
//   - numCalculators: number of calculators being tracked (0 disables the spinner).
//   - out: the writer the spinner renders to.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()

	if numCalculators <= 0 {
		for range progressChan {
			// Drain silently; nothing to report against.
		}
		return
	}

	state := NewProgressState(numCalculators)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	defer s.Stop()

	for update := range progressChan {
		state.Update(update.CalculatorIndex, update.Value)
		avg := state.CalculateAverage()
		bar := progressBar(avg, ProgressBarWidth)
		s.UpdateSuffix(fmt.Sprintf(" %s[%s]%s %.1f%%", ui.ColorCyan(), bar, ui.ColorReset(), avg*100))
	}
}

// DisplayResult renders a completed pi computation: a details section
// (timing and digit count), and/or the computed value itself, truncated
// past TruncationLimit unless verbose is set.
//
// Parameters:
//   - value: the computed decimal digits of pi.
//   - digits: the number of digits requested.
//   - duration: how long the computation took.
//   - verbose: show the full value even if it would otherwise be truncated.
//   - details: show the detailed timing/size analysis section.
//   - showValue: show the computed value at all.
//   - out: the writer to render to.
func DisplayResult(value string, digits uint64, duration time.Duration, verbose, details, showValue bool, out io.Writer) {
	if details {
		fmt.Fprintf(out, "\n%sDetailed result analysis:%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "  Calculation time:   %s%s%s\n", ui.ColorGreen(), FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "  Number of digits:   %s%s%s\n", ui.ColorCyan(), FormatNumberString(fmt.Sprintf("%d", digits)), ui.ColorReset())
		fmt.Fprintf(out, "  Result binary size: %s%d bytes%s\n", ui.ColorCyan(), len(value), ui.ColorReset())
	}

	if !showValue {
		return
	}

	fmt.Fprintf(out, "\n%sCalculated value:%s\n", ui.ColorBold(), ui.ColorReset())
	numDigits := len(value)
	if verbose || numDigits <= TruncationLimit {
		fmt.Fprintf(out, "  pi(%d) = %s%s%s\n", digits, ui.ColorGreen(), value, ui.ColorReset())
		return
	}

	fmt.Fprintf(out, "  pi(%d) = %s%s...%s%s (truncated)\n",
		digits, ui.ColorGreen(), value[:DisplayEdges], value[numDigits-DisplayEdges:], ui.ColorReset())
	fmt.Fprintf(out, "  %sTip: use -verbose to print the full value.%s\n", ui.ColorYellow(), ui.ColorReset())
}
