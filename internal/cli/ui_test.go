package cli

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agbru/bigpi/internal/progress"
	"github.com/agbru/bigpi/internal/ui"
	"github.com/briandowns/spinner"
)

// MockSpinner for testing
type MockSpinner struct {
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.suffix = suffix
}

func repeatDigits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + i%10))
	}
	return b.String()
}

func TestDisplayResult(t *testing.T) {
	ui.InitTheme(false)

	tests := []struct {
		name      string
		value     string
		digits    uint64
		duration  time.Duration
		verbose   bool
		details   bool
		showValue bool
		contains  []string
	}{
		{
			name:      "Details only",
			value:     "31415",
			digits:    5,
			duration:  time.Millisecond,
			verbose:   false,
			details:   true,
			showValue: false,
			contains:  []string{"Result binary size:", "Detailed result analysis", "Calculation time", "Number of digits"},
		},
		{
			name:      "ShowValue Output",
			value:     "31415",
			digits:    5,
			duration:  time.Millisecond,
			verbose:   false,
			details:   false,
			showValue: true,
			contains:  []string{"Calculated value", "pi(", ") =", "31415"},
		},
		{
			name:      "Truncated Output",
			value:     repeatDigits(200),
			digits:    200,
			duration:  time.Millisecond,
			verbose:   false,
			details:   false,
			showValue: true,
			contains:  []string{"(truncated)", "Tip: use"},
		},
		{
			name:      "Verbose Output",
			value:     repeatDigits(200),
			digits:    200,
			duration:  time.Millisecond,
			verbose:   true,
			details:   false,
			showValue: true,
			contains:  []string{"pi(", ") ="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayResult(tt.value, tt.digits, tt.duration, tt.verbose, tt.details, tt.showValue, &buf)
			output := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
				}
			}
		})
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestColors(t *testing.T) {
	// Initialize with false (colors enabled if terminal supports)
	ui.InitTheme(false)

	// Just call them to ensure coverage - use ui package directly
	_ = ui.ColorReset()
	_ = ui.ColorRed()
	_ = ui.ColorGreen()
	_ = ui.ColorYellow()
	_ = ui.ColorBlue()
	_ = ui.ColorMagenta()
	_ = ui.ColorCyan()
	_ = ui.ColorBold()
	_ = ui.ColorUnderline()
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)

	progressChan := make(chan progress.ProgressUpdate)
	out := io.Discard // Discard output

	go func() {
		// Send some updates
		progressChan <- progress.ProgressUpdate{CalculatorIndex: 0, Value: 0.5}
		time.Sleep(10 * time.Millisecond)
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 1, out)
	wg.Wait()

	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
}

func TestDisplayProgress_ZeroCalculators(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
	// Should return immediately, coverage check
}

var _ = strconv.Itoa // keep strconv imported if repeatDigits ever changes
