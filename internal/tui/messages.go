package tui

import (
	"time"

	"github.com/agbru/bigpi/internal/metrics"
	"github.com/agbru/bigpi/internal/orchestration"
)

// ProgressMsg reports one aggregated progress sample from a running
// calculation.
type ProgressMsg struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel has been fully
// drained.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the outcome of every calculator in a
// comparison run.
type ComparisonResultsMsg struct {
	Results []orchestration.CalculationResult
}

// FinalResultMsg carries the chosen result of a calculation, along
// with the display options it should be rendered with.
type FinalResultMsg struct {
	Result    orchestration.CalculationResult
	N         uint64
	Verbose   bool
	Details   bool
	ShowValue bool
}

// IndicatorsMsg carries post-calculation throughput indicators,
// computed off the UI thread.
type IndicatorsMsg struct {
	Indicators *metrics.Indicators
}

// ErrorMsg reports a calculation failure.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives the periodic sampling of memory and system stats.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory snapshot.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a process-level CPU/memory utilization snapshot.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// CalculationCompleteMsg signals that a calculation run (single or
// comparison) has finished.
type CalculationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the run's context was canceled or
// hit its deadline.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
