// Package progress provides observer-pattern progress reporting shared by
// the orchestration, CLI, and TUI layers. It is deliberately algorithm
// agnostic: callers report a fraction in [0, 1] per tracked calculator
// index, and observers decide how to surface that (a channel, a log line,
// or nothing at all).
package progress

import (
	"sync"

	"github.com/agbru/bigpi/internal/logging"
)

// ProgressUpdate is a single progress report from one tracked calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies which concurrently running calculation
	// this update belongs to.
	CalculatorIndex int
	// Value is the completed fraction of work, in [0, 1].
	Value float64
}

// ProgressCallback reports a progress fraction for a calculator whose
// index was fixed at callback-creation time (see ProgressSubject.Freeze).
type ProgressCallback func(value float64)

// ProgressObserver receives progress notifications. Update must be safe
// for concurrent use, since a ProgressSubject may be shared by multiple
// calculators running in separate goroutines.
type ProgressObserver interface {
	Update(calcIndex int, value float64)
}

// ProgressSubject is the observable side of the observer pattern: any
// number of observers may Register, and any number of goroutines may
// notify them concurrently.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject returns an empty subject.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Safe to call concurrently with Notify/Freeze.
func (s *ProgressSubject) Register(o ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Notify reports value for calcIndex to every observer registered at the
// time of the call.
func (s *ProgressSubject) Notify(calcIndex int, value float64) {
	s.mu.RLock()
	observers := s.observers
	s.mu.RUnlock()
	for _, o := range observers {
		o.Update(calcIndex, value)
	}
}

// Freeze snapshots the currently registered observers and returns a
// ProgressCallback bound to calcIndex that notifies exactly that
// snapshot, regardless of observers registered afterward. Hot loops use
// this to avoid taking the subject's lock on every progress report.
func (s *ProgressSubject) Freeze(calcIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(value float64) {
		for _, o := range snapshot {
			o.Update(calcIndex, value)
		}
	}
}

// ChannelObserver forwards every update to a channel as a ProgressUpdate.
// Sends are non-blocking: an update is dropped rather than stalling the
// calculation if the channel's buffer is full.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver wraps ch.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update implements ProgressObserver.
func (c *ChannelObserver) Update(calcIndex int, value float64) {
	select {
	case c.ch <- ProgressUpdate{CalculatorIndex: calcIndex, Value: value}:
	default:
	}
}

// LoggingObserver logs every update through a logging.Logger, at Debug
// level, tagged with the calculator index. Intended for -verbose runs
// rather than interactive display.
type LoggingObserver struct {
	logger logging.Logger
}

// NewLoggingObserver wraps logger.
func NewLoggingObserver(logger logging.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// Update implements ProgressObserver.
func (l *LoggingObserver) Update(calcIndex int, value float64) {
	l.logger.Debug("progress",
		logging.Int("calculator_index", calcIndex),
		logging.Float64("progress", value),
	)
}

// NoOpObserver discards every update. Useful for quiet mode or tests that
// need a ProgressObserver without caring about its output.
type NoOpObserver struct{}

// NewNoOpObserver returns a NoOpObserver.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Update implements ProgressObserver by doing nothing.
func (NoOpObserver) Update(int, float64) {}

// CalcTotalWork returns the total number of leaf steps an O(log n)
// binary-splitting or doubling algorithm performs to reach depth levels,
// for use as the denominator when turning a completed-step count into a
// progress fraction.
func CalcTotalWork(levels uint64) uint64 {
	if levels == 0 {
		return 1
	}
	return levels
}

// PrecomputePowers4 precomputes 4^0 .. 4^(levels-1), which several
// doubling-style algorithms use to weight each recursion level's share
// of the total work (each level down does roughly 4x the work of the
// level above it in a naive doubling scheme, before algorithmic
// improvements are applied).
func PrecomputePowers4(levels uint64) []uint64 {
	powers := make([]uint64, levels)
	p := uint64(1)
	for i := range powers {
		powers[i] = p
		p *= 4
	}
	return powers
}

// ReportStepProgress reports (step+1)/totalSteps through cb, guarding
// against a zero totalSteps and against nil cb so call sites never need
// to branch on whether a caller asked for progress reporting.
func ReportStepProgress(cb ProgressCallback, step, totalSteps uint64) {
	if cb == nil || totalSteps == 0 {
		return
	}
	cb(float64(step+1) / float64(totalSteps))
}
