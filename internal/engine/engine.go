// Package engine provides the Calculator abstraction orchestration uses
// to run and compare the different ways this repository can compute the
// decimal digits of π: automatic size-based algorithm dispatch, or one
// of the three multiplication kernels forced for the binary-splitting
// products.
package engine

import (
	"context"
	"sort"

	"github.com/agbru/bigpi/internal/bignum/mul"
	"github.com/agbru/bigpi/internal/config"
	apperrors "github.com/agbru/bigpi/internal/errors"
	"github.com/agbru/bigpi/internal/pi"
	"github.com/agbru/bigpi/internal/progress"
)

// Options configures a single Calculate call.
type Options struct {
	// Thresholds controls size-based algorithm dispatch. Ignored by any
	// Calculator that forces a specific algorithm.
	Thresholds mul.Thresholds
	// MaxParallelDepth bounds the binary-splitting recursion's goroutine
	// fan-out depth.
	MaxParallelDepth int
}

// Calculator computes π to a given number of decimal digits using one
// particular strategy, optionally reporting progress on progressChan.
type Calculator interface {
	// Calculate computes digits decimal digits of π. index identifies
	// this calculator among any others running concurrently, for
	// progress attribution; progressChan may be nil, in which case no
	// progress is reported.
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, digits uint64, opts Options) (string, error)
	// Name is a human-readable label for display and comparison tables.
	Name() string
}

// piCalculator adapts internal/pi's ComputePi to the Calculator
// interface, optionally forcing a specific multiplication algorithm.
type piCalculator struct {
	name string
	algo mul.Algorithm // "" selects size-based dispatch
}

// NewCalculator returns a Calculator that computes π using algo for
// every multiplication, or size-based dispatch if algo is empty.
func NewCalculator(algo mul.Algorithm, name string) Calculator {
	return &piCalculator{name: name, algo: algo}
}

// Name implements Calculator.
func (c *piCalculator) Name() string { return c.name }

// Calculate implements Calculator.
func (c *piCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, index int, digits uint64, opts Options) (string, error) {
	piOpts := pi.Options{
		Thresholds:       opts.Thresholds,
		ForcedAlgorithm:  c.algo,
		MaxParallelDepth: opts.MaxParallelDepth,
	}
	if progressChan != nil {
		subject := progress.NewProgressSubject()
		subject.Register(progress.NewChannelObserver(progressChan))
		piOpts.Progress = subject.Freeze(index)
	}
	return pi.ComputePi(ctx, digits, piOpts)
}

// OptionsFromConfig builds engine Options from a resolved AppConfig,
// mapping SSAThreshold onto mul.Thresholds and Concurrency onto the
// binary-splitting fan-out depth. cfg.Threshold is not carried over,
// since mul.Thresholds has no schoolbook/Karatsuba field.
func OptionsFromConfig(cfg config.AppConfig) Options {
	return Options{
		Thresholds:       mul.Thresholds{SSABitThreshold: uint64(cfg.SSAThreshold)},
		MaxParallelDepth: cfg.Concurrency,
	}
}

// CalculatorFactory resolves a Calculator by name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)
	// List returns every registered name, sorted.
	List() []string
	// GetAll returns every registered calculator, in the same order as
	// List.
	GetAll() []Calculator
}

// DefaultFactory registers one Calculator per algorithm this repository
// implements, plus "auto" for size-based dispatch.
type DefaultFactory struct {
	calculators map[string]Calculator
}

// NewDefaultFactory returns a factory pre-registered with "auto",
// "schoolbook", "karatsuba", and "ssa".
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{
		calculators: map[string]Calculator{
			"auto":       NewCalculator("", "Auto (size-based dispatch)"),
			"schoolbook": NewCalculator(mul.Schoolbook, "Schoolbook"),
			"karatsuba":  NewCalculator(mul.Karatsuba, "Karatsuba"),
			"ssa":        NewCalculator(mul.SSA, "SSA (Schönhage-Strassen)"),
		},
	}
}

// Get implements CalculatorFactory.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	c, ok := f.calculators[name]
	if !ok {
		return nil, apperrors.NewDomainError("engine.DefaultFactory.Get", "unknown algorithm %q, want one of %s", name, joinSorted(f.calculators))
	}
	return c, nil
}

// List implements CalculatorFactory, returning names in sorted order for
// reproducible comparison-table ordering.
func (f *DefaultFactory) List() []string {
	names := make([]string, 0, len(f.calculators))
	for name := range f.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll implements CalculatorFactory.
func (f *DefaultFactory) GetAll() []Calculator {
	names := f.List()
	all := make([]Calculator, 0, len(names))
	for _, name := range names {
		all = append(all, f.calculators[name])
	}
	return all
}

func joinSorted(m map[string]Calculator) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
