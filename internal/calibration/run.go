// This file implements the calibration driver: benchmarking the
// size-dispatching calculator across candidate thresholds and
// concurrency depths, then persisting the winners to a cached profile.

package calibration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/bigpi/internal/bignum/mul"
	"github.com/agbru/bigpi/internal/config"
	"github.com/agbru/bigpi/internal/engine"
	apperrors "github.com/agbru/bigpi/internal/errors"
	"github.com/agbru/bigpi/internal/progress"
	"github.com/agbru/bigpi/internal/ui"
)

// calibrationResult holds the measured outcome of one calibration trial
// against a candidate threshold.
type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// CalibrationDigits is the digit count a full calibration run computes
// to: large enough that the Karatsuba/SSA crossover is observable,
// small enough that a full sweep finishes in a few seconds.
const CalibrationDigits uint64 = 200_000

// QuickCalibrationDigits is the digit count auto-calibration at startup
// uses, trading precision for a sweep that doesn't noticeably delay the
// requested computation.
const QuickCalibrationDigits uint64 = 50_000

// ProgressDisplayFunc matches cli.DisplayProgress's signature. Calibration
// takes it as a parameter instead of importing the cli package directly,
// since cli in turn depends on packages that sit beside calibration.
type ProgressDisplayFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)

// autoCalculatorName is the name NewDefaultFactory registers its
// size-dispatching Calculator under. Only this calculator's behavior
// depends on threshold configuration — a forced-algorithm calculator
// ignores Options.Thresholds entirely.
const autoCalculatorName = "Auto (size-based dispatch)"

// findAutoCalculator returns the size-dispatching calculator among
// calculators, falling back to the first entry if none matches by name.
func findAutoCalculator(calculators []engine.Calculator) engine.Calculator {
	for _, c := range calculators {
		if c.Name() == autoCalculatorName {
			return c
		}
	}
	if len(calculators) > 0 {
		return calculators[0]
	}
	return nil
}

// runTrial computes digits decimal digits of pi with calc under opts,
// driving display for the duration of the call.
func runTrial(ctx context.Context, calc engine.Calculator, digits uint64, opts engine.Options, display ProgressDisplayFunc, out io.Writer) (time.Duration, error) {
	progressChan := make(chan progress.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)
	go display(&wg, progressChan, 1, out)

	start := time.Now()
	_, err := calc.Calculate(ctx, progressChan, 0, digits, opts)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()
	return duration, err
}

// sweepSSAThresholds benchmarks calc at digits across candidates,
// returning every trial's result alongside the fastest threshold.
func sweepSSAThresholds(ctx context.Context, calc engine.Calculator, digits uint64, candidates []int, display ProgressDisplayFunc, out io.Writer) ([]calibrationResult, int) {
	results := make([]calibrationResult, 0, len(candidates))
	best := candidates[0]
	var bestDuration time.Duration
	found := false
	for _, threshold := range candidates {
		opts := engine.Options{Thresholds: mul.Thresholds{SSABitThreshold: uint64(threshold)}}
		duration, err := runTrial(ctx, calc, digits, opts, display, out)
		results = append(results, calibrationResult{Threshold: threshold, Duration: duration, Err: err})
		if err == nil && (!found || duration < bestDuration) {
			best, bestDuration, found = threshold, duration, true
		}
	}
	return results, best
}

// sweepConcurrencyDepths benchmarks calc at digits across candidate
// fan-out depths with ssaThreshold fixed, returning the fastest depth.
func sweepConcurrencyDepths(ctx context.Context, calc engine.Calculator, digits uint64, ssaThreshold int, depths []int, display ProgressDisplayFunc, out io.Writer) (int, time.Duration) {
	best := depths[0]
	var bestDuration time.Duration
	found := false
	for _, depth := range depths {
		opts := engine.Options{
			Thresholds:       mul.Thresholds{SSABitThreshold: uint64(ssaThreshold)},
			MaxParallelDepth: depth,
		}
		duration, err := runTrial(ctx, calc, digits, opts, display, out)
		if err != nil {
			continue
		}
		if !found || duration < bestDuration {
			best, bestDuration, found = depth, duration, true
		}
	}
	return best, bestDuration
}

// RunCalibration benchmarks the Karatsuba/SSA crossover and the
// concurrency fan-out depth against the size-dispatching calculator,
// prints a results table, persists the winning thresholds to the
// default profile path, and returns the process exit code.
func RunCalibration(ctx context.Context, out io.Writer, calculators []engine.Calculator, display ProgressDisplayFunc, colors apperrors.ColorProvider) int {
	calc := findAutoCalculator(calculators)
	if calc == nil {
		fmt.Fprintln(out, "calibration: no calculator available")
		return apperrors.ExitErrorConfig
	}

	fmt.Fprintf(out, "%sCalibrating%s against %s%d%s digits...\n",
		ui.ColorGreen(), ui.ColorReset(), ui.ColorCyan(), CalibrationDigits, ui.ColorReset())

	ssaResults, bestSSA := sweepSSAThresholds(ctx, calc, CalibrationDigits, GenerateSSAThresholds(), display, out)
	printCalibrationResults(out, ssaResults, bestSSA)

	bestDepth, bestDuration := sweepConcurrencyDepths(ctx, calc, CalibrationDigits, bestSSA, GenerateConcurrencyDepths(), display, io.Discard)

	profile := NewProfile()
	profile.OptimalKaratsubaThreshold = EstimateOptimalKaratsubaThreshold()
	profile.OptimalSSAThreshold = bestSSA
	profile.OptimalConcurrencyDepth = bestDepth
	profile.CalibrationDigits = CalibrationDigits
	profile.CalibrationTime = bestDuration.String()

	path := GetDefaultProfilePath()
	if err := profile.SaveProfile(path); err != nil {
		fmt.Fprintf(out, "%swarning:%s could not save calibration profile: %v\n", ui.ColorYellow(), ui.ColorReset(), err)
	} else {
		fmt.Fprintf(out, "\nSaved calibration profile to %s%s%s\n", ui.ColorCyan(), path, ui.ColorReset())
	}

	fmt.Fprintf(out, "\nOptimal: ssa=%s%d%s bits, concurrency=%s%d%s\n",
		ui.ColorGreen(), bestSSA, ui.ColorReset(), ui.ColorGreen(), bestDepth, ui.ColorReset())

	return apperrors.ExitSuccess
}

// AutoCalibrate runs a faster, smaller calibration sweep and applies
// its results to cfg's SSAThreshold and Concurrency where either is
// left at its zero (unconfigured) value; cfg.Threshold is not touched.
// It returns the updated configuration and whether it actually ran a
// calibration (false if SSAThreshold and Concurrency were both set).
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, calculators []engine.Calculator) (config.AppConfig, bool) {
	if cfg.SSAThreshold != 0 && cfg.Concurrency != 0 {
		return cfg, false
	}

	calc := findAutoCalculator(calculators)
	if calc == nil {
		return cfg, false
	}

	_, bestSSA := sweepSSAThresholds(ctx, calc, QuickCalibrationDigits, GenerateQuickSSAThresholds(), discardProgress, io.Discard)
	bestDepth, _ := sweepConcurrencyDepths(ctx, calc, QuickCalibrationDigits, bestSSA, GenerateQuickConcurrencyDepths(), discardProgress, io.Discard)

	if cfg.SSAThreshold == 0 {
		cfg.SSAThreshold = bestSSA
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = bestDepth
	}

	if !cfg.Quiet {
		printCalibrationOutput(cfg, out)
	}

	return cfg, true
}

// discardProgress is the ProgressDisplayFunc used by quick calibration
// sweeps, which run too briefly to be worth a spinner.
func discardProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// LoadCachedCalibration loads a calibration profile from path (or the
// default path if empty), and, if it is valid for the current hardware
// and not yet stale, applies its thresholds to any field of cfg still
// at its zero value. It reports whether a usable profile was applied.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	if path == "" {
		path = GetDefaultProfilePath()
	}

	profile, loaded := LoadOrCreateProfile(path)
	if !loaded || !profile.IsValid() || profile.IsStale(30*24*time.Hour) {
		return cfg, false
	}

	if cfg.Threshold == 0 {
		cfg.Threshold = profile.OptimalKaratsubaThreshold
	}
	if cfg.SSAThreshold == 0 {
		cfg.SSAThreshold = profile.OptimalSSAThreshold
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = profile.OptimalConcurrencyDepth
	}

	return cfg, true
}
