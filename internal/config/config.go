// Package config resolves run configuration from CLI flags, environment
// variables, a cached calibration profile, and adaptive hardware
// estimation, in that priority order.
package config

import (
	"flag"
	"runtime"
	"time"
)

// EnvPrefix is prepended to every environment variable this package reads.
const EnvPrefix = "BIGPI_"

// Mode selects which operation cmd/bigpi performs.
type Mode string

const (
	ModePi        Mode = "pi"
	ModeCompare   Mode = "compare"
	ModeCalibrate Mode = "calibrate"
	ModeTUI       Mode = "tui"
	ModeServer    Mode = "server"
)

// AppConfig holds every resolved run-time setting.
type AppConfig struct {
	Mode Mode

	// Digits is the number of decimal digits of pi to compute in ModePi.
	Digits uint64

	// Algo forces a multiplication algorithm ("auto", "schoolbook",
	// "karatsuba", "ssa") instead of size-based dispatch.
	Algo string

	// Threshold is the schoolbook/Karatsuba crossover, in operand bits,
	// as resolved and reported; 0 means resolve adaptively. It is not
	// passed to the multiplier, whose schoolbook/Karatsuba cut is fixed
	// (see mul.Thresholds).
	Threshold int
	// SSAThreshold is the Karatsuba/SSA crossover, in operand bits. 0
	// means resolve adaptively.
	SSAThreshold int

	// Concurrency bounds the binary-splitting recursion's goroutine
	// fan-out depth.
	Concurrency int

	Timeout            time.Duration
	OutputFile         string
	CalibrationProfile string
	MemoryLimit        string
	Completion         string

	// ListenAddr is the bind address used by ModeServer, e.g. ":8080".
	ListenAddr string

	Verbose       bool
	Details       bool
	Quiet         bool
	Calibrate     bool
	AutoCalibrate bool
	ShowValue     bool
	TUI           bool
}

// DefaultConfig returns the configuration used when no flags, env vars,
// or calibration profile override anything.
func DefaultConfig() AppConfig {
	return AppConfig{
		Mode:        ModePi,
		Digits:      1000,
		Algo:        "auto",
		Timeout:     5 * time.Minute,
		Concurrency: runtime.NumCPU(),
		ListenAddr:  ":8080",
	}
}

// ParseFlags resolves an AppConfig from args (typically os.Args[1:]),
// applying environment variable overrides for any flag left at its
// default, then adaptive threshold estimation for any threshold still
// unset.
func ParseFlags(args []string) (AppConfig, error) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("bigpi", flag.ContinueOnError)

	mode := string(cfg.Mode)
	fs.StringVar(&mode, "mode", mode, "operation mode: pi, compare, calibrate, tui, server")
	fs.StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "bind address for -mode server")
	fs.Uint64Var(&cfg.Digits, "n", cfg.Digits, "number of decimal digits of pi to compute")
	fs.StringVar(&cfg.Algo, "algo", cfg.Algo, "force multiplication algorithm: auto, schoolbook, karatsuba, ssa")
	fs.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "schoolbook/Karatsuba crossover in bits (0 = adaptive)")
	fs.IntVar(&cfg.SSAThreshold, "ssa-threshold", cfg.SSAThreshold, "Karatsuba/SSA crossover in bits (0 = adaptive)")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "max goroutine fan-out depth for binary splitting")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall computation deadline")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "write result to a file instead of stdout")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "alias for -output")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", cfg.CalibrationProfile, "path to a cached calibration profile")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", cfg.MemoryLimit, "soft memory ceiling, e.g. \"4GiB\"")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "alias for -verbose")
	fs.BoolVar(&cfg.Details, "details", cfg.Details, "print per-stage timing details")
	fs.BoolVar(&cfg.Details, "d", cfg.Details, "alias for -details")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "suppress non-essential output")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "alias for -quiet")
	fs.BoolVar(&cfg.Calibrate, "calibrate", cfg.Calibrate, "run threshold calibration and write a profile")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", cfg.AutoCalibrate, "calibrate automatically if no cached profile exists")
	fs.BoolVar(&cfg.ShowValue, "calculate", cfg.ShowValue, "print the computed value in addition to the summary")
	fs.BoolVar(&cfg.ShowValue, "c", cfg.ShowValue, "alias for -calculate")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "launch the interactive dashboard")
	fs.StringVar(&cfg.Completion, "completion", cfg.Completion, "print a shell completion script and exit: bash, zsh, fish, powershell")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	cfg.Mode = Mode(mode)

	applyEnvOverrides(&cfg, fs)
	cfg = ApplyAdaptiveThresholds(cfg)

	return cfg, nil
}
