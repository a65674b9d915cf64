// This file implements persistence of calibration results to a cached
// profile, so a one-time benchmark run can be reused across invocations.

package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// CurrentProfileVersion is bumped whenever CalibrationProfile's shape
// changes in a way that makes older cached profiles unreadable.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the file name used under the user's cache
// directory when no explicit -calibration-profile path is given.
const DefaultProfileFileName = "bigpi-calibration.json"

// CalibrationProfile is the cached result of a calibration run, keyed to
// the hardware and toolchain it was measured on.
type CalibrationProfile struct {
	ProfileVersion int    `json:"profile_version"`
	NumCPU         int    `json:"num_cpu"`
	GOARCH         string `json:"goarch"`
	GOOS           string `json:"goos"`
	GoVersion      string `json:"go_version"`
	WordSize       int    `json:"word_size"`

	CalibratedAt time.Time `json:"calibrated_at"`

	OptimalKaratsubaThreshold int `json:"optimal_karatsuba_threshold"`
	OptimalSSAThreshold       int `json:"optimal_ssa_threshold"`
	OptimalConcurrencyDepth   int `json:"optimal_concurrency_depth"`

	CalibrationDigits uint64 `json:"calibration_digits"`
	CalibrationTime   string `json:"calibration_time"`
}

// NewProfile returns a profile stamped with the current hardware and
// toolchain, with no calibrated thresholds yet set.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CalibratedAt:   time.Now(),
	}
}

// IsValid reports whether p has the current profile version and was
// calibrated on hardware (CPU count, GOARCH, GOOS, word size) matching
// the current process. GoVersion is recorded but not compared. A nil
// profile is never valid.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.GOOS == runtime.GOOS &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether p is older than maxAge. A nil profile is
// always stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String renders a short human-readable summary of the profile.
func (p *CalibrationProfile) String() string {
	if p == nil {
		return "<nil calibration profile>"
	}
	return fmt.Sprintf(
		"calibration profile: %d CPU(s), %s/%s, go%s, calibrated %s ago\n"+
			"  karatsuba threshold=%d bits, ssa threshold=%d bits, concurrency depth=%d\n"+
			"  measured on %d digits in %s",
		p.NumCPU, p.GOOS, p.GOARCH, p.GoVersion, time.Since(p.CalibratedAt).Round(time.Second),
		p.OptimalKaratsubaThreshold, p.OptimalSSAThreshold, p.OptimalConcurrencyDepth,
		p.CalibrationDigits, p.CalibrationTime,
	)
}

// SaveProfile writes p as indented JSON to path, creating parent
// directories as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("calibration: create profile directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("calibration: marshal profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("calibration: write profile: %w", err)
	}
	return nil
}

// loadProfile reads and unmarshals a CalibrationProfile from path.
func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("calibration: read profile: %w", err)
	}
	var profile CalibrationProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("calibration: unmarshal profile: %w", err)
	}
	return &profile, nil
}

// LoadOrCreateProfile loads a cached profile from path if present,
// reporting true for loaded. Otherwise it returns a fresh, uncalibrated
// profile stamped for the current hardware.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	if p, err := loadProfile(path); err == nil {
		return p, true
	}
	return NewProfile(), false
}

// GetDefaultProfilePath returns the path used when no explicit
// -calibration-profile flag is given: DefaultProfileFileName under the
// user's cache directory, falling back to the current directory if the
// cache directory cannot be determined.
func GetDefaultProfilePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(dir, "bigpi", DefaultProfileFileName)
}
