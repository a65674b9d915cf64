package engine

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/agbru/bigpi/internal/logging"
)

// GCMode controls the garbage collector behavior during a computation.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCAutoThreshold is the minimum digit count at which GCModeAuto disables
// the collector. Below it, a computation's heap churn is small enough
// that letting the collector run as usual is cheaper than a soft memory
// limit's bookkeeping.
const GCAutoThreshold uint64 = 1_000_000

// GCController disables Go's garbage collector for the duration of a
// large computation and restores it afterward, trading peak memory (a
// soft limit bounds it) for the CPU time GC pauses would otherwise cost
// mid-computation.
type GCController struct {
	mode              GCMode
	originalGCPercent int
	active            bool
	logger            logging.Logger
	startStats        runtime.MemStats
	endStats          runtime.MemStats
}

// GCStats holds GC statistics for a computation.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController creates a GC controller for the given mode and digit
// count.
func NewGCController(mode string, digits uint64) *GCController {
	gc := &GCController{mode: GCMode(mode), logger: logging.NewDefaultLogger()}
	switch gc.mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = digits >= GCAutoThreshold
	default:
		gc.active = false
	}
	return gc
}

// SetLogger configures the logger for GC control events.
func (gc *GCController) SetLogger(l logging.Logger) {
	gc.logger = l
}

// Begin disables GC if the controller is active, setting a soft memory
// limit at 3x current usage as a safety net against unbounded growth.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.startStats)
	gc.originalGCPercent = debug.SetGCPercent(-1)
	if gc.startStats.Sys > 0 {
		if limit := int64(float64(gc.startStats.Sys) * 3); limit > 0 {
			debug.SetMemoryLimit(limit)
		}
	}
	gc.logger.Debug("gc disabled",
		logging.String("mode", string(gc.mode)),
		logging.Uint64("heap_alloc_bytes", gc.startStats.HeapAlloc),
	)
}

// End restores original GC settings and triggers a collection.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.endStats)
	debug.SetGCPercent(gc.originalGCPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	gc.logger.Debug("gc re-enabled",
		logging.String("mode", string(gc.mode)),
		logging.Uint64("heap_alloc_bytes", gc.endStats.HeapAlloc),
		logging.Uint64("total_alloc_bytes", gc.endStats.TotalAlloc-gc.startStats.TotalAlloc),
		logging.Uint64("gc_cycles", uint64(gc.endStats.NumGC-gc.startStats.NumGC)),
	)
}

// Stats returns GC statistics accumulated between Begin and End.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		HeapAlloc:    gc.endStats.HeapAlloc,
		TotalAlloc:   gc.endStats.TotalAlloc - gc.startStats.TotalAlloc,
		NumGC:        gc.endStats.NumGC - gc.startStats.NumGC,
		PauseTotalNs: gc.endStats.PauseTotalNs - gc.startStats.PauseTotalNs,
	}
}
