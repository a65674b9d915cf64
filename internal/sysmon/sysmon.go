// Package sysmon provides process-level CPU and memory usage sampling.
package sysmon

import "runtime"

// Stats holds a single snapshot of process-level resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single CPU and memory snapshot from the Go runtime.
// CPUPercent is the fraction of time spent in garbage collection since
// process start (runtime.MemStats.GCCPUFraction); MemPercent is heap
// in-use as a fraction of heap reserved from the OS. Both are process-
// local proxies, not host-wide usage: this process has no visibility
// into other processes without an OS-specific or third-party sampler.
func Sample() Stats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	var memPercent float64
	if ms.HeapSys > 0 {
		memPercent = float64(ms.HeapInuse) / float64(ms.HeapSys) * 100
	}

	return Stats{
		CPUPercent: ms.GCCPUFraction * 100,
		MemPercent: memPercent,
	}
}
