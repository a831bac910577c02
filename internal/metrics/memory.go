package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot is the subset of runtime.MemStats a bench run reports on.
type MemorySnapshot struct {
	HeapAlloc  uint64
	TotalAlloc uint64
	Mallocs    uint64
	NumGC      uint32
	GCPause    time.Duration
}

// ReadMemory samples the runtime allocator. It stops the world briefly, so
// bench runs call it only before the first and after the last frame.
func ReadMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Mallocs:    m.Mallocs,
		NumGC:      m.NumGC,
		GCPause:    time.Duration(m.PauseTotalNs),
	}
}

// MemoryDelta is what happened to the heap between two snapshots.
type MemoryDelta struct {
	Allocated   uint64
	Allocations uint64
	GCCycles    uint32
	GCPause     time.Duration
	PeakHeap    uint64 // larger of the two live-heap readings
}

// Since returns the change from before to s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		Allocated:   s.TotalAlloc - before.TotalAlloc,
		Allocations: s.Mallocs - before.Mallocs,
		GCCycles:    s.NumGC - before.NumGC,
		GCPause:     s.GCPause - before.GCPause,
		PeakHeap:    max(s.HeapAlloc, before.HeapAlloc),
	}
}

// PerFrame spreads the allocation totals over frames.
func (d MemoryDelta) PerFrame(frames int) (bytes, allocs uint64) {
	if frames <= 0 {
		return 0, 0
	}
	n := uint64(frames)
	return d.Allocated / n, d.Allocations / n
}
