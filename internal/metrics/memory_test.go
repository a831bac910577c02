package metrics

import "testing"

var sink []byte

func TestReadMemory_Since(t *testing.T) {
	t.Parallel()

	before := ReadMemory()
	if before.HeapAlloc == 0 || before.Mallocs == 0 {
		t.Fatalf("empty reading: %+v", before)
	}
	sink = make([]byte, 1<<20) // one 512x512 frame of uint32 pixels
	after := ReadMemory()

	delta := after.Since(before)
	if delta.Allocated < 1<<20 {
		t.Errorf("Allocated = %d, want at least 1 MiB", delta.Allocated)
	}
	if delta.Allocations == 0 {
		t.Error("Allocations should be > 0")
	}
	if delta.PeakHeap != max(before.HeapAlloc, after.HeapAlloc) {
		t.Errorf("PeakHeap = %d, want the larger reading", delta.PeakHeap)
	}
	if delta.GCPause < 0 {
		t.Errorf("GCPause = %v", delta.GCPause)
	}
}

func TestMemoryDelta_PerFrame(t *testing.T) {
	t.Parallel()
	tests := []struct {
		frames      int
		bytes, objs uint64
	}{
		{10, 100, 3},
		{3, 333, 10},
		{0, 0, 0},
		{-2, 0, 0},
	}
	d := MemoryDelta{Allocated: 1000, Allocations: 30}
	for _, tt := range tests {
		if b, a := d.PerFrame(tt.frames); b != tt.bytes || a != tt.objs {
			t.Errorf("PerFrame(%d) = %d, %d, want %d, %d", tt.frames, b, a, tt.bytes, tt.objs)
		}
	}
}
