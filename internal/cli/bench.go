package cli

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/agbru/fractal/internal/format"
	"github.com/agbru/fractal/internal/metrics"
	"github.com/agbru/fractal/internal/ui"
)

// BenchReport summarizes a run of identical frames.
type BenchReport struct {
	Strategy  string
	Workers   int
	Pixels    int // per frame
	Durations []time.Duration
	Memory    metrics.MemoryDelta
	Digest    uint64
}

// Frames returns the number of frames measured.
func (r BenchReport) Frames() int { return len(r.Durations) }

// Min returns the fastest frame time.
func (r BenchReport) Min() time.Duration {
	if len(r.Durations) == 0 {
		return 0
	}
	return slices.Min(r.Durations)
}

// Max returns the slowest frame time.
func (r BenchReport) Max() time.Duration {
	if len(r.Durations) == 0 {
		return 0
	}
	return slices.Max(r.Durations)
}

// Mean returns the average frame time.
func (r BenchReport) Mean() time.Duration {
	if len(r.Durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range r.Durations {
		total += d
	}
	return total / time.Duration(len(r.Durations))
}

// Throughput returns pixels per second at the mean frame time.
func (r BenchReport) Throughput() float64 {
	mean := r.Mean()
	if mean <= 0 {
		return 0
	}
	return float64(r.Pixels) / mean.Seconds()
}

// PrintBenchReport writes the frame time table and the memory figures.
func PrintBenchReport(out io.Writer, r BenchReport) {
	fmt.Fprintf(out, "\n--- Benchmark ---\n")
	fmt.Fprintf(out, "Strategy:    %s%s%s with %d workers\n", ui.ColorBlue(), r.Strategy, ui.ColorReset(), r.Workers)
	fmt.Fprintf(out, "Frames:      %d of %s pixels\n", r.Frames(), format.Count(r.Pixels))
	fmt.Fprintf(out, "Frame time:  min %s%s%s  mean %s%s%s  max %s%s%s\n",
		ui.ColorGreen(), format.FormatFrameTime(r.Min()), ui.ColorReset(),
		ui.ColorYellow(), format.FormatFrameTime(r.Mean()), ui.ColorReset(),
		ui.ColorRed(), format.FormatFrameTime(r.Max()), ui.ColorReset())
	fmt.Fprintf(out, "FPS:         %s (mean)\n", metrics.FormatFPS(r.Mean()))
	fmt.Fprintf(out, "Throughput:  %s\n", format.Rate(r.Throughput(), "px"))
	fmt.Fprintf(out, "Digest:      %016x\n", r.Digest)
	DisplayMemoryStats(r.Memory, r.Frames(), out)
}
