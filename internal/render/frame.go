package render

import (
	"github.com/cespare/xxhash/v2"

	"github.com/agbru/fractal/internal/palette"
)

// RowRange is the half-open row interval [Start, End) owned by one chunk.
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r RowRange) Len() int { return r.End - r.Start }

// Partition splits rows [0, height) into workers contiguous bands of
// ceil(height/workers) rows; the last non-empty band is truncated to height.
// When height is not large enough to fill every band the trailing ranges are
// empty. They are returned anyway and contribute zero rows.
func Partition(height, workers int) []RowRange {
	if workers < 1 {
		workers = 1
	}
	if height < 0 {
		height = 0
	}
	chunk := (height + workers - 1) / workers
	ranges := make([]RowRange, workers)
	for k := range workers {
		start := min(k*chunk, height)
		ranges[k] = RowRange{Start: start, End: min(start+chunk, height)}
	}
	return ranges
}

// Chunk is the output of one worker: the colors of its rows in row-major order.
type Chunk struct {
	StartRow int
	Pixels   []palette.RGB
}

// Frame is a full image in row-major order: pixel (x, y) is at y*width+x.
type Frame []palette.RGB

// At returns pixel (x, y) of a frame of the given width.
func (f Frame) At(x, y, width int) palette.RGB {
	return f[y*width+x]
}

// Pack writes the frame into dst in the 0x00RRGGBB display format, reusing
// dst's storage when it is large enough.
func (f Frame) Pack(dst []uint32) []uint32 {
	if cap(dst) < len(f) {
		dst = make([]uint32, len(f))
	}
	dst = dst[:len(f)]
	for i, c := range f {
		dst[i] = c.Uint32()
	}
	return dst
}

// Equal reports whether two frames are pixel-identical.
func (f Frame) Equal(other Frame) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

// FirstDiff returns the index of the first differing pixel, or -1.
func (f Frame) FirstDiff(other Frame) int {
	n := min(len(f), len(other))
	for i := range n {
		if f[i] != other[i] {
			return i
		}
	}
	if len(f) != len(other) {
		return n
	}
	return -1
}

// Digest returns the xxHash64 of the frame's RGB bytes. Identical frames
// have identical digests, so reports can compare runs without keeping pixels.
func (f Frame) Digest() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 3*1024)
	for i, c := range f {
		buf = append(buf, c.R, c.G, c.B)
		if len(buf) == cap(buf) || i == len(f)-1 {
			_, _ = d.Write(buf)
			buf = buf[:0]
		}
	}
	return d.Sum64()
}
