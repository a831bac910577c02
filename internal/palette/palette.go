package palette

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/simd"
)

// Size is the number of entries in a palette, one per iteration count.
const Size = 256

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Gray returns the gray level v.
func Gray(v uint8) RGB { return RGB{R: v, G: v, B: v} }

// Uint32 packs the color as 0x00RRGGBB, the display buffer format.
func (c RGB) Uint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, apperrors.NewConfigError("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, apperrors.NewConfigError("invalid color %q: %v", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Palette maps an iteration count to a color. It is immutable once built
// and safe for concurrent use.
type Palette struct {
	colors [Size]RGB
	stops  []RGB
}

// FromGradient builds a palette by linear interpolation between 2 to 256
// gradient stops. The 256 entries are split into len(stops)-1 equal ranges;
// entries past the last full range stay on the final segment.
// Entry 0 is the first stop and entry 255 the last.
func FromGradient(stops []RGB) (*Palette, error) {
	if len(stops) < 2 || len(stops) > Size {
		return nil, apperrors.NewConfigError("color gradient must specify between 2 and %d colors, got %d", Size, len(stops))
	}

	p := &Palette{stops: append([]RGB(nil), stops...)}
	rangeCount := len(stops) - 1
	rangeLen := Size / rangeCount

	for i := range Size {
		r := min(i/rangeLen, rangeCount-1)
		alpha := float64(i-r*rangeLen) / float64(rangeLen)
		p.colors[i] = interpolate(stops[r], stops[r+1], alpha)
	}
	p.colors[Size-1] = stops[len(stops)-1]
	return p, nil
}

func interpolate(start, end RGB, alpha float64) RGB {
	if alpha >= 1 {
		return end
	}
	return RGB{
		R: lerp(start.R, end.R, alpha),
		G: lerp(start.G, end.G, alpha),
		B: lerp(start.B, end.B, alpha),
	}
}

func lerp(start, end uint8, alpha float64) uint8 {
	s, e := float64(start), float64(end)
	return uint8(s + (e-s)*alpha)
}

// ColorOf returns the color for an iteration count.
func (p *Palette) ColorOf(count uint8) RGB {
	return p.colors[count]
}

// ColorBatch colors a batch of counts.
func (p *Palette) ColorBatch(counts [simd.Lanes]uint8) [simd.Lanes]RGB {
	var out [simd.Lanes]RGB
	for i, c := range counts {
		out[i] = p.colors[c]
	}
	return out
}

// Stops returns a copy of the gradient stops.
func (p *Palette) Stops() []RGB {
	return append([]RGB(nil), p.stops...)
}
