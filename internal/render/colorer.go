package render

import (
	"github.com/agbru/fractal/internal/palette"
	"github.com/agbru/fractal/internal/plane"
	"github.com/agbru/fractal/internal/rules"
	"github.com/agbru/fractal/internal/simd"
)

// Colorer maps a plane point to a pixel color. Implementations must be pure
// and safe for concurrent use: the renderer calls them from every worker.
type Colorer interface {
	Color(z plane.Complex) palette.RGB
}

// BatchColorer colors simd.Lanes plane points at once.
// Lane i of the result must equal coloring lane i of the input on its own.
type BatchColorer interface {
	ColorBatch(z simd.Complex) [simd.Lanes]palette.RGB
}

// ColorFunc adapts a plain function to Colorer.
type ColorFunc func(z plane.Complex) palette.RGB

// Color calls f(z).
func (f ColorFunc) Color(z plane.Complex) palette.RGB { return f(z) }

// BatchColorFunc adapts a plain function to BatchColorer.
type BatchColorFunc func(z simd.Complex) [simd.Lanes]palette.RGB

// ColorBatch calls f(z).
func (f BatchColorFunc) ColorBatch(z simd.Complex) [simd.Lanes]palette.RGB { return f(z) }

// Scalar composes a rule, a palette and a seed into a per-pixel Colorer.
func Scalar(rule rules.Rule, pal *palette.Palette, seed plane.Complex) Colorer {
	return ColorFunc(func(z plane.Complex) palette.RGB {
		return pal.ColorOf(rule.Count(z, seed))
	})
}

// Batched composes a rule, a palette and a seed into a BatchColorer.
func Batched(rule rules.Rule, pal *palette.Palette, seed plane.Complex) BatchColorer {
	return BatchColorFunc(func(z simd.Complex) [simd.Lanes]palette.RGB {
		return pal.ColorBatch(rule.CountBatch(z, seed))
	})
}

// Lanewise lifts a scalar Colorer to a BatchColorer by coloring each lane
// separately.
func Lanewise(c Colorer) BatchColorer {
	return BatchColorFunc(func(z simd.Complex) [simd.Lanes]palette.RGB {
		var out [simd.Lanes]palette.RGB
		for i := range simd.Lanes {
			out[i] = c.Color(z.Lane(i))
		}
		return out
	})
}
