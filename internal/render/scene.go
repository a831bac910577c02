package render

import (
	"context"

	"github.com/agbru/fractal/internal/palette"
	"github.com/agbru/fractal/internal/plane"
	"github.com/agbru/fractal/internal/rules"
)

// Scene holds everything a frame depends on apart from the worker count.
// It is a value: callers mutate their own copy between frames.
type Scene struct {
	Viewport plane.Viewport
	Rule     rules.Rule
	Palette  *palette.Palette
	Seed     plane.Complex
	Batched  bool
}

// Strategy names the coloring path the scene selects.
func (s Scene) Strategy() string {
	if s.Batched {
		return StrategyBatched
	}
	return StrategyScalar
}

// WithStrategy returns a copy of s using the batched path when batched is true.
func (s Scene) WithStrategy(batched bool) Scene {
	s.Batched = batched
	return s
}

// RenderScene renders s on the path it selects.
func (r *Renderer) RenderScene(ctx context.Context, s Scene) (Frame, error) {
	if s.Batched {
		return r.RenderBatch(ctx, s.Viewport, Batched(s.Rule, s.Palette, s.Seed))
	}
	return r.Render(ctx, s.Viewport, Scalar(s.Rule, s.Palette, s.Seed))
}
