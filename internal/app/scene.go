package app

import (
	"github.com/agbru/fractal/internal/config"
	"github.com/agbru/fractal/internal/palette"
	"github.com/agbru/fractal/internal/plane"
	"github.com/agbru/fractal/internal/render"
	"github.com/agbru/fractal/internal/rules"
)

// BuildScene resolves the rule, polynomial, palette and viewport named by
// cfg into a render.Scene. Unknown names come back as config errors.
func BuildScene(cfg config.AppConfig, palettes *palette.Registry) (render.Scene, error) {
	kind, err := rules.ParseKind(cfg.Rule)
	if err != nil {
		return render.Scene{}, err
	}
	poly, err := rules.ParsePolynomial(cfg.Poly)
	if err != nil {
		return render.Scene{}, err
	}
	pal, err := palettes.Get(cfg.Palette)
	if err != nil {
		return render.Scene{}, err
	}
	vp, err := plane.NewViewportAt(cfg.Width, cfg.Height, cfg.Scale, cfg.Center)
	if err != nil {
		return render.Scene{}, err
	}
	return render.Scene{
		Viewport: vp.Snapshot(),
		Rule:     rules.New(kind, poly),
		Palette:  pal,
		Seed:     cfg.Seed,
		Batched:  cfg.Batch,
	}, nil
}
