package orchestration

import (
	"context"
	"errors"
	"fmt"

	"github.com/agbru/fractal/internal/logging"
	"github.com/agbru/fractal/internal/render"
)

// DefaultRepeats is the number of frames each strategy renders during
// verification.
const DefaultRepeats = 2

// ErrNondeterministic reports that a strategy produced different frames for
// the same scene.
var ErrNondeterministic = errors.New("strategy produced different frames for the same scene")

// RendererStrategy renders through a render.Renderer with a fixed worker
// count and coloring path.
type RendererStrategy struct {
	Workers int
	Batched bool
	Options []render.Option
}

// Name returns "<path>/W=<workers>".
func (s RendererStrategy) Name() string {
	path := render.StrategyScalar
	if s.Batched {
		path = render.StrategyBatched
	}
	return fmt.Sprintf("%s/W=%d", path, s.Workers)
}

// Run renders scene repeats times on one renderer. The scene's own Batched
// flag is overridden by the strategy's.
func (s RendererStrategy) Run(ctx context.Context, scene render.Scene, repeats int, report func(float64)) (render.Frame, error) {
	repeats = max(repeats, 1)
	opts := append([]render.Option{render.WithWorkers(s.Workers)}, s.Options...)
	r := render.New(opts...)
	defer r.Close()

	scene = scene.WithStrategy(s.Batched)
	var first render.Frame
	for i := range repeats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frame, err := r.RenderScene(ctx, scene)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = frame
		} else if at := first.FirstDiff(frame); at >= 0 {
			return nil, fmt.Errorf("%w: run %d differs at pixel %d", ErrNondeterministic, i+1, at)
		}
		if report != nil {
			report(float64(i+1) / float64(repeats))
		}
	}
	return first, nil
}

// StrategiesToRun returns the verification matrix: scalar and batched, each
// with one worker and with workers. With workers <= 1 only the single-worker
// pair is returned. Every strategy shares opts.
func StrategiesToRun(workers int, logger logging.Logger, opts ...render.Option) []Strategy {
	if logger != nil {
		opts = append(opts, render.WithLogger(logger))
	}
	counts := []int{1}
	if workers > 1 {
		counts = append(counts, workers)
	}
	var strategies []Strategy
	for _, batched := range []bool{false, true} {
		for _, w := range counts {
			strategies = append(strategies, RendererStrategy{Workers: w, Batched: batched, Options: opts})
		}
	}
	return strategies
}
