// Package calibration times frames across candidate worker counts and picks
// the fastest.
package calibration

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/logging"
	"github.com/agbru/fractal/internal/render"
)

// DefaultFrames is the number of timed frames per candidate.
const DefaultFrames = 3

// ErrFrameMismatch reports that a candidate produced a different frame than
// the first candidate.
var ErrFrameMismatch = errors.New("frame differs from the first candidate")

// Options configures a calibration run.
type Options struct {
	// Candidates are the worker counts to time. Empty selects
	// GenerateWorkerCandidates for the scene height.
	Candidates []int
	// Frames is the number of timed frames per candidate (after one warm-up).
	Frames   int
	Logger   logging.Logger
	Observer render.Observer
}

// ProgressFunc is called after each candidate finishes.
type ProgressFunc func(done, total int)

// Run times scene for every candidate worker count. Each candidate gets its
// own renderer, renders one untimed warm-up frame, then Frames timed frames.
// Every candidate's frame is checked against the first candidate's frame.
//
// Run stops between frames when ctx is done and returns the context error.
func Run(ctx context.Context, scene render.Scene, opts Options, progress ProgressFunc) (*Profile, error) {
	if opts.Frames <= 0 {
		opts.Frames = DefaultFrames
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	candidates := opts.Candidates
	if len(candidates) == 0 {
		candidates = GenerateWorkerCandidates(scene.Viewport.Height())
	}

	profile := NewProfile()
	profile.Width, profile.Height = scene.Viewport.Width(), scene.Viewport.Height()
	profile.Strategy = scene.Strategy()
	profile.Rule = scene.Rule.String()

	start := time.Now()
	var reference render.Frame
	for i, workers := range candidates {
		res, frame, err := measure(ctx, scene, workers, opts)
		if err != nil {
			return nil, err
		}
		if res.Err == nil {
			if reference == nil {
				reference = frame
			} else if at := reference.FirstDiff(frame); at >= 0 {
				res.Err = fmt.Errorf("%w at pixel %d", ErrFrameMismatch, at)
			}
		}
		profile.Results = append(profile.Results, res)
		opts.Logger.Debug("calibration candidate done",
			logging.Int("workers", workers),
			logging.Duration("best", res.Best),
			logging.Duration("mean", res.Mean))
		if progress != nil {
			progress(i+1, len(candidates))
		}
	}
	profile.Elapsed = time.Since(start)

	bestIdx := -1
	for i, r := range profile.Results {
		if r.Err != nil {
			continue
		}
		if bestIdx < 0 || r.Best < profile.Results[bestIdx].Best {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return profile, apperrors.WrapError(profile.Results[0].Err, "calibration produced no usable result")
	}
	profile.OptimalWorkers = profile.Results[bestIdx].Workers
	return profile, nil
}

// measure returns the timing of one candidate and its last frame. Render
// failures are reported in Result.Err; the error return is reserved for
// context cancellation.
func measure(ctx context.Context, scene render.Scene, workers int, opts Options) (Result, render.Frame, error) {
	renderOpts := []render.Option{render.WithWorkers(workers), render.WithLogger(opts.Logger)}
	if opts.Observer != nil {
		renderOpts = append(renderOpts, render.WithMetrics(opts.Observer))
	}
	r := render.New(renderOpts...)
	defer r.Close()

	res := Result{Workers: workers}
	frame, err := r.RenderScene(ctx, scene) // warm-up
	if err != nil {
		res.Err = err
		return res, nil, nil
	}

	var total time.Duration
	for range opts.Frames {
		if err := ctx.Err(); err != nil {
			return res, nil, err
		}
		t0 := time.Now()
		frame, err = r.RenderScene(ctx, scene)
		elapsed := time.Since(t0)
		if err != nil {
			res.Err = err
			return res, nil, nil
		}
		if res.Frames == 0 || elapsed < res.Best {
			res.Best = elapsed
		}
		total += elapsed
		res.Frames++
	}
	res.Mean = total / time.Duration(res.Frames)
	return res, frame, nil
}
