package render

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/logging"
	"github.com/agbru/fractal/internal/palette"
	"github.com/agbru/fractal/internal/parallel"
	"github.com/agbru/fractal/internal/plane"
	"github.com/agbru/fractal/internal/simd"
)

// DefaultWorkers is the worker count used when the hardware parallelism
// cannot be determined.
const DefaultWorkers = 16

const tracerName = "github.com/agbru/fractal/internal/render"

// Strategy names reported to observers and traces.
const (
	StrategyScalar  = "scalar"
	StrategyBatched = "batched"
)

// Observer receives one notification per frame. It is implemented by the
// metrics package.
type Observer interface {
	ObserveFrame(strategy string, workers int, elapsed time.Duration, pixels int, err error)
}

// Stats summarizes the renderer's activity.
type Stats struct {
	Workers   int
	Frames    uint64
	Failures  uint64
	LastFrame time.Duration
}

// Renderer partitions frames into row bands, renders the bands on a
// reusable worker pool and reassembles them in row-major order.
//
// Render calls block until the whole frame is assembled. A Renderer may be
// used from several goroutines, but frames are independent: there is no
// cross-frame pipelining.
type Renderer struct {
	workers  int
	pool     *parallel.WorkerPool
	logger   logging.Logger
	observer Observer
	tracer   trace.Tracer

	frames    atomic.Uint64
	failures  atomic.Uint64
	lastFrame atomic.Int64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWorkers sets the worker count. Zero or negative selects DefaultWorkerCount.
func WithWorkers(n int) Option {
	return func(r *Renderer) { r.workers = n }
}

// WithLogger sets the logger used for per-frame debug output.
func WithLogger(l logging.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics registers a frame observer.
func WithMetrics(o Observer) Option {
	return func(r *Renderer) { r.observer = o }
}

// WithTracer sets the tracer for frame and chunk spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) {
		if t != nil {
			r.tracer = t
		}
	}
}

// DefaultWorkerCount returns the hardware parallelism, or DefaultWorkers
// when it is unavailable.
func DefaultWorkerCount() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return DefaultWorkers
}

// New creates a Renderer and starts its worker pool.
// Close must be called to release the workers.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		logger: logging.Nop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers <= 0 {
		r.workers = DefaultWorkerCount()
	}
	r.pool = parallel.NewWorkerPool(r.workers, r.logger)
	return r
}

// Workers returns the number of row bands per frame.
func (r *Renderer) Workers() int { return r.workers }

// Close stops the worker pool. Rendering afterwards fails with a RenderError
// wrapping parallel.ErrPoolClosed.
func (r *Renderer) Close() { r.pool.Close() }

// Stats returns a snapshot of the renderer counters.
func (r *Renderer) Stats() Stats {
	return Stats{
		Workers:   r.workers,
		Frames:    r.frames.Load(),
		Failures:  r.failures.Load(),
		LastFrame: time.Duration(r.lastFrame.Load()),
	}
}

// Render produces the frame for vp, coloring one pixel at a time.
// The context only carries trace spans: a render always runs to completion.
func (r *Renderer) Render(ctx context.Context, vp plane.Viewport, c Colorer) (Frame, error) {
	return r.render(ctx, vp, StrategyScalar, func(m plane.Mapper, rows RowRange, width int) []palette.RGB {
		pixels := make([]palette.RGB, 0, rows.Len()*width)
		for y := rows.Start; y < rows.End; y++ {
			for x := range width {
				pixels = append(pixels, c.Color(m(x, y)))
			}
		}
		return pixels
	})
}

// RenderBatch produces the frame for vp, coloring simd.Lanes consecutive
// pixels at a time. A trailing partial group is padded by repeating its last
// point and the padded outputs are discarded.
func (r *Renderer) RenderBatch(ctx context.Context, vp plane.Viewport, c BatchColorer) (Frame, error) {
	return r.render(ctx, vp, StrategyBatched, func(m plane.Mapper, rows RowRange, width int) []palette.RGB {
		total := rows.Len() * width
		pixels := make([]palette.RGB, 0, total)
		var group [simd.Lanes]plane.Complex
		n := 0
		flush := func() {
			batch, lanes := simd.Load(group[:n])
			colors := c.ColorBatch(batch)
			pixels = append(pixels, colors[:lanes]...)
			n = 0
		}
		for y := rows.Start; y < rows.End; y++ {
			for x := range width {
				group[n] = m(x, y)
				n++
				if n == simd.Lanes {
					flush()
				}
			}
		}
		if n > 0 {
			flush()
		}
		return pixels
	})
}

type chunkFunc func(m plane.Mapper, rows RowRange, width int) []palette.RGB

type chunkResult struct {
	chunk Chunk
	err   error
}

func (r *Renderer) render(ctx context.Context, vp plane.Viewport, strategy string, fn chunkFunc) (Frame, error) {
	frameID := r.frames.Add(1)
	start := time.Now()
	width, height := vp.Width(), vp.Height()

	ctx, span := r.tracer.Start(ctx, "render.frame", trace.WithAttributes(
		attribute.String("render.strategy", strategy),
		attribute.Int("render.width", width),
		attribute.Int("render.height", height),
		attribute.Int("render.workers", r.workers),
		attribute.Int64("render.frame", int64(frameID)),
	))
	defer span.End()

	frame, err := r.dispatch(ctx, vp, fn)
	elapsed := time.Since(start)
	r.lastFrame.Store(int64(elapsed))

	if r.observer != nil {
		r.observer.ObserveFrame(strategy, r.workers, elapsed, len(frame), err)
	}
	if err != nil {
		r.failures.Add(1)
		err = apperrors.RenderError{Frame: frameID, Cause: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		r.logger.Error("frame failed", err, logging.Uint64("frame", frameID), logging.String("strategy", strategy))
		return nil, err
	}

	r.logger.Debug("frame rendered",
		logging.Uint64("frame", frameID),
		logging.String("strategy", strategy),
		logging.Int("workers", r.workers),
		logging.Int("pixels", len(frame)),
		logging.Duration("elapsed", elapsed))
	return frame, nil
}

// dispatch submits one task per row band, collects the chunks in completion
// order and reassembles them by start row.
func (r *Renderer) dispatch(ctx context.Context, vp plane.Viewport, fn chunkFunc) (Frame, error) {
	width, height := vp.Width(), vp.Height()
	if width <= 0 || height <= 0 {
		return nil, apperrors.NewConfigError("cannot render a %dx%d viewport", width, height)
	}

	mapper := vp.Mapper()
	ranges := Partition(height, r.workers)
	results := make(chan chunkResult, len(ranges))

	var errs parallel.ErrorCollector
	submitted := 0
	for _, rows := range ranges {
		task := func() {
			_, span := r.tracer.Start(ctx, "render.chunk", trace.WithAttributes(
				attribute.Int("render.start_row", rows.Start),
				attribute.Int("render.rows", rows.Len()),
			))
			defer span.End()
			results <- chunkResult{chunk: Chunk{StartRow: rows.Start, Pixels: fn(mapper, rows, width)}}
		}
		onPanic := func(err error) {
			results <- chunkResult{err: fmt.Errorf("rows %d..%d: %w", rows.Start, rows.End, err)}
		}
		if err := r.pool.SubmitWithRecover(task, onPanic); err != nil {
			errs.SetError(fmt.Errorf("dispatching rows %d..%d: %w", rows.Start, rows.End, err))
			break
		}
		submitted++
	}

	// Wait for everything that was accepted, even on failure, so no work
	// from this frame outlives the call.
	chunks := make([]Chunk, 0, submitted)
	for range submitted {
		res := <-results
		if res.err != nil {
			errs.SetError(res.err)
			continue
		}
		chunks = append(chunks, res.chunk)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	return assemble(chunks, width*height)
}

// assemble sorts chunks by start row and concatenates their pixels.
func assemble(chunks []Chunk, pixels int) (Frame, error) {
	slices.SortFunc(chunks, func(a, b Chunk) int { return a.StartRow - b.StartRow })
	frame := make(Frame, 0, pixels)
	for _, ch := range chunks {
		frame = append(frame, ch.Pixels...)
	}
	if len(frame) != pixels {
		return nil, errIncompleteFrame{got: len(frame), want: pixels}
	}
	return frame, nil
}

type errIncompleteFrame struct{ got, want int }

func (e errIncompleteFrame) Error() string {
	return fmt.Sprintf("assembled %d pixels, want %d", e.got, e.want)
}

// IsPoolClosed reports whether err was caused by rendering on a closed renderer.
func IsPoolClosed(err error) bool {
	return errors.Is(err, parallel.ErrPoolClosed)
}
