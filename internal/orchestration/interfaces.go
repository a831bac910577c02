//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/agbru/fractal/internal/render"
)

// Strategy renders a scene one particular way (scalar or batched, some
// worker count).
type Strategy interface {
	// Name identifies the strategy in reports, e.g. "batched/W=8".
	Name() string
	// Run renders scene repeats times, calling report with the completed
	// fraction after each frame, and returns the last frame. It fails when
	// two of its own frames differ.
	Run(ctx context.Context, scene render.Scene, repeats int, report func(float64)) (render.Frame, error)
}

// ProgressUpdate is one progress notification from a running strategy.
type ProgressUpdate struct {
	// Index is the strategy's position in the slice passed to ExecuteStrategies.
	Index int
	// Value is the completed fraction, 0.0 to 1.0.
	Value float64
}

// StrategyResult encapsulates the outcome of one strategy.
// It is the shared domain type between orchestration and presentation.
type StrategyResult struct {
	Name string
	// Frame is nil if an error occurred.
	Frame    render.Frame
	Duration time.Duration
	Err      error
}

// ProgressReporter displays progress while strategies run.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer) {
	f(wg, progressChan, numStrategies, out)
}

// NullProgressReporter drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter presents comparison results.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-strategy summary table.
	PresentComparisonTable(results []StrategyResult, out io.Writer)
	// PresentResult displays the agreed frame.
	PresentResult(result StrategyResult, scene render.Scene, out io.Writer)
	// HandleError reports a failure and returns the exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
