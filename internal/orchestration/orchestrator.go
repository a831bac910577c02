package orchestration

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/render"
)

// ProgressBufferMultiplier sizes the progress channel per strategy.
// Updates that do not fit are dropped rather than blocking a strategy.
const ProgressBufferMultiplier = 5

// ExecuteStrategies runs every strategy on scene concurrently and returns one
// result per strategy, in input order. Strategy failures are recorded in
// StrategyResult.Err; they never cancel the other strategies.
func ExecuteStrategies(ctx context.Context, strategies []Strategy, scene render.Scene, repeats int, progressReporter ProgressReporter, out io.Writer) []StrategyResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]StrategyResult, len(strategies))
	progressChan := make(chan ProgressUpdate, len(strategies)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(strategies), out)

	for i, strategy := range strategies {
		g.Go(func() error {
			report := func(v float64) {
				select {
				case progressChan <- ProgressUpdate{Index: i, Value: v}:
				default:
				}
			}
			start := time.Now()
			frame, err := strategy.Run(ctx, scene, repeats, report)
			results[i] = StrategyResult{
				Name: strategy.Name(), Frame: frame, Duration: time.Since(start), Err: err,
			}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults sorts results (successes first, fastest first),
// presents the comparison table and checks that all successful strategies
// produced identical frames.
//
// It returns ExitSuccess when they agree, ExitErrorMismatch when any two
// differ, and the presenter's exit code when every strategy failed.
func AnalyzeComparisonResults(results []StrategyResult, scene render.Scene, presenter ResultPresenter, out io.Writer) int {
	slices.SortStableFunc(results, func(a, b StrategyResult) int {
		if (a.Err == nil) != (b.Err == nil) {
			if a.Err == nil {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Duration, b.Duration)
	})

	var firstValid *StrategyResult
	var firstError error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		successCount++
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could render the frame.\n")
		return presenter.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if at := firstValid.Frame.FirstDiff(res.Frame); at >= 0 {
			err := apperrors.MismatchError{First: firstValid.Name, Second: res.Name, Pixel: at}
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %v.\n", err)
			return apperrors.ExitCode(err)
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All %d frames are identical.\n", successCount)
	presenter.PresentResult(*firstValid, scene, out)
	return apperrors.ExitSuccess
}
