package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/agbru/fractal/internal/calibration"
	"github.com/agbru/fractal/internal/cli"
	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/logging"
	"github.com/agbru/fractal/internal/metrics"
	"github.com/agbru/fractal/internal/orchestration"
	"github.com/agbru/fractal/internal/render"
)

// withLimits bounds ctx by the configured timeout and by SIGINT/SIGTERM.
func (a *Application) withLimits(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// asTimeout turns a deadline expiry into a TimeoutError naming the mode.
func (a *Application) asTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: a.Config.Mode, Limit: a.Config.Timeout}
	}
	return err
}

// startProgress runs the CLI spinner for a single task. report never
// blocks; stop closes the channel and waits for the spinner to finish.
func startProgress(out io.Writer) (report func(float64), stop func()) {
	ch := make(chan orchestration.ProgressUpdate, orchestration.ProgressBufferMultiplier)
	var wg sync.WaitGroup
	wg.Add(1)
	go cli.DisplayProgress(&wg, ch, 1, out)
	report = func(v float64) {
		select {
		case ch <- orchestration.ProgressUpdate{Index: 0, Value: v}:
		default:
		}
	}
	stop = func() {
		close(ch)
		wg.Wait()
	}
	return report, stop
}

func (a *Application) scene() (render.Scene, int) {
	scene, err := BuildScene(a.Config, a.Palettes)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return render.Scene{}, apperrors.ExitCode(err)
	}
	return scene, apperrors.ExitSuccess
}

func (a *Application) renderOptions(extra ...render.Option) []render.Option {
	return append([]render.Option{
		render.WithWorkers(a.Config.Workers),
		render.WithLogger(a.Logger),
	}, extra...)
}

// runPreview renders one frame and prints it to out as terminal cells.
func (a *Application) runPreview(ctx context.Context, out io.Writer) int {
	scene, code := a.scene()
	if code != apperrors.ExitSuccess {
		return code
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	r := render.New(a.renderOptions()...)
	defer r.Close()

	start := time.Now()
	frame, err := r.RenderScene(ctx, scene)
	if err != nil {
		return cli.HandleRenderError(err, time.Since(start), a.ErrWriter)
	}
	a.Logger.Debug("preview rendered",
		logging.String("strategy", scene.Strategy()),
		logging.Duration("elapsed", time.Since(start)))

	if err := cli.PrintPreview(out, frame, scene.Viewport.Width(), scene.Viewport.Height()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runBench renders the configured scene Frames times on one renderer and
// reports frame times, throughput and allocations.
func (a *Application) runBench(ctx context.Context, out io.Writer) int {
	scene, code := a.scene()
	if code != apperrors.ExitSuccess {
		return code
	}
	ctx, cancel := a.withLimits(ctx)
	defer cancel()

	var observer *metrics.RenderMetrics
	var extra []render.Option
	if a.Config.Metrics {
		observer = metrics.NewRenderMetrics()
		extra = append(extra, render.WithMetrics(observer))
	}
	r := render.New(a.renderOptions(extra...)...)
	defer r.Close()

	cli.PrintExecutionConfig(a.Config, out)
	fmt.Fprintf(out, "Benchmarking %d frames...\n", a.Config.Frames)

	before := metrics.ReadMemory()
	started := time.Now()
	durations := make([]time.Duration, 0, a.Config.Frames)
	var last render.Frame
	report, stop := startProgress(out)
	for i := range a.Config.Frames {
		// Frames run to completion; cancellation is honored between them.
		err := ctx.Err()
		var frame render.Frame
		t0 := time.Now()
		if err == nil {
			frame, err = r.RenderScene(ctx, scene)
		}
		if err != nil {
			stop()
			return cli.HandleRenderError(a.asTimeout(err), time.Since(started), out)
		}
		durations = append(durations, time.Since(t0))
		last = frame
		report(float64(i+1) / float64(a.Config.Frames))
	}
	stop()
	delta := metrics.ReadMemory().Since(before)

	cli.PrintBenchReport(out, cli.BenchReport{
		Strategy:  scene.Strategy(),
		Workers:   r.Workers(),
		Pixels:    scene.Viewport.Pixels(),
		Durations: durations,
		Memory:    delta,
		Digest:    last.Digest(),
	})

	if observer != nil {
		fmt.Fprintf(out, "\n--- Metrics ---\n")
		if err := observer.Write(out); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	}
	return apperrors.ExitSuccess
}

// runVerify renders the scene with every strategy concurrently and checks
// that all frames are identical.
func (a *Application) runVerify(ctx context.Context, out io.Writer) int {
	scene, code := a.scene()
	if code != apperrors.ExitSuccess {
		return code
	}
	ctx, cancel := a.withLimits(ctx)
	defer cancel()

	strategies := orchestration.StrategiesToRun(a.Config.Workers, a.Logger)
	cli.PrintExecutionConfig(a.Config, out)
	cli.PrintExecutionMode(strategies, out)

	results := orchestration.ExecuteStrategies(ctx, strategies, scene, orchestration.DefaultRepeats, cli.CLIProgressReporter{}, out)
	for i := range results {
		results[i].Err = a.asTimeout(results[i].Err)
	}
	return orchestration.AnalyzeComparisonResults(results, scene, cli.CLIResultPresenter{}, out)
}

// runCalibration times the scene across candidate worker counts and prints
// the fastest. The result is not persisted; pass it back with -workers.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	scene, code := a.scene()
	if code != apperrors.ExitSuccess {
		return code
	}
	ctx, cancel := a.withLimits(ctx)
	defer cancel()

	cli.PrintExecutionConfig(a.Config, out)
	fmt.Fprintf(out, "Calibrating worker count...\n")

	started := time.Now()
	report, stop := startProgress(out)
	profile, err := calibration.Run(ctx, scene, calibration.Options{Logger: a.Logger}, func(done, total int) {
		report(float64(done) / float64(total))
	})
	stop()
	if err != nil {
		return cli.HandleRenderError(a.asTimeout(err), time.Since(started), out)
	}

	calibration.PrintResults(out, profile)
	calibration.PrintSummary(out, profile)
	fmt.Fprintf(out, "Re-run with -workers %d to use it.\n", profile.OptimalWorkers)
	return apperrors.ExitSuccess
}
