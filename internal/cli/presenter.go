package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/format"
	"github.com/agbru/fractal/internal/metrics"
	"github.com/agbru/fractal/internal/orchestration"
	"github.com/agbru/fractal/internal/render"
	"github.com/agbru/fractal/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numStrategies int, out io.Writer) {
	DisplayProgress(wg, progressChan, numStrategies, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter with colorized
// terminal output.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable prints one row per strategy. Padding is computed by
// hand because the cells carry ANSI codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.StrategyResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := len("Strategy")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(displayDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Strategy")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s %s%016x%s", ui.ColorGreen(), ui.ColorReset(),
				ui.ColorGrey(), res.Frame.Digest(), ui.ColorReset())
		}
		duration := displayDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult describes the frame every strategy agreed on.
func (CLIResultPresenter) PresentResult(result orchestration.StrategyResult, scene render.Scene, out io.Writer) {
	vp := scene.Viewport
	fmt.Fprintf(out, "\n--- Frame ---\n")
	fmt.Fprintf(out, "Rule:        %s%s%s\n", ui.ColorMagenta(), scene.Rule, ui.ColorReset())
	fmt.Fprintf(out, "Size:        %dx%d (%s pixels)\n", vp.Width(), vp.Height(), format.Count(vp.Pixels()))
	fmt.Fprintf(out, "Viewport:    scale %g, offset %s\n", vp.Scale(), vp.Offset())
	if scene.Rule.Kind.UsesSeed() {
		fmt.Fprintf(out, "Seed:        %s\n", scene.Seed)
	}
	fmt.Fprintf(out, "Fastest:     %s%s%s in %s\n", ui.ColorBlue(), result.Name, ui.ColorReset(), displayDuration(result.Duration))
	fmt.Fprintf(out, "Digest:      %s%016x%s\n", ui.ColorGreen(), result.Frame.Digest(), ui.ColorReset())
}

// HandleError reports err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return HandleRenderError(err, duration, out)
}

// HandleRenderError prints a status line for err and maps it to an exit code.
func HandleRenderError(err error, duration time.Duration, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	msSuffix := ""
	if duration > 0 {
		msSuffix = fmt.Sprintf(" after %s%s%s", ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
	}

	var timeoutErr apperrors.TimeoutError
	var renderErr apperrors.RenderError
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%sStatus: Failure (Timeout).%s The run exceeded its time limit%s.\n", ui.ColorRed(), ui.ColorReset(), msSuffix)
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s by the user%s.\n", ui.ColorYellow(), ui.ColorReset(), msSuffix)
	case errors.As(err, &renderErr):
		fmt.Fprintf(out, "%sStatus: Failure.%s Frame %d was discarded%s: %v\n", ui.ColorRed(), ui.ColorReset(), renderErr.Frame, msSuffix, renderErr.Cause)
	default:
		fmt.Fprintf(out, "%sStatus: Failure.%s An error occurred%s: %v\n", ui.ColorRed(), ui.ColorReset(), msSuffix, err)
	}
	return apperrors.ExitCode(err)
}

// DisplayMemoryStats shows allocation figures for a run of frames.
func DisplayMemoryStats(delta metrics.MemoryDelta, frames int, out io.Writer) {
	perFrameBytes, perFrameAllocs := delta.PerFrame(frames)
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(delta.PeakHeap))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(delta.Allocated))
	fmt.Fprintf(out, "  Per frame:       %s in %s allocations\n", format.FormatBytes(perFrameBytes), format.Count(perFrameAllocs))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.GCPause)/float64(time.Millisecond))
}
