package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/agbru/fractal/internal/format"
	"github.com/agbru/fractal/internal/ui"
)

// PrintResults formats and prints the calibration results table.
func PrintResults(out io.Writer, p *Profile) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	fmt.Fprintf(out, "%dx%d %s (%s), %d CPUs, SIMD backend %s\n\n",
		p.Width, p.Height, p.Rule, p.Strategy, p.NumCPU, p.Backend)

	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sWorkers%s    │ %sBest frame%s   │ %sMean frame%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s┼%s\n", strings.Repeat("─", 12), strings.Repeat("─", 15), strings.Repeat("─", 15))
	for _, res := range p.Results {
		best := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		mean := best
		if res.Err == nil {
			best = format.FormatFrameTime(res.Best)
			mean = format.FormatFrameTime(res.Mean)
		}
		highlight := ""
		if res.Workers == p.OptimalWorkers && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-10d%s │ %s%-12s%s │ %s%s\n",
			ui.ColorCyan(), res.Workers, ui.ColorReset(), ui.ColorYellow(), best, ui.ColorReset(), mean, highlight)
	}
	tw.Flush()

	for _, res := range p.Results {
		if res.Err != nil {
			fmt.Fprintf(out, "%sworkers=%d failed:%s %v\n", ui.ColorRed(), res.Workers, ui.ColorReset(), res.Err)
		}
	}
}

// PrintSummary prints the chosen worker count on one line.
func PrintSummary(out io.Writer, p *Profile) {
	best, ok := p.Best()
	if !ok {
		fmt.Fprintf(out, "%sCalibration%s: no usable worker count\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%sCalibration%s: workers=%s%d%s (%s/frame, %.1f FPS), took %s\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), p.OptimalWorkers, ui.ColorReset(),
		format.FormatFrameTime(best.Best), fps(best.Best),
		format.FormatExecutionDuration(p.Elapsed))
}

func fps(d time.Duration) float64 {
	if s := d.Seconds(); s > 0 {
		return 1 / s
	}
	return 0
}
