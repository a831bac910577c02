package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fractal/internal/config"
	"github.com/agbru/fractal/internal/orchestration"
	"github.com/agbru/fractal/internal/simd"
	"github.com/agbru/fractal/internal/sysmon"
	"github.com/agbru/fractal/internal/ui"
)

// PrintExecutionConfig displays the resolved configuration and the host
// environment before a bench, verify or calibrate run.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Rendering %s%s%s at %s%dx%d%s with the %s palette, timeout %s%s%s.\n",
		ui.ColorMagenta(), ruleLabel(cfg), ui.ColorReset(),
		ui.ColorCyan(), cfg.Width, cfg.Height, ui.ColorReset(),
		cfg.Palette,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, vector backend %s%s%s.\n",
		ui.ColorCyan(), sysmon.LogicalCores(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		ui.ColorCyan(), simd.DetectBackend(), ui.ColorReset())
	path := "scalar"
	if cfg.Batch {
		path = "batched"
	}
	fmt.Fprintf(out, "Scheduling: %s%d%s row bands per frame, %s coloring.\n",
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(), path)
}

func ruleLabel(cfg config.AppConfig) string {
	switch cfg.Rule {
	case "newton", "nova":
		return cfg.Rule + " (" + cfg.Poly + ")"
	default:
		return cfg.Rule
	}
}

// PrintExecutionMode announces which strategies are about to run.
func PrintExecutionMode(strategies []orchestration.Strategy, out io.Writer) {
	var modeDesc string
	switch len(strategies) {
	case 0:
		modeDesc = "No strategy selected"
	case 1:
		modeDesc = fmt.Sprintf("Single run with the %s%s%s strategy",
			ui.ColorGreen(), strategies[0].Name(), ui.ColorReset())
	default:
		modeDesc = fmt.Sprintf("Parallel comparison of %d strategies", len(strategies))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
