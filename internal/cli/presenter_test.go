package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/metrics"
	"github.com/agbru/fractal/internal/orchestration"
	"github.com/agbru/fractal/internal/palette"
	"github.com/agbru/fractal/internal/plane"
	"github.com/agbru/fractal/internal/render"
	"github.com/agbru/fractal/internal/rules"
	"github.com/agbru/fractal/internal/ui"
)

// withNoColor switches to the plain theme for the duration of a test.
// Callers must not run in parallel.
func withNoColor(t *testing.T) {
	t.Helper()
	prev := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(prev) })
}

func testScene(t *testing.T) render.Scene {
	t.Helper()
	vp, err := plane.NewViewport(8, 4)
	if err != nil {
		t.Fatal(err)
	}
	pal, err := palette.NewRegistry().Get(palette.DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	return render.Scene{
		Viewport: vp.Snapshot(),
		Rule:     rules.New(rules.KindJulia, rules.CubicMinusOne),
		Palette:  pal,
		Seed:     plane.InitialSeed,
		Batched:  true,
	}
}

func TestPresentComparisonTable(t *testing.T) {
	withNoColor(t)
	frame := render.Frame{palette.Gray(1), palette.Gray(2)}
	results := []orchestration.StrategyResult{
		{Name: "batched/W=8", Frame: frame, Duration: 3 * time.Millisecond},
		{Name: "scalar/W=1", Duration: 0, Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	for _, want := range []string{
		"Comparison Summary",
		"Strategy",
		"batched/W=8",
		"3ms",
		"Success",
		fmt.Sprintf("%016x", frame.Digest()),
		"< 1µs",
		"Failure (boom)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table should contain %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	header := lines[1]
	row := lines[2]
	if strings.Index(header, "Duration") != strings.Index(row, "3ms") {
		t.Errorf("columns misaligned:\n%s\n%s", header, row)
	}
}

func TestPresentResult(t *testing.T) {
	withNoColor(t)
	scene := testScene(t)
	frame := render.Frame{palette.Gray(7)}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentResult(orchestration.StrategyResult{Name: "scalar/W=2", Frame: frame, Duration: time.Millisecond}, scene, &buf)
	out := buf.String()
	for _, want := range []string{"julia", "8x4", "32 pixels", "Seed:", "scalar/W=2", fmt.Sprintf("%016x", frame.Digest())} {
		if !strings.Contains(out, want) {
			t.Errorf("result should contain %q:\n%s", want, out)
		}
	}
}

func TestHandleRenderError(t *testing.T) {
	withNoColor(t)
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantText string
	}{
		{"nil", nil, apperrors.ExitSuccess, ""},
		{"deadline", context.DeadlineExceeded, apperrors.ExitErrorTimeout, "Timeout"},
		{"timeout type", apperrors.TimeoutError{Operation: "bench", Limit: time.Second}, apperrors.ExitErrorTimeout, "Timeout"},
		{"canceled", fmt.Errorf("wrapped: %w", context.Canceled), apperrors.ExitErrorCanceled, "Canceled"},
		{"render", apperrors.RenderError{Frame: 4, Cause: errors.New("pool closed")}, apperrors.ExitErrorGeneric, "Frame 4 was discarded"},
		{"config", apperrors.NewConfigError("bad width"), apperrors.ExitErrorConfig, "bad width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := CLIResultPresenter{}.HandleError(tt.err, 2*time.Second, &buf)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(buf.String(), tt.wantText) {
				t.Errorf("output %q should contain %q", buf.String(), tt.wantText)
			}
			if tt.err == nil && buf.Len() != 0 {
				t.Errorf("nil error should print nothing, got %q", buf.String())
			}
		})
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemoryDelta{
		Allocated:   2048,
		Allocations: 1500,
		GCCycles:    3,
		GCPause:     1500 * time.Microsecond,
		PeakHeap:    4096,
	}, 1, &buf)
	out := buf.String()
	for _, want := range []string{"4.0 KiB", "2.0 KiB", "1,500 allocations", "GC cycles:       3", "1.50ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats should contain %q:\n%s", want, out)
		}
	}
}
