package app

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fractal/internal/config"
	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/logging"
	"github.com/agbru/fractal/internal/palette"
	"github.com/agbru/fractal/internal/plane"
	"github.com/agbru/fractal/internal/ui"
)

// newTestApp builds an application with a silent logger and no colors.
func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	var errBuf bytes.Buffer
	full := append([]string{"fractal", "-no-color"}, args...)
	a, err := New(full, &errBuf, WithLogger(logging.Nop()))
	if err != nil {
		t.Fatalf("New(%v): %v\n%s", args, err, errBuf.String())
	}
	return a
}

// run executes a with a captured output. Run mutates the global theme and
// log level, so callers do not run in parallel.
func run(t *testing.T, ctx context.Context, a *Application) (int, string) {
	t.Helper()
	prev := ui.GetCurrentTheme()
	t.Cleanup(func() { ui.SetCurrentTheme(prev) })
	var out bytes.Buffer
	code := a.Run(ctx, &out)
	return code, out.String()
}

func TestNew_ParsesArgs(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "-mode", "bench", "-rule", "mandelbrot", "-width", "64", "-height", "32")

	if a.Config.Mode != config.ModeBench {
		t.Errorf("Mode = %q", a.Config.Mode)
	}
	if a.Config.Width != 64 || a.Config.Height != 32 {
		t.Errorf("size = %dx%d, want 64x32", a.Config.Width, a.Config.Height)
	}
	if a.Config.Workers < 1 || a.Config.Workers > 32 {
		t.Errorf("Workers = %d, want adaptive value in [1, 32]", a.Config.Workers)
	}
	if a.Palettes == nil {
		t.Error("Palettes should default to the preset registry")
	}
}

func TestNew_Options(t *testing.T) {
	t.Parallel()
	reg := palette.NewRegistry()
	logger := logging.Nop()
	a, err := New([]string{"fractal"}, &bytes.Buffer{}, WithPalettes(reg), WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if a.Palettes != reg {
		t.Error("WithPalettes not applied")
	}
	if a.Logger != logger {
		t.Error("WithLogger not applied")
	}
}

func TestNew_NoArgs(t *testing.T) {
	t.Parallel()
	a, err := New(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Config.Mode != config.ModePreview {
		t.Errorf("Mode = %q, want preview", a.Config.Mode)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		args     []string
		help     bool
		wantCode int
	}{
		{"help", []string{"-h"}, true, apperrors.ExitErrorGeneric},
		{"unknown flag", []string{"-bogus"}, false, apperrors.ExitErrorConfig},
		{"bad number", []string{"-width", "wide"}, false, apperrors.ExitErrorConfig},
		{"negative width", []string{"-width", "-1"}, false, apperrors.ExitErrorConfig},
		{"unknown rule", []string{"-rule", "spiral"}, false, apperrors.ExitErrorConfig},
		{"unknown mode", []string{"-mode", "serve"}, false, apperrors.ExitErrorConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var errBuf bytes.Buffer
			_, err := New(append([]string{"fractal"}, tt.args...), &errBuf)
			if err == nil {
				t.Fatal("expected an error")
			}
			if IsHelpError(err) != tt.help {
				t.Errorf("IsHelpError = %v, want %v", IsHelpError(err), tt.help)
			}
			if tt.help {
				return
			}
			if got := apperrors.ExitCode(err); got != tt.wantCode {
				t.Errorf("ExitCode = %d, want %d (err %v)", got, tt.wantCode, err)
			}
			if errBuf.Len() == 0 {
				t.Error("expected a diagnostic on errWriter")
			}
		})
	}
}

func TestBuildScene(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, "-rule", "nova", "-poly", "quartic", "-width", "10", "-height", "6",
		"-scale", "0.5", "-center", "0.25-0.5i", "-batch=false")

	scene, err := BuildScene(a.Config, a.Palettes)
	if err != nil {
		t.Fatal(err)
	}
	if scene.Rule.String() == "" || scene.Palette == nil {
		t.Fatalf("incomplete scene: %+v", scene)
	}
	if scene.Viewport.Width() != 10 || scene.Viewport.Height() != 6 {
		t.Errorf("viewport = %dx%d", scene.Viewport.Width(), scene.Viewport.Height())
	}
	if scene.Viewport.Scale() != 0.5 || scene.Viewport.Offset() != plane.C(0.25, -0.5) {
		t.Errorf("viewport = %s", scene.Viewport.String())
	}
	if scene.Batched {
		t.Error("-batch=false should select the scalar path")
	}
	if scene.Seed != plane.InitialSeed {
		t.Errorf("Seed = %s, want the initial seed", scene.Seed)
	}
}

func TestBuildScene_Invalid(t *testing.T) {
	t.Parallel()
	base := newTestApp(t).Config
	tests := []struct {
		name   string
		mutate func(*config.AppConfig)
	}{
		{"rule", func(c *config.AppConfig) { c.Rule = "spiral" }},
		{"poly", func(c *config.AppConfig) { c.Poly = "quintic" }},
		{"palette", func(c *config.AppConfig) { c.Palette = "sepia" }},
		{"height", func(c *config.AppConfig) { c.Height = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tt.mutate(&cfg)
			if _, err := BuildScene(cfg, palette.NewRegistry()); !apperrors.IsConfigError(err) {
				t.Errorf("err = %v, want a config error", err)
			}
		})
	}
}

func TestRun_Preview(t *testing.T) {
	a := newTestApp(t, "-width", "8", "-height", "5", "-workers", "3")
	code, out := run(t, context.Background(), a)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d\n%s", code, out)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (two pixel rows per line)", len(lines))
	}
	for i, line := range lines {
		if len(line) != 8 {
			t.Errorf("line %d has %d cells, want 8", i, len(line))
		}
		if strings.Contains(line, "\x1b[") {
			t.Errorf("line %d contains escape codes with colors disabled", i)
		}
	}
}

func TestRun_Bench(t *testing.T) {
	a := newTestApp(t, "-mode", "bench", "-width", "16", "-height", "8", "-workers", "2", "-frames", "3", "-metrics")
	code, out := run(t, context.Background(), a)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d\n%s", code, out)
	}
	for _, want := range []string{
		"--- Execution Configuration ---",
		"--- Benchmark ---",
		"Frames:      3 of 128 pixels",
		"Digest:",
		"Memory Stats:",
		"--- Metrics ---",
		`fractal_frames_total{result="ok",strategy="batched"} 3`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q\n%s", want, out)
		}
	}
}

func TestRun_BenchDigestMatchesAcrossPaths(t *testing.T) {
	digest := func(batch string) string {
		a := newTestApp(t, "-mode", "bench", "-width", "20", "-height", "9", "-frames", "1", "-batch="+batch)
		code, out := run(t, context.Background(), a)
		if code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d\n%s", code, out)
		}
		for _, line := range strings.Split(out, "\n") {
			if strings.HasPrefix(line, "Digest:") {
				return line
			}
		}
		t.Fatalf("no digest line in\n%s", out)
		return ""
	}
	if s, b := digest("false"), digest("true"); s != b {
		t.Errorf("scalar %q and batched %q digests differ", s, b)
	}
}

func TestRun_Verify(t *testing.T) {
	a := newTestApp(t, "-mode", "verify", "-rule", "newton", "-width", "24", "-height", "10", "-workers", "4")
	code, out := run(t, context.Background(), a)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d\n%s", code, out)
	}
	for _, want := range []string{"scalar/W=1", "batched/W=4", "Global Status: Success", "--- Frame ---"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q\n%s", want, out)
		}
	}
}

func TestRun_Calibrate(t *testing.T) {
	a := newTestApp(t, "-mode", "calibrate", "-width", "16", "-height", "8")
	code, out := run(t, context.Background(), a)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d\n%s", code, out)
	}
	for _, want := range []string{"--- Calibration Summary ---", "(Optimal)", "Re-run with -workers"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q\n%s", want, out)
		}
	}
}

func TestRun_Interrupted(t *testing.T) {
	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	t.Cleanup(cancelExpired)
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		mode string
		want int
	}{
		{"bench timeout", expired, config.ModeBench, apperrors.ExitErrorTimeout},
		{"bench canceled", canceled, config.ModeBench, apperrors.ExitErrorCanceled},
		{"calibrate timeout", expired, config.ModeCalibrate, apperrors.ExitErrorTimeout},
		{"verify timeout", expired, config.ModeVerify, apperrors.ExitErrorTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, "-mode", tt.mode, "-width", "16", "-height", "8")
			code, out := run(t, tt.ctx, a)
			if code != tt.want {
				t.Errorf("exit code = %d, want %d\n%s", code, tt.want, out)
			}
		})
	}
}

func TestRun_Completion(t *testing.T) {
	tests := []struct {
		shell string
		want  int
	}{
		{"bash", apperrors.ExitSuccess},
		{"fish", apperrors.ExitSuccess},
		{"tcsh", apperrors.ExitErrorConfig},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var errBuf bytes.Buffer
			a, err := New([]string{"fractal", "-completion", tt.shell}, &errBuf)
			if err != nil {
				t.Fatal(err)
			}
			code, out := run(t, context.Background(), a)
			if code != tt.want {
				t.Fatalf("exit code = %d, want %d", code, tt.want)
			}
			if tt.want == apperrors.ExitSuccess && !strings.Contains(out, "fractal") {
				t.Errorf("script should mention the program name\n%s", out)
			}
			if tt.want != apperrors.ExitSuccess && !strings.Contains(errBuf.String(), "unsupported shell") {
				t.Errorf("stderr = %q", errBuf.String())
			}
		})
	}
}
