// Package config parses the command line and FRACTAL_ environment variables
// into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/palette"
	"github.com/agbru/fractal/internal/plane"
	"github.com/agbru/fractal/internal/rules"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FRACTAL_"

// Execution modes.
const (
	ModeExplore   = "explore"
	ModePreview   = "preview"
	ModeBench     = "bench"
	ModeVerify    = "verify"
	ModeCalibrate = "calibrate"
)

// Defaults applied when neither a flag nor an environment variable is set.
const (
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultPreviewWidth  = 80
	DefaultPreviewHeight = 40
	DefaultFrames        = 30
	DefaultTimeout       = time.Minute
)

var modes = []string{ModeExplore, ModePreview, ModeBench, ModeVerify, ModeCalibrate}

var logLevels = []string{"debug", "info", "warn", "error"}

// Modes lists the accepted -mode values.
func Modes() []string { return slices.Clone(modes) }

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Mode selects what the program does: explore, preview, bench, verify or calibrate.
	Mode string
	// Rule names the iteration rule (julia, mandelbrot, newton, nova).
	Rule string
	// Poly names the polynomial used by newton and nova.
	Poly string
	// Palette names the color preset.
	Palette string
	// Width and Height are the frame dimensions in pixels. Zero selects the
	// mode default.
	Width, Height int
	// Workers is the number of row bands per frame; 0 selects an adaptive value.
	Workers int
	// Batch selects the 8-lane batched coloring path.
	Batch bool
	// Seed is the Julia/Nova seed.
	Seed plane.Complex
	// Center is the initial viewport offset.
	Center plane.Complex
	// Scale is the initial viewport scale (plane units across the shorter side).
	Scale float64
	// Frames is the number of frames rendered by bench.
	Frames int
	// Timeout bounds bench, verify and calibrate.
	Timeout time.Duration
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// Metrics prints the Prometheus exposition after bench.
	Metrics bool
	// NoColor disables ANSI styling in CLI output.
	NoColor bool
	// ShowVersion prints the version and exits.
	ShowVersion bool
	// Completion names a shell; when set, a completion script is printed
	// instead of running a mode.
	Completion string
}

// ParseConfig parses args into an AppConfig. Environment variables fill any
// flag that was not set explicitly. Usage and parse errors go to errWriter;
// -h returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{
		Seed:  plane.InitialSeed,
		Scale: plane.InitialScale,
	}
	fs.StringVar(&cfg.Mode, "mode", ModePreview, "Execution mode: "+strings.Join(modes, "|")+".")
	fs.StringVar(&cfg.Rule, "rule", rules.KindJulia.String(), "Iteration rule: julia|mandelbrot|newton|nova.")
	fs.StringVar(&cfg.Poly, "poly", rules.CubicMinusOne.Name, "Polynomial for newton and nova: "+strings.Join(rules.PolynomialNames(), "|")+".")
	fs.StringVar(&cfg.Palette, "palette", palette.DefaultName, "Color palette preset.")
	fs.IntVar(&cfg.Width, "width", 0, fmt.Sprintf("Frame width in pixels (default %d, preview %d).", DefaultWidth, DefaultPreviewWidth))
	fs.IntVar(&cfg.Height, "height", 0, fmt.Sprintf("Frame height in pixels (default %d, preview %d).", DefaultHeight, DefaultPreviewHeight))
	fs.IntVar(&cfg.Workers, "workers", 0, "Row bands per frame (0 = adaptive).")
	fs.BoolVar(&cfg.Batch, "batch", true, "Use the 8-lane batched coloring path.")
	fs.TextVar(&cfg.Seed, "seed", plane.InitialSeed, "Julia/Nova seed, e.g. -0.7768+0.1374i or -0.7768,0.1374.")
	fs.TextVar(&cfg.Center, "center", plane.Complex{}, "Initial viewport center.")
	fs.Float64Var(&cfg.Scale, "scale", plane.InitialScale, "Initial viewport scale.")
	fs.IntVar(&cfg.Frames, "frames", DefaultFrames, "Frames rendered by bench.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Time limit for bench, verify and calibrate.")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: "+strings.Join(logLevels, "|")+".")
	fs.BoolVar(&cfg.Metrics, "metrics", false, "Print Prometheus metrics after bench.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version information and exit.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script for bash|zsh|fish|powershell and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(fs)
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c *AppConfig) normalize() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.Rule = strings.ToLower(strings.TrimSpace(c.Rule))
	c.Poly = strings.ToLower(strings.TrimSpace(c.Poly))
	c.Palette = strings.ToLower(strings.TrimSpace(c.Palette))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.Width == 0 {
		c.Width = DefaultWidth
		if c.Mode == ModePreview {
			c.Width = DefaultPreviewWidth
		}
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
		if c.Mode == ModePreview {
			c.Height = DefaultPreviewHeight
		}
	}
}

// Validate checks every field and returns the first apperrors.ValidationError.
func (c AppConfig) Validate() error {
	if !slices.Contains(modes, c.Mode) {
		return invalid("mode", "unknown mode %q (want %s)", c.Mode, strings.Join(modes, ", "))
	}
	if _, err := rules.ParseKind(c.Rule); err != nil {
		return invalid("rule", "%v", err)
	}
	if _, err := rules.ParsePolynomial(c.Poly); err != nil {
		return invalid("poly", "%v", err)
	}
	if !slices.Contains(palette.PresetNames(), c.Palette) {
		return invalid("palette", "unknown palette %q (want %s)", c.Palette, strings.Join(palette.PresetNames(), ", "))
	}
	if c.Width <= 0 {
		return invalid("width", "must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return invalid("height", "must be positive, got %d", c.Height)
	}
	if c.Workers < 0 {
		return invalid("workers", "must not be negative, got %d", c.Workers)
	}
	if c.Scale <= 0 || math.IsInf(c.Scale, 0) || math.IsNaN(c.Scale) {
		return invalid("scale", "must be finite and positive, got %g", c.Scale)
	}
	if !c.Seed.IsFinite() {
		return invalid("seed", "must be finite, got %s", c.Seed)
	}
	if !c.Center.IsFinite() {
		return invalid("center", "must be finite, got %s", c.Center)
	}
	if c.Frames < 1 {
		return invalid("frames", "must be at least 1, got %d", c.Frames)
	}
	if c.Timeout <= 0 {
		return invalid("timeout", "must be positive, got %s", c.Timeout)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return invalid("log-level", "unknown level %q", c.LogLevel)
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return apperrors.ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
