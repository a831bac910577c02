package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/fractal/internal/cli"
	"github.com/agbru/fractal/internal/config"
	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/logging"
	"github.com/agbru/fractal/internal/palette"
	"github.com/agbru/fractal/internal/render"
	"github.com/agbru/fractal/internal/tui"
	"github.com/agbru/fractal/internal/ui"
	"github.com/rs/zerolog"
)

// DefaultProgramName is used when args carries no program name.
const DefaultProgramName = "fractal"

// Application represents the fractal application instance.
type Application struct {
	Config    config.AppConfig
	Palettes  *palette.Registry
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the structured logger used by the render pool and the
// mode runners.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithPalettes sets the palette registry, for callers that register custom
// gradients before running.
func WithPalettes(r *palette.Registry) AppOption {
	return func(a *Application) { a.Palettes = r }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Palettes == nil {
		app.Palettes = palette.NewRegistry()
	}

	programName := DefaultProgramName
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		if IsHelpError(err) || apperrors.IsConfigError(err) {
			return nil, err
		}
		// flag package parse failures (unknown flag, bad number).
		return nil, apperrors.ConfigError{Message: err.Error()}
	}
	app.Config = config.ApplyAdaptiveWorkers(cfg)

	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "fractal")
	}
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(logging.ParseLevel(a.Config.LogLevel))
	ui.InitTheme(a.Config.NoColor)

	switch a.Config.Mode {
	case config.ModeExplore:
		return a.runExplore(ctx)
	case config.ModeBench:
		return a.runBench(ctx, out)
	case config.ModeVerify:
		return a.runVerify(ctx, out)
	case config.ModeCalibrate:
		return a.runCalibration(ctx, out)
	default:
		return a.runPreview(ctx, out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runExplore launches the interactive explorer. It has no time limit; only
// signals and the quit keys end it.
func (a *Application) runExplore(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// Log lines would tear the alternate screen.
	r := render.New(render.WithWorkers(a.Config.Workers), render.WithLogger(logging.Nop()))
	defer r.Close()
	return tui.Run(ctx, r, a.Palettes, a.Config, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
