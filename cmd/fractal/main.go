// Command fractal renders escape-time fractals in the terminal.
package main

import (
	"context"
	"os"

	"github.com/agbru/fractal/internal/app"
	apperrors "github.com/agbru/fractal/internal/errors"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if app.HasVersionFlag(args[1:]) {
		app.PrintVersion(os.Stdout)
		return apperrors.ExitSuccess
	}
	a, err := app.New(args, os.Stderr)
	switch {
	case app.IsHelpError(err):
		return apperrors.ExitSuccess
	case err != nil:
		return apperrors.ExitCode(err)
	}
	return a.Run(context.Background(), os.Stdout)
}
