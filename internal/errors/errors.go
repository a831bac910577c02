package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit statuses.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2   // a bench, verify or calibrate run exceeded -timeout
	ExitErrorMismatch = 3   // two render strategies disagreed on a pixel
	ExitErrorConfig   = 4   // bad flag, environment value or scene parameter
	ExitErrorCanceled = 130 // SIGINT or SIGTERM
)

// ConfigError reports a scene or program setting that cannot be used: zero
// image dimensions, a non-positive scale, an unknown rule or palette name,
// too few gradient stops. Nothing can be rendered from it.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// RenderError reports that a frame could not be produced because a row band
// could not be dispatched or its worker failed. The frame is discarded as a
// whole; callers never see a partial frame.
type RenderError struct {
	// Frame is the renderer's sequence number of the failed frame.
	Frame uint64
	Cause error
}

func (e RenderError) Error() string {
	return fmt.Sprintf("render of frame %d failed: %v", e.Frame, e.Cause)
}

// Unwrap exposes the cause, e.g. parallel.ErrPoolClosed.
func (e RenderError) Unwrap() error { return e.Cause }

// MismatchError reports that two strategies rendered different frames for
// the same scene.
type MismatchError struct {
	First, Second string
	// Pixel is the row-major index of the first differing pixel.
	Pixel int
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("%s and %s differ at pixel %d", e.First, e.Second, e.Pixel)
}

// TimeoutError reports that a mode ran past its -timeout.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError names the flag or setting that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError prefixes err with a formatted message, keeping it inspectable
// with errors.Is and errors.As. It returns nil for a nil err.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsConfigError reports whether err is, or wraps, a ConfigError or a ValidationError.
func IsConfigError(err error) bool {
	var cfgErr ConfigError
	var valErr ValidationError
	return errors.As(err, &cfgErr) || errors.As(err, &valErr)
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var timeoutErr TimeoutError
	var mismatchErr MismatchError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	case IsConfigError(err):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
