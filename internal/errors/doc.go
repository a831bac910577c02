// Package apperrors holds the error types shared by the renderer, the
// configuration layer and the command line, and maps them to exit codes.
//
// Types that carry a cause implement Unwrap, so callers inspect chains with
// errors.Is and errors.As. An iteration count saturating at 255 is a normal
// result, not an error.
package apperrors
