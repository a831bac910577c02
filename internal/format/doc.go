// Package format renders durations, counts, byte sizes and progress bars for
// the CLI presenters and the explorer header.
package format
