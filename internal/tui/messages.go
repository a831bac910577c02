package tui

import (
	"time"

	"github.com/agbru/fractal/internal/sysmon"
)

// frameTickMsg paces the redraw loop.
type frameTickMsg time.Time

// frameMsg carries a rendered canvas back to the model.
type frameMsg struct {
	generation uint64
	canvas     string
	elapsed    time.Duration
	width      int
	height     int
	err        error
}

// sysTickMsg triggers a host sample.
type sysTickMsg time.Time

// sysStatsMsg carries a host sample.
type sysStatsMsg sysmon.Stats

// contextDoneMsg reports that the parent context ended.
type contextDoneMsg struct{ err error }
