package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/fractal/internal/format"
	"github.com/agbru/fractal/internal/metrics"
	"github.com/agbru/fractal/internal/sysmon"
)

// historySize is the number of frame times shown in the sparkline.
const historySize = 32

// headerHeight is the header's height in rows: two text lines and a border.
const headerHeight = 3

// HeaderModel renders the status bar: frame timing, view position and host
// load.
type HeaderModel struct {
	version string
	width   int

	history *FrameHistory
	pixels  int
	frameW  int
	frameH  int
	stats   sysmon.Stats
}

// HeaderInfo is the scene state shown in the header, supplied at View time.
type HeaderInfo struct {
	Rule     string
	Palette  string
	Strategy string
	Workers  int
	Scale    float64
	Offset   string
	Seed     string
	Paused   bool
	Err      error
}

// NewHeaderModel creates a header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version, history: NewFrameHistory(historySize)}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// RecordFrame stores the timing of a completed frame.
func (h *HeaderModel) RecordFrame(elapsed time.Duration, width, height int) {
	h.history.Push(elapsed)
	h.pixels = width * height
	h.frameW, h.frameH = width, height
}

// SetSysStats stores the latest host sample.
func (h *HeaderModel) SetSysStats(s sysmon.Stats) { h.stats = s }

// Reset clears the frame history.
func (h *HeaderModel) Reset() { h.history.Reset() }

// View renders the header.
func (h HeaderModel) View(info HeaderInfo) string {
	pipe := pipeStyle.Render(" | ")

	title := "fractal"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	first := []string{
		titleStyle.Render(title),
		field("rule", info.Rule),
		field("palette", info.Palette),
		field("path", fmt.Sprintf("%s W=%d", info.Strategy, info.Workers)),
	}
	if last := h.history.Last(); last > 0 {
		first = append(first,
			field("frame", fmt.Sprintf("%s px (%dx%d) in %s", format.Count(h.pixels), h.frameW, h.frameH, format.FormatFrameTime(last))),
			field("fps", metrics.FormatFPS(h.history.Mean())),
			sparkStyle.Render(RenderSparkline(h.history.Slice())),
		)
	}

	second := []string{
		field("scale", fmt.Sprintf("%+e", info.Scale)),
		field("offset", info.Offset),
		field("seed", info.Seed),
		field("cpu", fmt.Sprintf("%.0f%%", h.stats.CPUPercent)),
		field("rss", format.FormatBytes(h.stats.ProcRSS)),
	}
	switch {
	case info.Err != nil:
		second = append(second, errorStyle.Render("error: "+info.Err.Error()))
	case info.Paused:
		second = append(second, pausedStyle.Render("PAUSED"))
	}

	body := strings.Join(first, pipe) + "\n" + strings.Join(second, pipe)
	style := headerStyle
	if h.width > 0 {
		style = style.MaxWidth(h.width)
	}
	return style.Render(body)
}

func field(label, value string) string {
	return labelStyle.Render(label+" ") + valueStyle.Render(value)
}
