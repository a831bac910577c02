package tui

import "time"

// sparklineChars maps levels 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// FrameHistory is a fixed-capacity circular buffer of frame times.
type FrameHistory struct {
	data  []time.Duration
	head  int
	count int
}

// NewFrameHistory creates a history holding the last capacity frames.
func NewFrameHistory(capacity int) *FrameHistory {
	if capacity <= 0 {
		capacity = 1
	}
	return &FrameHistory{data: make([]time.Duration, capacity)}
}

// Push records a frame time, overwriting the oldest when full.
func (h *FrameHistory) Push(d time.Duration) {
	h.data[h.head] = d
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

// Len returns the number of recorded frames.
func (h *FrameHistory) Len() int { return h.count }

// Last returns the most recent frame time, or 0 if empty.
func (h *FrameHistory) Last() time.Duration {
	if h.count == 0 {
		return 0
	}
	idx := h.head - 1
	if idx < 0 {
		idx = len(h.data) - 1
	}
	return h.data[idx]
}

// Slice returns frame times oldest first.
func (h *FrameHistory) Slice() []time.Duration {
	if h.count == 0 {
		return nil
	}
	result := make([]time.Duration, h.count)
	start := h.head - h.count
	if start < 0 {
		start += len(h.data)
	}
	for i := range h.count {
		result[i] = h.data[(start+i)%len(h.data)]
	}
	return result
}

// Mean returns the average recorded frame time.
func (h *FrameHistory) Mean() time.Duration {
	if h.count == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range h.Slice() {
		total += d
	}
	return total / time.Duration(h.count)
}

// Reset clears the history.
func (h *FrameHistory) Reset() {
	h.head = 0
	h.count = 0
}

// RenderSparkline draws frame times relative to the slowest one, so the
// tallest bar is always the worst frame in view.
func RenderSparkline(values []time.Duration) string {
	if len(values) == 0 {
		return ""
	}
	var ceiling time.Duration
	for _, v := range values {
		ceiling = max(ceiling, v)
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if ceiling > 0 && v > 0 {
			idx = int(float64(v) / float64(ceiling) * 7)
		}
		runes[i] = sparklineChars[min(max(idx, 0), 7)]
	}
	return string(runes)
}
