package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA bounds estimates produced from very slow progress rates.
const maxETA = 24 * time.Hour

// ProgressState tracks the completion fraction of several concurrent tasks
// (verification strategies, calibration candidates, bench frames).
type ProgressState struct {
	mu         sync.Mutex
	numTasks   int
	progresses []float64
}

// NewProgressState creates a state for n tasks, all at zero.
func NewProgressState(n int) *ProgressState {
	if n < 0 {
		n = 0
	}
	return &ProgressState{numTasks: n, progresses: make([]float64, n)}
}

// Update sets task i's progress, clamped to [0, 1]. Out-of-range indices
// are ignored.
func (ps *ProgressState) Update(i int, progress float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if i < 0 || i >= ps.numTasks {
		return
	}
	ps.progresses[i] = min(max(progress, 0), 1)
}

// CalculateAverage returns the mean progress over all tasks.
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.averageLocked()
}

func (ps *ProgressState) averageLocked() float64 {
	if ps.numTasks == 0 {
		return 0
	}
	var sum float64
	for _, p := range ps.progresses {
		sum += p
	}
	return sum / float64(ps.numTasks)
}

// ProgressWithETA extends ProgressState with a smoothed progress rate.
type ProgressWithETA struct {
	*ProgressState
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // fraction per second
}

// NewProgressWithETA creates a tracker for n tasks.
func NewProgressWithETA(n int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(n),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records task i's progress and returns the new average and
// the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(i int, progress float64) (float64, time.Duration) {
	p.Update(i, progress)

	p.mu.Lock()
	avg := p.averageLocked()
	now := time.Now()
	if elapsed := now.Sub(p.lastUpdate).Seconds(); elapsed > 0 && avg > p.lastProgress {
		instant := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = instant
		} else {
			p.progressRate = 0.3*instant + 0.7*p.progressRate
		}
		p.lastProgress = avg
		p.lastUpdate = now
	}
	p.mu.Unlock()

	return avg, p.GetETA()
}

// GetETA estimates the remaining time from the smoothed rate; zero means
// not enough data yet.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1 - p.averageLocked()
	if remaining <= 0 {
		return 0
	}
	secs := remaining / p.progressRate
	if secs > maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(secs * float64(time.Second))
}

// Elapsed returns the time since the tracker was created.
func (p *ProgressWithETA) Elapsed() time.Duration { return time.Since(p.startTime) }

// ProgressBar renders a bar of length cells.
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}
