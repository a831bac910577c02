package orchestration

import (
	"github.com/agbru/fractal/internal/format"
)

// ProgressAggregator folds per-strategy ProgressUpdates into one overall
// fraction with an ETA, for the CLI spinner.
type ProgressAggregator struct {
	*format.ProgressWithETA
	strategies int
}

// NewProgressAggregator tracks n strategies; it returns nil when there is
// nothing to track.
func NewProgressAggregator(n int) *ProgressAggregator {
	if n <= 0 {
		return nil
	}
	return &ProgressAggregator{ProgressWithETA: format.NewProgressWithETA(n), strategies: n}
}

// Apply records u and returns the new overall fraction.
func (a *ProgressAggregator) Apply(u ProgressUpdate) float64 {
	avg, _ := a.UpdateWithETA(u.Index, u.Value)
	return avg
}

// NumStrategies returns how many strategies feed the aggregator.
func (a *ProgressAggregator) NumStrategies() int { return a.strategies }

// DrainChannel discards updates until ch is closed, so senders never block
// when no reporter is attached.
func DrainChannel(ch <-chan ProgressUpdate) {
	for range ch {
	}
}
