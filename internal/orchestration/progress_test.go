package orchestration

import (
	"testing"
)

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()
	for _, n := range []int{-1, 0, 1, 4} {
		agg := NewProgressAggregator(n)
		if (agg == nil) != (n <= 0) {
			t.Errorf("NewProgressAggregator(%d) = %v", n, agg)
			continue
		}
		if agg != nil && agg.NumStrategies() != n {
			t.Errorf("NumStrategies() = %d, want %d", agg.NumStrategies(), n)
		}
	}
}

func TestProgressAggregator_Apply(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator(2)

	steps := []struct {
		update ProgressUpdate
		want   float64
	}{
		{ProgressUpdate{Index: 0, Value: 0.5}, 0.25},
		{ProgressUpdate{Index: 1, Value: 1}, 0.75},
		{ProgressUpdate{Index: 7, Value: 1}, 0.75},
		{ProgressUpdate{Index: 0, Value: 1}, 1},
	}
	for i, s := range steps {
		if got := agg.Apply(s.update); got != s.want {
			t.Errorf("step %d: Apply(%+v) = %f, want %f", i, s.update, got, s.want)
		}
	}
	if agg.CalculateAverage() != 1 || agg.GetETA() != 0 {
		t.Errorf("complete: average %f, ETA %v", agg.CalculateAverage(), agg.GetETA())
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 3)
	ch <- ProgressUpdate{Index: 0, Value: 0.1}
	ch <- ProgressUpdate{Index: 1, Value: 0.2}
	close(ch)
	DrainChannel(ch)
	if len(ch) != 0 {
		t.Errorf("channel still holds %d updates", len(ch))
	}
}
