//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fractal/internal/format"
	"github.com/agbru/fractal/internal/orchestration"
)

const (
	// ProgressRefreshRate is how often the bar is redrawn. The spinner glyph
	// advances at the same interval.
	ProgressRefreshRate = 200 * time.Millisecond
	ProgressBarWidth    = 40
)

// Spinner is the part of a terminal spinner DisplayProgress drives.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

// termSpinner is a briandowns spinner whose suffix can be swapped while it
// animates.
type termSpinner struct {
	*spinner.Spinner
}

func (t termSpinner) UpdateSuffix(suffix string) {
	t.Lock()
	defer t.Unlock()
	t.Suffix = suffix
}

// newSpinner is replaced in tests.
var newSpinner = func(options ...spinner.Option) Spinner {
	return termSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)}
}

// DisplayProgress animates a spinner and an overall progress bar fed by
// progressChan, and returns once the channel is closed. wg.Done is always
// called. With no strategies to track it only drains the channel.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numStrategies int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numStrategies)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(0, 0))
	s.Start()

	redraw := time.NewTicker(ProgressRefreshRate)
	defer redraw.Stop()
	for {
		select {
		case update, open := <-progressChan:
			if !open {
				s.UpdateSuffix(progressSuffix(1, 0))
				s.Stop()
				fmt.Fprintln(out)
				return
			}
			agg.Apply(update)
		case <-redraw.C:
			s.UpdateSuffix(progressSuffix(agg.CalculateAverage(), agg.GetETA()))
		}
	}
}

func progressSuffix(progress float64, eta time.Duration) string {
	return " Rendering... " + format.FormatProgressBarWithETA(progress, eta, ProgressBarWidth)
}
