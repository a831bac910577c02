package calibration

import (
	"fmt"
	"runtime"
	"time"

	"github.com/agbru/fractal/internal/simd"
)

// Result is the timing of one worker count.
type Result struct {
	Workers int
	Frames  int
	Best    time.Duration // fastest frame
	Mean    time.Duration
	Err     error
}

// Profile describes a calibration run and the host it ran on. Profiles live
// in memory only.
type Profile struct {
	NumCPU    int
	GOARCH    string
	GOOS      string
	GoVersion string
	Backend   string

	Width, Height int
	Strategy      string
	Rule          string

	Results        []Result
	OptimalWorkers int
	CalibratedAt   time.Time
	Elapsed        time.Duration
}

// NewProfile creates a profile for the current host.
func NewProfile() *Profile {
	return &Profile{
		NumCPU:       runtime.NumCPU(),
		GOARCH:       runtime.GOARCH,
		GOOS:         runtime.GOOS,
		GoVersion:    runtime.Version(),
		Backend:      simd.DetectBackend().String(),
		CalibratedAt: time.Now(),
	}
}

// Best returns the result for OptimalWorkers and whether one exists.
func (p *Profile) Best() (Result, bool) {
	if p == nil {
		return Result{}, false
	}
	for _, r := range p.Results {
		if r.Workers == p.OptimalWorkers && r.Err == nil {
			return r, true
		}
	}
	return Result{}, false
}

// String returns a one-line summary.
func (p *Profile) String() string {
	if p == nil {
		return "calibration: none"
	}
	best, _ := p.Best()
	return fmt.Sprintf("calibration: %dx%d %s %s on %s/%s (%d CPUs, %s): optimal workers=%d (%s/frame)",
		p.Width, p.Height, p.Rule, p.Strategy, p.GOOS, p.GOARCH, p.NumCPU, p.Backend,
		p.OptimalWorkers, best.Best)
}
