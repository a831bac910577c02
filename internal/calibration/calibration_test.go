package calibration

import (
	"bytes"
	"context"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/agbru/fractal/internal/palette"
	"github.com/agbru/fractal/internal/plane"
	"github.com/agbru/fractal/internal/render"
	"github.com/agbru/fractal/internal/rules"
)

func testScene(t *testing.T, w, h int) render.Scene {
	t.Helper()
	vp, err := plane.NewViewport(w, h)
	if err != nil {
		t.Fatal(err)
	}
	pal, err := palette.NewRegistry().Get(palette.DefaultName)
	if err != nil {
		t.Fatal(err)
	}
	return render.Scene{
		Viewport: vp.Snapshot(),
		Rule:     rules.New(rules.KindJulia, rules.Polynomial{}),
		Palette:  pal,
		Seed:     plane.InitialSeed,
		Batched:  true,
	}
}

func TestGenerateWorkerCandidates(t *testing.T) {
	t.Parallel()
	numCPU := runtime.NumCPU()
	got := GenerateWorkerCandidates(100000)

	if got[0] != 1 {
		t.Errorf("candidates should start with 1, got %v", got)
	}
	if !slices.IsSorted(got) {
		t.Errorf("candidates not sorted: %v", got)
	}
	if len(slices.Compact(slices.Clone(got))) != len(got) {
		t.Errorf("candidates contain duplicates: %v", got)
	}
	if numCPU > 1 && !slices.Contains(got, numCPU) {
		t.Errorf("candidates %v should include the core count %d", got, numCPU)
	}
	if numCPU == 1 && len(got) != 1 {
		t.Errorf("single core should only test 1 worker, got %v", got)
	}
}

func TestGenerateWorkerCandidates_ClampedToHeight(t *testing.T) {
	t.Parallel()
	for _, w := range GenerateWorkerCandidates(2) {
		if w < 1 || w > 2 {
			t.Errorf("candidate %d outside [1, 2]", w)
		}
	}
}

func TestGenerateQuickWorkerCandidates(t *testing.T) {
	t.Parallel()
	quick := GenerateQuickWorkerCandidates(100000)
	full := GenerateWorkerCandidates(100000)
	if len(quick) > len(full) {
		t.Errorf("quick set %v larger than full set %v", quick, full)
	}
	if quick[0] != 1 {
		t.Errorf("quick set should start with 1, got %v", quick)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()
	scene := testScene(t, 40, 24)

	var calls []int
	profile, err := Run(context.Background(), scene, Options{Candidates: []int{1, 2, 5}, Frames: 2},
		func(done, total int) {
			if total != 3 {
				t.Errorf("total = %d, want 3", total)
			}
			calls = append(calls, done)
		})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(calls, []int{1, 2, 3}) {
		t.Errorf("progress calls = %v", calls)
	}
	if len(profile.Results) != 3 {
		t.Fatalf("Results = %d, want 3", len(profile.Results))
	}
	for _, r := range profile.Results {
		if r.Err != nil {
			t.Errorf("workers=%d: %v", r.Workers, r.Err)
		}
		if r.Frames != 2 || r.Best <= 0 || r.Best > r.Mean {
			t.Errorf("workers=%d: implausible timing %+v", r.Workers, r)
		}
	}
	if !slices.Contains([]int{1, 2, 5}, profile.OptimalWorkers) {
		t.Errorf("OptimalWorkers = %d", profile.OptimalWorkers)
	}
	if best, ok := profile.Best(); !ok || best.Workers != profile.OptimalWorkers {
		t.Errorf("Best() = %+v, %v", best, ok)
	}
	if profile.Strategy != render.StrategyBatched || profile.Width != 40 || profile.Height != 24 {
		t.Errorf("profile scene fields = %+v", profile)
	}
	if !strings.Contains(profile.String(), "optimal workers=") {
		t.Errorf("String() = %q", profile.String())
	}
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, testScene(t, 16, 16), Options{Candidates: []int{1}}, nil); err == nil {
		t.Error("expected context error")
	}
}

func TestPrintResults(t *testing.T) {
	t.Parallel()
	profile, err := Run(context.Background(), testScene(t, 16, 8), Options{Candidates: []int{1, 2}, Frames: 1}, nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	PrintResults(&buf, profile)
	PrintSummary(&buf, profile)
	out := buf.String()
	for _, want := range []string{"Calibration Summary", "Workers", "(Optimal)", "workers="} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestProfileNil(t *testing.T) {
	t.Parallel()
	var p *Profile
	if _, ok := p.Best(); ok {
		t.Error("nil profile should have no best result")
	}
	if p.String() != "calibration: none" {
		t.Errorf("String() = %q", p.String())
	}
}
