package plane

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/fractal/internal/errors"
)

func TestNewViewport(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		width   int
		height  int
		wantErr bool
	}{
		{"landscape", 1280, 720, false},
		{"single pixel", 1, 1, false},
		{"zero width", 0, 720, true},
		{"zero height", 1280, 0, true},
		{"negative", -4, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vp, err := NewViewport(tt.width, tt.height)
			if tt.wantErr {
				var cfgErr apperrors.ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected ConfigError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if vp.Scale() != InitialScale || vp.Offset() != (Complex{}) {
				t.Errorf("unexpected initial state: %s", vp)
			}
			if vp.Pixels() != tt.width*tt.height {
				t.Errorf("Pixels() = %d, want %d", vp.Pixels(), tt.width*tt.height)
			}
		})
	}
}

func TestNewViewportAt_RejectsBadScale(t *testing.T) {
	t.Parallel()
	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewViewportAt(10, 10, scale, Complex{}); !apperrors.IsConfigError(err) {
			t.Errorf("scale %g: expected config error, got %v", scale, err)
		}
	}
	if _, err := NewViewportAt(10, 10, 1, C(math.NaN(), 0)); !apperrors.IsConfigError(err) {
		t.Errorf("NaN offset: expected config error, got %v", err)
	}
}

func TestMapper_CenterMapsToOffset(t *testing.T) {
	t.Parallel()
	vp, err := NewViewportAt(640, 480, 2.5, C(-0.75, 0.1))
	if err != nil {
		t.Fatal(err)
	}
	got := vp.Mapper()(320, 240)
	if got != vp.Offset() {
		t.Errorf("center maps to %s, want %s", got, vp.Offset())
	}
}

func TestMapper_KnownPoints(t *testing.T) {
	t.Parallel()
	vp, _ := NewViewport(200, 100)
	m := vp.Mapper()
	// d = 100, pixel scale = 0.01
	tests := []struct {
		x, y int
		want Complex
	}{
		{0, 0, C(-1, 0.5)},
		{100, 50, C(0, 0)},
		{150, 25, C(0.5, 0.25)},
	}
	for _, tt := range tests {
		got := m(tt.x, tt.y)
		if math.Abs(got.Re-tt.want.Re) > 1e-12 || math.Abs(got.Im-tt.want.Im) > 1e-12 {
			t.Errorf("m(%d,%d) = %s, want %s", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMapper_CapturesStateByValue(t *testing.T) {
	t.Parallel()
	vp, _ := NewViewport(64, 64)
	m := vp.Mapper()
	before := m(10, 10)
	vp.Translate(Right)
	vp.ZoomIn()
	if after := m(10, 10); after != before {
		t.Errorf("mapper changed after viewport mutation: %s -> %s", before, after)
	}
}

// TestMapper_AffineMonotonic_PropertyBased checks that re grows with x, im
// shrinks with y and that one-pixel steps are uniform.
func TestMapper_AffineMonotonic_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("mapping is affine and monotonic", prop.ForAll(
		func(w, h int, scale, offRe, offIm float64) bool {
			vp, err := NewViewportAt(w, h, scale, C(offRe, offIm))
			if err != nil {
				return false
			}
			m := vp.Mapper()
			ps := scale / float64(min(w, h))
			tol := 1e-9 * (1 + math.Abs(offRe) + math.Abs(offIm) + scale)

			for x := 0; x+1 < w && x < 16; x++ {
				a, b := m(x, h/2), m(x+1, h/2)
				if !(b.Re > a.Re) || a.Im != b.Im {
					return false
				}
				if math.Abs((b.Re-a.Re)-ps) > tol {
					return false
				}
			}
			for y := 0; y+1 < h && y < 16; y++ {
				a, b := m(w/2, y), m(w/2, y+1)
				if !(b.Im < a.Im) || a.Re != b.Re {
					return false
				}
				if math.Abs((a.Im-b.Im)-ps) > tol {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 2000),
		gen.IntRange(2, 2000),
		gen.Float64Range(1e-6, 10),
		gen.Float64Range(-2, 2),
		gen.Float64Range(-2, 2),
	))

	properties.Property("even-sized center maps to offset", prop.ForAll(
		func(hw, hh int, scale, offRe float64) bool {
			vp, err := NewViewportAt(2*hw, 2*hh, scale, C(offRe, -offRe))
			if err != nil {
				return false
			}
			return vp.Mapper()(hw, hh) == vp.Offset()
		},
		gen.IntRange(1, 1000),
		gen.IntRange(1, 1000),
		gen.Float64Range(1e-6, 10),
		gen.Float64Range(-2, 2),
	))

	properties.TestingRun(t)
}

func TestTranslate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		dir  Direction
		want Complex
	}{
		{Up, C(0, BaseOffsetStep)},
		{Down, C(0, -BaseOffsetStep)},
		{Left, C(-BaseOffsetStep, 0)},
		{Right, C(BaseOffsetStep, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			t.Parallel()
			vp, _ := NewViewport(10, 10)
			vp.Translate(tt.dir)
			if vp.Offset() != tt.want {
				t.Errorf("offset = %s, want %s", vp.Offset(), tt.want)
			}
		})
	}
}

func TestTranslate_ScalesWithZoom(t *testing.T) {
	t.Parallel()
	vp, _ := NewViewportAt(10, 10, 0.5, Complex{})
	vp.Translate(Right)
	if got, want := vp.Offset().Re, BaseOffsetStep*0.5; got != want {
		t.Errorf("offset.Re = %g, want %g", got, want)
	}
}

func TestZoom(t *testing.T) {
	t.Parallel()
	vp, _ := NewViewport(10, 10)
	vp.ZoomOut()
	if vp.Scale() != ZoomFactor {
		t.Errorf("ZoomOut scale = %g, want %g", vp.Scale(), ZoomFactor)
	}
	vp.ZoomIn()
	if math.Abs(vp.Scale()-InitialScale) > 1e-15 {
		t.Errorf("ZoomOut then ZoomIn scale = %g, want %g", vp.Scale(), InitialScale)
	}

	for range 20 {
		vp.ZoomIn()
	}
	for range 20 {
		vp.ZoomOut()
	}
	if math.Abs(vp.Scale()-InitialScale) > 1e-12 {
		t.Errorf("20 zoom round trips drifted to %g", vp.Scale())
	}
}

func TestReset_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("reset restores initial state after any navigation", prop.ForAll(
		func(ops []int) bool {
			vp, _ := NewViewportAt(320, 200, 1.5, C(-0.5, 0.25))
			for _, op := range ops {
				switch op {
				case 4:
					vp.ZoomIn()
				case 5:
					vp.ZoomOut()
				default:
					vp.Translate(Direction(op))
				}
			}
			vp.Reset()
			return vp.Scale() == 1.5 && vp.Offset() == C(-0.5, 0.25)
		},
		gen.SliceOf(gen.IntRange(0, 5)),
	))

	properties.TestingRun(t)
}

func TestResize(t *testing.T) {
	t.Parallel()
	vp, _ := NewViewport(10, 10)
	if err := vp.Resize(0, 5); !apperrors.IsConfigError(err) {
		t.Errorf("Resize(0,5) error = %v, want config error", err)
	}
	if err := vp.Resize(30, 20); err != nil {
		t.Fatal(err)
	}
	if vp.Width() != 30 || vp.Height() != 20 {
		t.Errorf("Resize did not apply: %s", vp)
	}
}

func TestSnapshot_IsIndependent(t *testing.T) {
	t.Parallel()
	vp, _ := NewViewport(10, 10)
	snap := vp.Snapshot()
	vp.ZoomOut()
	if snap.Scale() != InitialScale {
		t.Errorf("snapshot scale changed to %g", snap.Scale())
	}
}

func TestNudgeSeed(t *testing.T) {
	t.Parallel()
	got := NudgeSeed(InitialSeed, Up, 2)
	want := C(InitialSeed.Re, InitialSeed.Im+SeedStep*2)
	if got != want {
		t.Errorf("NudgeSeed = %s, want %s", got, want)
	}
}
