package plane

import (
	"fmt"
	"math"

	apperrors "github.com/agbru/fractal/internal/errors"
)

// Navigation constants.
const (
	// InitialScale is the plane extent covered by the smaller image dimension
	// of a freshly constructed viewport.
	InitialScale = 1.0
	// BaseOffsetStep is the pan distance in plane units at scale 1.
	BaseOffsetStep = 0.025
	// ZoomFactor is the multiplicative scale step. It is strictly below 1,
	// so zoom is exponential.
	ZoomFactor = 0.85
)

// Mapper converts a pixel coordinate into a point on the complex plane.
// A Mapper captures the viewport state by value and is safe for concurrent use.
type Mapper func(x, y int) Complex

// Viewport is the rectangular window into the complex plane currently displayed.
//
// A Viewport is owned by a single control goroutine. Mutators must never run
// concurrently with a render; renders work on a Snapshot.
type Viewport struct {
	width  int
	height int
	scale  float64
	offset Complex

	initialScale  float64
	initialOffset Complex
}

// NewViewport creates a viewport with scale 1 centered on the origin.
// It returns a ConfigError when either dimension is not positive.
func NewViewport(width, height int) (*Viewport, error) {
	return NewViewportAt(width, height, InitialScale, Complex{})
}

// NewViewportAt creates a viewport with a custom initial scale and offset.
// Reset returns to these values.
func NewViewportAt(width, height int, scale float64, offset Complex) (*Viewport, error) {
	if width <= 0 || height <= 0 {
		return nil, apperrors.NewConfigError("viewport dimensions must be positive, got %dx%d", width, height)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, apperrors.NewConfigError("viewport scale must be positive and finite, got %g", scale)
	}
	if !offset.IsFinite() {
		return nil, apperrors.NewConfigError("viewport offset must be finite, got %s", offset)
	}
	return &Viewport{
		width:         width,
		height:        height,
		scale:         scale,
		offset:        offset,
		initialScale:  scale,
		initialOffset: offset,
	}, nil
}

// Width returns the image width in pixels.
func (v *Viewport) Width() int { return v.width }

// Height returns the image height in pixels.
func (v *Viewport) Height() int { return v.height }

// Scale returns the current scale.
func (v *Viewport) Scale() float64 { return v.scale }

// Offset returns the plane point shown at the image center.
func (v *Viewport) Offset() Complex { return v.offset }

// Pixels returns width*height.
func (v *Viewport) Pixels() int { return v.width * v.height }

// Snapshot returns a value copy of the viewport for a single frame.
func (v *Viewport) Snapshot() Viewport { return *v }

// Mapper returns the pixel-to-plane mapping for the current state:
//
//	d = min(width, height), ps = scale/d
//	re = ps*(x - width/2), im = ps*(height/2 - y)
//	point = (re, im) + offset
//
// The returned function performs no mutation. Later viewport changes do not
// affect it.
func (v *Viewport) Mapper() Mapper {
	pixelScale := v.scale / float64(min(v.width, v.height))
	halfWidth := float64(v.width) * 0.5
	halfHeight := float64(v.height) * 0.5
	offset := v.offset

	return func(x, y int) Complex {
		re := pixelScale * (float64(x) - halfWidth)
		im := pixelScale * (halfHeight - float64(y))
		return Complex{Re: re, Im: im}.Add(offset)
	}
}

// Translate pans the view one step in the given direction. The step is
// proportional to the current scale so panning speed looks constant.
func (v *Viewport) Translate(dir Direction) {
	v.offset = v.offset.Add(dir.Unit().Scale(BaseOffsetStep * v.scale))
}

// ZoomOut multiplies the scale by ZoomFactor.
func (v *Viewport) ZoomOut() { v.scale *= ZoomFactor }

// ZoomIn divides the scale by ZoomFactor.
func (v *Viewport) ZoomIn() { v.scale /= ZoomFactor }

// Reset restores the initial scale and offset exactly.
func (v *Viewport) Reset() {
	v.scale = v.initialScale
	v.offset = v.initialOffset
}

// Resize changes the image dimensions while keeping scale and offset.
func (v *Viewport) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return apperrors.NewConfigError("viewport dimensions must be positive, got %dx%d", width, height)
	}
	v.width, v.height = width, height
	return nil
}

// String formats the viewport for status lines.
func (v *Viewport) String() string {
	return fmt.Sprintf("%dx%d scale=%+e offset=%s", v.width, v.height, v.scale, v.offset)
}
