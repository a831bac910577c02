package rules

import (
	"github.com/agbru/fractal/internal/plane"
	"github.com/agbru/fractal/internal/simd"
)

// Iteration budget and escape predicates.
const (
	// MaxIterations is both the iteration budget and the saturation sentinel.
	// A sample that never escapes or converges returns exactly this value.
	MaxIterations uint8 = 255

	// EscapeRadiusSq is the squared escape radius of the divergence family.
	EscapeRadiusSq = 4.0

	// ScalarEpsilon bounds |z_next - z| for convergence in the scalar path.
	ScalarEpsilon = 1e-5

	// BatchEpsilon bounds |z_next - z|² for convergence in the batched path.
	// It equals ScalarEpsilon squared, so both paths stop on the same step.
	BatchEpsilon = 1e-10
)

// Julia counts the iterations of z ← z² + c before |z|² exceeds 4.
func Julia(z, c plane.Complex) uint8 {
	for i := range MaxIterations {
		if z.AbsSq() > EscapeRadiusSq {
			return i
		}
		z = z.Mul(z).Add(c)
	}
	return MaxIterations
}

// Mandelbrot runs the Julia iteration from the origin with c as the constant.
func Mandelbrot(c plane.Complex) uint8 {
	return Julia(plane.Complex{}, c)
}

// Nova counts the iterations of the relaxed Newton step
// z ← z - f(z)/f'(z) + c until successive values are closer than ScalarEpsilon.
func Nova(z, c plane.Complex, p Polynomial) uint8 {
	for i := range MaxIterations {
		next := z.Sub(p.F(z).Div(p.DF(z))).Add(c)
		if next.Sub(z).Abs() < ScalarEpsilon {
			return i
		}
		z = next
	}
	return MaxIterations
}

// Newton is Nova with c = 0: plain Newton-Raphson root finding.
func Newton(z plane.Complex, p Polynomial) uint8 {
	return Nova(z, plane.Complex{}, p)
}

var (
	batchEscape  = simd.Splat(EscapeRadiusSq)
	batchEpsilon = simd.Splat(BatchEpsilon)
)

// JuliaBatch runs Julia on Lanes independent (z, c) pairs. Lane i of the
// result equals Julia(z.Lane(i), c.Lane(i)).
func JuliaBatch(z, c simd.Complex) [simd.Lanes]uint8 {
	cnt := simd.NewCounter()
	for range MaxIterations {
		// Written as "not escaped" so NaN lanes keep running like the scalar loop.
		cnt.Step(z.NormSq().Greater(batchEscape).Not())
		if cnt.Done() {
			break
		}
		z = z.Mul(z).Add(c)
	}
	return cnt.Counts()
}

// MandelbrotBatch runs Mandelbrot on Lanes independent constants.
func MandelbrotBatch(c simd.Complex) [simd.Lanes]uint8 {
	return JuliaBatch(simd.Complex{}, c)
}

// NovaBatch runs Nova on Lanes independent (z, c) pairs.
func NovaBatch(z, c simd.Complex, p Polynomial) [simd.Lanes]uint8 {
	cnt := simd.NewCounter()
	for range MaxIterations {
		next := z.Sub(p.FBatch(z).Div(p.DFBatch(z))).Add(c)
		cnt.Step(next.Sub(z).NormSq().Less(batchEpsilon).Not())
		if cnt.Done() {
			break
		}
		z = next
	}
	return cnt.Counts()
}

// NewtonBatch runs Newton on Lanes independent starting points.
func NewtonBatch(z simd.Complex, p Polynomial) [simd.Lanes]uint8 {
	return NovaBatch(z, simd.Complex{}, p)
}
