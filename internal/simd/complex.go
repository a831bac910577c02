package simd

import "github.com/agbru/fractal/internal/plane"

// Complex is a batch of Lanes complex values stored as two parallel lanes.
//
// Every operation performs, per lane, exactly the floating-point steps of the
// matching plane.Complex method, so lane i of a result is bit-identical to the
// scalar result for lane i of the inputs.
type Complex struct {
	Re F64x8
	Im F64x8
}

// SplatComplex broadcasts z into every lane.
func SplatComplex(z plane.Complex) Complex {
	return Complex{Re: Splat(z.Re), Im: Splat(z.Im)}
}

// Load packs up to Lanes points into a batch. A short input is padded by
// repeating its last element; an empty input yields the zero batch.
// It returns the number of logical lanes.
func Load(points []plane.Complex) (Complex, int) {
	var b Complex
	n := min(len(points), Lanes)
	if n == 0 {
		return b, 0
	}
	for i := range Lanes {
		p := points[min(i, n-1)]
		b.Re[i] = p.Re
		b.Im[i] = p.Im
	}
	return b, n
}

// Lane extracts lane i as a scalar.
func (z Complex) Lane(i int) plane.Complex {
	return plane.Complex{Re: z.Re[i], Im: z.Im[i]}
}

// Add returns z + w lane-wise.
func (z Complex) Add(w Complex) Complex {
	return Complex{Re: z.Re.Add(w.Re), Im: z.Im.Add(w.Im)}
}

// Sub returns z - w lane-wise.
func (z Complex) Sub(w Complex) Complex {
	return Complex{Re: z.Re.Sub(w.Re), Im: z.Im.Sub(w.Im)}
}

// Mul returns z * w lane-wise.
func (z Complex) Mul(w Complex) Complex {
	var r Complex
	for i := range Lanes {
		r.Re[i] = float64(z.Re[i]*w.Re[i]) - float64(z.Im[i]*w.Im[i])
		r.Im[i] = float64(z.Im[i]*w.Re[i]) + float64(z.Re[i]*w.Im[i])
	}
	return r
}

// Div returns z / w lane-wise using the textbook formula.
func (z Complex) Div(w Complex) Complex {
	den := w.NormSq()
	var r Complex
	for i := range Lanes {
		re := float64(z.Re[i]*w.Re[i]) + float64(z.Im[i]*w.Im[i])
		im := float64(z.Im[i]*w.Re[i]) - float64(z.Re[i]*w.Im[i])
		r.Re[i] = re / den[i]
		r.Im[i] = im / den[i]
	}
	return r
}

// Scale multiplies every lane by the real factor k.
func (z Complex) Scale(k float64) Complex {
	return Complex{Re: z.Re.MulScalar(k), Im: z.Im.MulScalar(k)}
}

// NormSq returns the per-lane squared norm.
func (z Complex) NormSq() F64x8 {
	var r F64x8
	for i := range Lanes {
		r[i] = float64(z.Re[i]*z.Re[i]) + float64(z.Im[i]*z.Im[i])
	}
	return r
}
