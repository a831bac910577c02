package rules

import (
	"strings"

	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/plane"
	"github.com/agbru/fractal/internal/simd"
)

// Kind selects an iteration rule.
type Kind int

const (
	KindJulia Kind = iota
	KindMandelbrot
	KindNewton
	KindNova
)

var kindNames = [...]string{
	KindJulia:      "julia",
	KindMandelbrot: "mandelbrot",
	KindNewton:     "newton",
	KindNova:       "nova",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds returns every rule kind in display order.
func Kinds() []Kind {
	return []Kind{KindJulia, KindMandelbrot, KindNewton, KindNova}
}

// ParseKind converts a rule name into a Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, apperrors.NewConfigError("unknown rule %q (available: julia, mandelbrot, newton, nova)", name)
}

// UsesPolynomial reports whether the rule iterates a Newton step.
func (k Kind) UsesPolynomial() bool {
	return k == KindNewton || k == KindNova
}

// UsesSeed reports whether the seed influences the rule.
func (k Kind) UsesSeed() bool {
	return k == KindJulia || k == KindNova
}

// Rule is a fully parameterized iteration rule. The zero value is Julia.
//
// For Julia and Nova the sample is the starting point and the seed is the
// constant. For Mandelbrot the sample is the constant. Newton ignores the seed.
type Rule struct {
	Kind Kind
	Poly Polynomial
}

// New builds a Rule, defaulting Poly to CubicMinusOne for the Newton family.
func New(kind Kind, poly Polynomial) Rule {
	if kind.UsesPolynomial() && poly.F == nil {
		poly = CubicMinusOne
	}
	return Rule{Kind: kind, Poly: poly}
}

// Count returns the iteration count of sample z under the given seed.
func (r Rule) Count(z, seed plane.Complex) uint8 {
	switch r.Kind {
	case KindMandelbrot:
		return Mandelbrot(z)
	case KindNewton:
		return Newton(z, r.poly())
	case KindNova:
		return Nova(z, seed, r.poly())
	default:
		return Julia(z, seed)
	}
}

// CountBatch is Count applied to Lanes samples sharing one seed.
func (r Rule) CountBatch(z simd.Complex, seed plane.Complex) [simd.Lanes]uint8 {
	switch r.Kind {
	case KindMandelbrot:
		return MandelbrotBatch(z)
	case KindNewton:
		return NewtonBatch(z, r.poly())
	case KindNova:
		return NovaBatch(z, simd.SplatComplex(seed), r.poly())
	default:
		return JuliaBatch(z, simd.SplatComplex(seed))
	}
}

func (r Rule) poly() Polynomial {
	if r.Poly.F == nil {
		return CubicMinusOne
	}
	return r.Poly
}

func (r Rule) String() string {
	if r.Kind.UsesPolynomial() {
		return r.Kind.String() + " " + r.poly().Expr
	}
	return r.Kind.String()
}
