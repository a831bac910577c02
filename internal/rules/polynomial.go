package rules

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/agbru/fractal/internal/errors"
	"github.com/agbru/fractal/internal/plane"
	"github.com/agbru/fractal/internal/simd"
)

// Polynomial pairs a function with its derivative for the Newton and Nova
// rules. The batched forms must perform the same floating-point steps as
// the scalar ones.
type Polynomial struct {
	Name    string
	Expr    string
	F       func(plane.Complex) plane.Complex
	DF      func(plane.Complex) plane.Complex
	FBatch  func(simd.Complex) simd.Complex
	DFBatch func(simd.Complex) simd.Complex
}

func (p Polynomial) String() string { return p.Expr }

var (
	one     = plane.Complex{Re: 1}
	two     = plane.Complex{Re: 2}
	oneLane = simd.SplatComplex(one)
	twoLane = simd.SplatComplex(two)
)

// CubicMinusOne is z³ - 1, whose basins form the classic three-root Newton fractal.
var CubicMinusOne = Polynomial{
	Name: "cubic",
	Expr: "z^3 - 1",
	F:    func(z plane.Complex) plane.Complex { return z.Mul(z).Mul(z).Sub(one) },
	DF:   func(z plane.Complex) plane.Complex { return z.Mul(z).Scale(3) },
	FBatch: func(z simd.Complex) simd.Complex {
		return z.Mul(z).Mul(z).Sub(oneLane)
	},
	DFBatch: func(z simd.Complex) simd.Complex { return z.Mul(z).Scale(3) },
}

// QuarticMinusOne is z⁴ - 1.
var QuarticMinusOne = Polynomial{
	Name: "quartic",
	Expr: "z^4 - 1",
	F: func(z plane.Complex) plane.Complex {
		z2 := z.Mul(z)
		return z2.Mul(z2).Sub(one)
	},
	DF: func(z plane.Complex) plane.Complex { return z.Mul(z).Mul(z).Scale(4) },
	FBatch: func(z simd.Complex) simd.Complex {
		z2 := z.Mul(z)
		return z2.Mul(z2).Sub(oneLane)
	},
	DFBatch: func(z simd.Complex) simd.Complex { return z.Mul(z).Mul(z).Scale(4) },
}

// CubicMinus2zPlus2 is z³ - 2z + 2. Newton's method has attracting
// 2-cycles for it, which show up as saturated regions.
var CubicMinus2zPlus2 = Polynomial{
	Name: "cubic-2z",
	Expr: "z^3 - 2z + 2",
	F: func(z plane.Complex) plane.Complex {
		return z.Mul(z).Mul(z).Sub(z.Scale(2)).Add(two)
	},
	DF: func(z plane.Complex) plane.Complex { return z.Mul(z).Scale(3).Sub(two) },
	FBatch: func(z simd.Complex) simd.Complex {
		return z.Mul(z).Mul(z).Sub(z.Scale(2)).Add(twoLane)
	},
	DFBatch: func(z simd.Complex) simd.Complex { return z.Mul(z).Scale(3).Sub(twoLane) },
}

var polynomials = map[string]Polynomial{
	CubicMinusOne.Name:     CubicMinusOne,
	QuarticMinusOne.Name:   QuarticMinusOne,
	CubicMinus2zPlus2.Name: CubicMinus2zPlus2,
}

// ParsePolynomial looks a polynomial up by name.
func ParsePolynomial(name string) (Polynomial, error) {
	p, ok := polynomials[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Polynomial{}, apperrors.NewConfigError("unknown polynomial %q (available: %s)",
			name, strings.Join(PolynomialNames(), ", "))
	}
	return p, nil
}

// PolynomialNames returns the registered polynomial names, sorted.
func PolynomialNames() []string {
	names := make([]string, 0, len(polynomials))
	for name := range polynomials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns "name (expr)".
func (p Polynomial) Describe() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Expr)
}
