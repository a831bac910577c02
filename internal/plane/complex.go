package plane

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/agbru/fractal/internal/errors"
)

// Complex is a point of the complex plane. It is an immutable value type.
//
// Arithmetic is spelled out component-wise rather than using complex128 so
// that the lane-wise implementation in package simd can reproduce every
// result bit for bit. The explicit float64 conversions around products
// keep the compiler from fusing them into FMA instructions.
type Complex struct {
	Re float64
	Im float64
}

// C is shorthand for Complex{re, im}.
func C(re, im float64) Complex { return Complex{Re: re, Im: im} }

// Add returns z + w.
func (z Complex) Add(w Complex) Complex {
	return Complex{Re: z.Re + w.Re, Im: z.Im + w.Im}
}

// Sub returns z - w.
func (z Complex) Sub(w Complex) Complex {
	return Complex{Re: z.Re - w.Re, Im: z.Im - w.Im}
}

// Mul returns z * w.
func (z Complex) Mul(w Complex) Complex {
	return Complex{
		Re: float64(z.Re*w.Re) - float64(z.Im*w.Im),
		Im: float64(z.Im*w.Re) + float64(z.Re*w.Im),
	}
}

// Div returns z / w using ((a·c+b·d) + (b·c−a·d)i) / (c²+d²).
// Division by zero yields IEEE infinities or NaN, never a panic.
func (z Complex) Div(w Complex) Complex {
	den := w.AbsSq()
	re := float64(z.Re*w.Re) + float64(z.Im*w.Im)
	im := float64(z.Im*w.Re) - float64(z.Re*w.Im)
	return Complex{Re: re / den, Im: im / den}
}

// Scale returns z multiplied by the real factor k.
func (z Complex) Scale(k float64) Complex {
	return Complex{Re: z.Re * k, Im: z.Im * k}
}

// AbsSq returns the squared norm |z|².
func (z Complex) AbsSq() float64 {
	return float64(z.Re*z.Re) + float64(z.Im*z.Im)
}

// Abs returns the magnitude |z|.
func (z Complex) Abs() float64 {
	return math.Sqrt(z.AbsSq())
}

// IsFinite reports whether both components are finite.
func (z Complex) IsFinite() bool {
	return !math.IsNaN(z.Re) && !math.IsInf(z.Re, 0) &&
		!math.IsNaN(z.Im) && !math.IsInf(z.Im, 0)
}

// String formats z as "re+imi", for example "-0.7768+0.1374i".
func (z Complex) String() string {
	return fmt.Sprintf("%g%+gi", z.Re, z.Im)
}

// MarshalText implements encoding.TextMarshaler.
func (z Complex) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseComplex.
func (z *Complex) UnmarshalText(text []byte) error {
	v, err := ParseComplex(string(text))
	if err != nil {
		return err
	}
	*z = v
	return nil
}

// ParseComplex parses a complex literal. Accepted forms are "re,im",
// "re+imi", "re-imi", a bare real "re" and a bare imaginary "imi".
func ParseComplex(s string) (Complex, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return Complex{}, apperrors.NewConfigError("empty complex literal")
	}

	if re, im, ok := strings.Cut(s, ","); ok {
		return parseParts(s, re, im)
	}

	if !strings.HasSuffix(s, "i") {
		re, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Complex{}, apperrors.NewConfigError("invalid complex literal %q", s)
		}
		return Complex{Re: re}, nil
	}

	body := strings.TrimSuffix(s, "i")
	// Split at the last sign that is not the leading sign or part of an exponent.
	split := -1
	for i := len(body) - 1; i > 0; i-- {
		if (body[i] == '+' || body[i] == '-') && body[i-1] != 'e' && body[i-1] != 'E' {
			split = i
			break
		}
	}
	if split < 0 {
		return parseParts(s, "0", imaginaryPart(body))
	}
	return parseParts(s, body[:split], imaginaryPart(body[split:]))
}

// imaginaryPart maps the bare forms "i", "+i" and "-i" to explicit numbers.
func imaginaryPart(s string) string {
	switch s {
	case "", "+":
		return "1"
	case "-":
		return "-1"
	}
	return s
}

func parseParts(literal, reStr, imStr string) (Complex, error) {
	re, err := strconv.ParseFloat(reStr, 64)
	if err != nil {
		return Complex{}, apperrors.NewConfigError("invalid real part in complex literal %q", literal)
	}
	im, err := strconv.ParseFloat(imStr, 64)
	if err != nil {
		return Complex{}, apperrors.NewConfigError("invalid imaginary part in complex literal %q", literal)
	}
	return Complex{Re: re, Im: im}, nil
}
