package plane

import (
	"math"
	"testing"
)

func TestComplexArithmetic(t *testing.T) {
	t.Parallel()
	a, b := C(3, 2), C(1, -1)
	tests := []struct {
		name string
		got  Complex
		want Complex
	}{
		{"add", a.Add(b), C(4, 1)},
		{"sub", a.Sub(b), C(2, 3)},
		{"mul", a.Mul(b), C(5, -1)},
		{"div", a.Div(b), C(0.5, 2.5)},
		{"scale", a.Scale(2), C(6, 4)},
		{"i squared", C(0, 1).Mul(C(0, 1)), C(-1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestComplexAgreesWithComplex128(t *testing.T) {
	t.Parallel()
	for x := -10; x < 10; x++ {
		for y := -10; y < 10; y++ {
			z := C(0.33+float64(x), 0.67+float64(y))
			w := C(0.5-float64(y), 0.25+float64(x))
			zc, wc := complex(z.Re, z.Im), complex(w.Re, w.Im)

			checkClose(t, "mul", z.Mul(w), zc*wc)
			checkClose(t, "div", z.Div(w), zc/wc)
			if math.Abs(z.Abs()-math.Hypot(z.Re, z.Im)) > 1e-12 {
				t.Errorf("Abs(%s) = %g", z, z.Abs())
			}
		}
	}
}

func checkClose(t *testing.T, op string, got Complex, want complex128) {
	t.Helper()
	tol := 1e-12 * (1 + math.Abs(real(want)) + math.Abs(imag(want)))
	if math.Abs(got.Re-real(want)) > tol || math.Abs(got.Im-imag(want)) > tol {
		t.Errorf("%s: got %s, want %v", op, got, want)
	}
}

func TestDivByZeroDoesNotPanic(t *testing.T) {
	t.Parallel()
	if C(1, 0).Div(Complex{}).IsFinite() {
		t.Error("division by zero should not be finite")
	}
}

func TestParseComplex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Complex
		wantErr bool
	}{
		{"-0.7768,0.1374", C(-0.7768, 0.1374), false},
		{"-0.7768+0.1374i", C(-0.7768, 0.1374), false},
		{" 1 - 2i ", C(1, -2), false},
		{"0.5", C(0.5, 0), false},
		{"2i", C(0, 2), false},
		{"-i", C(0, -1), false},
		{"1+i", C(1, 1), false},
		{"1e-3-2e-2i", C(1e-3, -2e-2), false},
		{"", Complex{}, true},
		{"abc", Complex{}, true},
		{"1,x", Complex{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseComplex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseComplex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseComplex(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestComplexString(t *testing.T) {
	t.Parallel()
	if got := InitialSeed.String(); got != "-0.7768+0.1374i" {
		t.Errorf("String() = %q", got)
	}
}

func TestDirectionUnit(t *testing.T) {
	t.Parallel()
	if Up.Unit() != C(0, 1) || Down.Unit() != C(0, -1) || Left.Unit() != C(-1, 0) || Right.Unit() != C(1, 0) {
		t.Error("unexpected direction unit vectors")
	}
	if Direction(42).Unit() != (Complex{}) || Direction(42).String() != "unknown" {
		t.Error("unknown direction should map to zero")
	}
}

func TestComplexTextRoundTrip(t *testing.T) {
	t.Parallel()
	text, err := InitialSeed.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var z Complex
	if err := z.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if z != InitialSeed {
		t.Errorf("round trip = %s, want %s", z, InitialSeed)
	}
	if err := z.UnmarshalText([]byte("nope")); err == nil {
		t.Error("expected error for invalid literal")
	}
}
