package simd

// Lanes is the number of parallel slots in a batch.
const Lanes = 8

// F64x8 holds 8 float64 values for SIMD-style operations.
// Fixed-size arrays with simple per-element loops are what the Go compiler
// auto-vectorizes best, so every operation is written that way.
type F64x8 [Lanes]float64

// Splat creates an F64x8 with all elements set to n.
func Splat(n float64) F64x8 {
	var result F64x8
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs element-wise addition.
func (v F64x8) Add(other F64x8) F64x8 {
	var result F64x8
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise subtraction.
func (v F64x8) Sub(other F64x8) F64x8 {
	var result F64x8
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs element-wise multiplication.
func (v F64x8) Mul(other F64x8) F64x8 {
	var result F64x8
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// Div performs element-wise division.
// Division by zero results in +Inf, -Inf, or NaN according to IEEE 754.
func (v F64x8) Div(other F64x8) F64x8 {
	var result F64x8
	for i := range v {
		result[i] = v[i] / other[i]
	}
	return result
}

// MulScalar multiplies every element by k.
func (v F64x8) MulScalar(k float64) F64x8 {
	var result F64x8
	for i := range v {
		result[i] = v[i] * k
	}
	return result
}

// Less returns the lane mask v[i] < other[i].
// Lanes holding NaN compare false.
func (v F64x8) Less(other F64x8) Mask {
	var m Mask
	for i := range v {
		m[i] = v[i] < other[i]
	}
	return m
}

// Greater returns the lane mask v[i] > other[i].
func (v F64x8) Greater(other F64x8) Mask {
	var m Mask
	for i := range v {
		m[i] = v[i] > other[i]
	}
	return m
}

// GreaterEqual returns the lane mask v[i] >= other[i].
func (v F64x8) GreaterEqual(other F64x8) Mask {
	var m Mask
	for i := range v {
		m[i] = v[i] >= other[i]
	}
	return m
}
