// Package simd provides fixed-width batches of float64 lanes and the complex
// arithmetic the batched iteration rules run on.
package simd
