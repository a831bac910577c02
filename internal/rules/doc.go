// Package rules implements the escape-time iteration rules.
//
// Each rule has a scalar form returning one count and a batched form that
// advances simd.Lanes samples together. Batched lanes freeze as soon as they
// escape or converge, so a batch reproduces the per-lane scalar counts. Counts
// saturate at MaxIterations; saturation is a normal outcome, not an error.
package rules
