// Package render is the parallel frame scheduler.
//
// A frame's rows are split into contiguous bands, one per worker. Each worker
// maps its pixels onto the complex plane, colors them and returns its band as
// a Chunk. Chunks arrive in any order and are sorted by start row before being
// concatenated, so the Frame is byte-identical for every worker count and
// every scheduling order.
//
// Two paths exist: Render colors one pixel at a time through a Colorer, and
// RenderBatch colors simd.Lanes pixels at a time through a BatchColorer.
package render
