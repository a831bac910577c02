// Package plane models the complex plane seen through a navigable viewport.
//
// It provides the Complex value type, the per-frame pixel-to-plane Mapper and
// the pan/zoom/reset mutators driven by the interactive loop.
package plane
