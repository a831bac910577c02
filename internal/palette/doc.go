// Package palette turns iteration counts into colors.
//
// A Palette is a 256-entry lookup table interpolated from gradient stops.
// Presets live in a Registry built once at startup.
package palette
