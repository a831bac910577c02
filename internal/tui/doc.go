// Package tui implements the interactive explorer: a bubbletea program that
// renders the fractal into terminal cells and lets the user pan, zoom and
// move the seed.
package tui
