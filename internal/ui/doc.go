// Package ui provides ANSI themes shared by the CLI presenters, the preview
// printer and the explorer chrome. It respects NO_COLOR and -no-color.
package ui
