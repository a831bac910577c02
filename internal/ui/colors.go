package ui

import "fmt"

// Semantic color accessors over the active theme.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Info }
func ColorGrey() string      { return GetCurrentTheme().Secondary }

// TrueColor returns the 24-bit escape sequence selecting fg as foreground
// and bg as background. Packed colors are 0x00RRGGBB.
func TrueColor(fg, bg uint32) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm",
		fg>>16&0xff, fg>>8&0xff, fg&0xff,
		bg>>16&0xff, bg>>8&0xff, bg&0xff)
}
