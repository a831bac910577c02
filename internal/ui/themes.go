package ui

import (
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the escape sequences the report printers wrap their text in.
// The zero Theme prints plain text.
type Theme struct {
	Name      string
	Primary   string // headings, selected values
	Secondary string // labels
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// fg256 selects a foreground color from the xterm 256-color table.
func fg256(n string) string { return "\033[38;5;" + n + "m" }

var (
	// DarkTheme suits dark terminal backgrounds and is the default.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   fg256("39"),
		Secondary: fg256("245"),
		Success:   fg256("82"),
		Warning:   fg256("220"),
		Error:     fg256("196"),
		Info:      fg256("141"),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// EmberTheme matches the warm tones of the default ember palette.
	EmberTheme = Theme{
		Name:      "ember",
		Primary:   fg256("214"),
		Secondary: fg256("245"),
		Success:   fg256("226"),
		Warning:   fg256("208"),
		Error:     fg256("160"),
		Info:      fg256("51"),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme is selected by -no-color or NO_COLOR.
	NoColorTheme = Theme{Name: "none"}
)

var themesByName = map[string]Theme{
	DarkTheme.Name:    DarkTheme,
	EmberTheme.Name:   EmberTheme,
	NoColorTheme.Name: NoColorTheme,
}

var active atomic.Pointer[Theme]

func init() { SetCurrentTheme(DarkTheme) }

// TUITheme colors the explorer's status bar and help overlay. The fractal
// itself is always drawn in true color from the active palette.
type TUITheme struct {
	Text   lipgloss.TerminalColor
	Border lipgloss.TerminalColor
	Accent lipgloss.TerminalColor
	Warn   lipgloss.TerminalColor
	Dim    lipgloss.TerminalColor
}

var (
	DarkTUITheme = TUITheme{
		Text:   lipgloss.Color("#E0E0E0"),
		Border: lipgloss.Color("#FF8C00"),
		Accent: lipgloss.Color("#FAFF00"),
		Warn:   lipgloss.Color("#FF4D00"),
		Dim:    lipgloss.Color("#666666"),
	}

	NoColorTUITheme = TUITheme{
		Text:   lipgloss.NoColor{},
		Border: lipgloss.NoColor{},
		Accent: lipgloss.NoColor{},
		Warn:   lipgloss.NoColor{},
		Dim:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the explorer colors for the active theme.
func GetCurrentTUITheme() TUITheme {
	if !ColorsEnabled() {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the active theme. Safe for concurrent use.
func GetCurrentTheme() Theme { return *active.Load() }

// SetCurrentTheme replaces the active theme.
func SetCurrentTheme(t Theme) { active.Store(&t) }

// SetTheme selects a theme by name; unknown names fall back to dark.
func SetTheme(name string) {
	t, ok := themesByName[name]
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme picks the startup theme. -no-color and a set NO_COLOR
// (https://no-color.org/) both disable escape codes.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}

// ColorsEnabled reports whether the active theme emits escape codes.
func ColorsEnabled() bool {
	return GetCurrentTheme().Name != NoColorTheme.Name
}
