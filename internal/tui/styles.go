package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fractal/internal/ui"
)

// Styles for the explorer chrome, rebuilt from the ui theme by
// initTUIStyles.
var (
	headerStyle lipgloss.Style
	titleStyle  lipgloss.Style
	labelStyle  lipgloss.Style
	valueStyle  lipgloss.Style
	pipeStyle   lipgloss.Style
	sparkStyle  lipgloss.Style
	pausedStyle lipgloss.Style
	errorStyle  lipgloss.Style
	helpKey     lipgloss.Style
	helpDesc    lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run after InitTheme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	headerStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Border)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	labelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	valueStyle = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	pipeStyle = lipgloss.NewStyle().Foreground(t.Dim)
	sparkStyle = lipgloss.NewStyle().Foreground(t.Accent)
	pausedStyle = lipgloss.NewStyle().Foreground(t.Warn).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(t.Warn)
	helpKey = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	helpDesc = lipgloss.NewStyle().Foreground(t.Dim)
}
