package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the explorer key bindings. WASD pans the view, the arrow
// keys move the seed.
type KeyMap struct {
	PanUp      key.Binding
	PanDown    key.Binding
	PanLeft    key.Binding
	PanRight   key.Binding
	SeedUp     key.Binding
	SeedDown   key.Binding
	SeedLeft   key.Binding
	SeedRight  key.Binding
	Magnify    key.Binding
	Widen      key.Binding
	Reset      key.Binding
	Palette    key.Binding
	Rule       key.Binding
	Polynomial key.Binding
	Batch      key.Binding
	Pause      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PanUp:      key.NewBinding(key.WithKeys("w", "W"), key.WithHelp("wasd", "pan")),
		PanDown:    key.NewBinding(key.WithKeys("s", "S")),
		PanLeft:    key.NewBinding(key.WithKeys("a", "A")),
		PanRight:   key.NewBinding(key.WithKeys("d", "D")),
		SeedUp:     key.NewBinding(key.WithKeys("up"), key.WithHelp("←↑↓→", "seed")),
		SeedDown:   key.NewBinding(key.WithKeys("down")),
		SeedLeft:   key.NewBinding(key.WithKeys("left")),
		SeedRight:  key.NewBinding(key.WithKeys("right")),
		Magnify:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		Widen:      key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Reset:      key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "reset")),
		Palette:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "palette")),
		Rule:       key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "rule")),
		Polynomial: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "polynomial")),
		Batch:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "scalar/batched")),
		Pause:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PanUp, k.SeedUp, k.Magnify, k.Widen, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PanUp, k.SeedUp, k.Magnify, k.Widen},
		{k.Palette, k.Rule, k.Polynomial, k.Batch},
		{k.Reset, k.Pause, k.Help, k.Quit},
	}
}
