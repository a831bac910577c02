package palette

import (
	"sort"
	"strings"
	"sync"

	apperrors "github.com/agbru/fractal/internal/errors"
)

// Preset names.
const (
	Cyan      = "cyan"
	BlueGreen = "blue-green"
	YellowRed = "yellow-red"
	Rainbow   = "rainbow"
	Grayscale = "grayscale"
)

// DefaultName is the palette used when none is configured.
const DefaultName = YellowRed

var presetStops = map[string][]RGB{
	Cyan: {
		{0, 0, 0}, {0, 35, 66}, {0, 56, 89}, {0, 78, 114}, {0, 102, 139}, {0, 127, 165},
		{0, 152, 187}, {0, 177, 205}, {0, 203, 220}, {0, 229, 231}, {0, 255, 238},
	},
	BlueGreen: {
		{97, 179, 255}, {33, 10, 127}, {5, 136, 218}, {11, 204, 49}, {33, 253, 43}, {0, 0, 0},
	},
	YellowRed: {
		{0, 0, 0}, {250, 255, 0}, {255, 168, 0}, {255, 77, 0}, {153, 41, 41}, {0, 0, 0},
	},
	Rainbow: {
		{255, 255, 255}, {255, 0, 0}, {255, 255, 0}, {0, 255, 255}, {127, 127, 255},
		{255, 0, 255}, {0, 0, 255}, {0, 255, 0}, {0, 0, 0},
	},
	Grayscale: {Gray(0), Gray(255)},
}

// Registry holds named palettes. Presets are built once by NewRegistry and
// the registry is passed explicitly to whoever needs it.
type Registry struct {
	mu       sync.RWMutex
	palettes map[string]*Palette
}

// NewRegistry builds a registry holding every preset.
func NewRegistry() *Registry {
	r := &Registry{palettes: make(map[string]*Palette, len(presetStops))}
	for name, stops := range presetStops {
		p, err := FromGradient(stops)
		if err != nil {
			// Presets are constant and valid.
			panic(err)
		}
		r.palettes[name] = p
	}
	return r
}

// Get returns the palette registered under name.
func (r *Registry) Get(name string) (*Palette, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	p, ok := r.palettes[key]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewConfigError("unknown palette %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Register builds a palette from stops and stores it under name,
// replacing any previous entry.
func (r *Registry) Register(name string, stops []RGB) (*Palette, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, apperrors.NewConfigError("palette name must not be empty")
	}
	p, err := FromGradient(stops)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.palettes[key] = p
	r.mu.Unlock()
	return p, nil
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presetStops))
	for name := range presetStops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.palettes))
	for name := range r.palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Next returns the name following current in sorted order, wrapping around.
func (r *Registry) Next(current string) string {
	names := r.Names()
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
