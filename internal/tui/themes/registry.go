// Package themes provides the color themes of the admin console and a
// registry of the built-in presets.
package themes

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// PresetName identifies a theme preset.
type PresetName string

const (
	PresetDark  PresetName = "dark"
	PresetLight PresetName = "light"
	PresetNord  PresetName = "nord"

	// PresetAuto picks dark or light from the terminal background.
	PresetAuto PresetName = "auto"
)

// Registry holds the theme presets and which of them is active. It is
// safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	presets map[PresetName]*Theme
	active  PresetName
}

// Global returns the process-wide registry.
var Global = sync.OnceValue(NewRegistry)

// NewRegistry creates a registry of the built-in presets with dark active.
func NewRegistry() *Registry {
	return &Registry{
		presets: map[PresetName]*Theme{
			PresetDark:  DarkTheme(),
			PresetLight: LightTheme(),
			PresetNord:  NordTheme(),
		},
		active: PresetDark,
	}
}

func (r *Registry) Active() *Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.presets[r.active]
}

func (r *Registry) ActiveName() PresetName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// SetActive switches to the preset name. PresetAuto resolves to dark or
// light from the terminal background.
func (r *Registry) SetActive(name PresetName) error {
	if name == PresetAuto {
		name = DetectColorScheme()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.presets[name]; !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	r.active = name
	return nil
}

// Get returns the preset name, or nil when there is none.
func (r *Registry) Get(name PresetName) *Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.presets[name]
}

// Register adds a preset or replaces one of the same name.
func (r *Registry) Register(name PresetName, theme *Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[name] = theme
}

// Names returns the preset names in sorted order.
func (r *Registry) Names() []PresetName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.presets))
}

// DetectColorScheme returns the preset that suits the terminal background.
func DetectColorScheme() PresetName {
	if lipgloss.HasDarkBackground() {
		return PresetDark
	}
	return PresetLight
}
