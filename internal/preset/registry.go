// Package preset holds named, versioned criteria bundles.
package preset

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"ArticleCurator/internal/domain"
)

// ErrUnknownPreset is returned for names the registry does not hold.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named criteria bundle.
type Preset struct {
	Name        string          `json:"name"`
	Version     int             `json:"version,omitempty"`
	Description string          `json:"description,omitempty"`
	Criteria    domain.Criteria `json:"criteria"`
}

// Registry maps preset names to criteria. It is populated in NewRegistry and
// never modified afterwards, so it can be shared across concurrent runs.
type Registry struct {
	presets map[string]Preset
}

// NewRegistry builds a registry of the built-in presets plus custom ones.
// Custom presets may not reuse a built-in name, each other's names or the
// reserved CustomName.
func NewRegistry(custom ...Preset) (*Registry, error) {
	r := &Registry{presets: map[string]Preset{}}
	for _, p := range Builtin() {
		r.presets[p.Name] = p
	}

	for _, p := range custom {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("preset without a name")
		}
		if name == CustomName {
			return nil, fmt.Errorf("preset name %s is reserved", CustomName)
		}
		if _, exists := r.presets[name]; exists {
			return nil, fmt.Errorf("preset %s is already defined", name)
		}
		p.Name = name
		if p.Version == 0 {
			p.Version = 1
		}
		p.Criteria = p.Criteria.Clone()
		r.presets[name] = p
	}

	return r, nil
}

// Get returns a private copy of the named preset's criteria.
func (r *Registry) Get(name string) (domain.Criteria, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return domain.Criteria{}, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return p.Criteria, nil
}

// Lookup returns a copy of the named preset.
func (r *Registry) Lookup(name string) (Preset, bool) {
	p, ok := r.presets[strings.TrimSpace(name)]
	if !ok {
		return Preset{}, false
	}
	p.Criteria = p.Criteria.Clone()
	return p, true
}

// Names lists every preset name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
