package sites

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Registry holds the active profiles, keyed by name.
type Registry struct {
	byName map[string]*Profile
}

// NewRegistry builds a registry from the built-in profiles, optionally
// overlaid with profiles loaded from a YAML file. A file profile with
// a built-in's name replaces the built-in wholesale; new names are
// added. An empty path means built-ins only.
func NewRegistry(path string) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Profile)}
	for _, p := range Builtin() {
		p := p
		r.byName[p.Name] = &p
	}

	if path == "" {
		return r, nil
	}

	overlays, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	for _, p := range overlays {
		p := p
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.byName[p.Name]; exists {
			zap.L().Info("sites: overriding built-in profile", zap.String("site", p.Name))
		}
		r.byName[p.Name] = &p
	}
	return r, nil
}

// LoadFile parses a YAML file holding a list of profiles.
func LoadFile(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "sites: read profiles file %s", path)
	}
	var profiles []Profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, eris.Wrapf(err, "sites: parse profiles file %s", path)
	}
	return profiles, nil
}

// Get returns the profile registered under name.
func (r *Registry) Get(name string) (*Profile, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, eris.Errorf("sites: unknown site %s", name)
	}
	return p, nil
}

// Names lists the registered profile names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered profile, ordered by name.
func (r *Registry) All() []*Profile {
	out := make([]*Profile, 0, len(r.byName))
	for _, name := range r.Names() {
		out = append(out, r.byName[name])
	}
	return out
}
