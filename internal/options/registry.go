package options

import (
	_ "embed"
	"fmt"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed options.yaml
var defaultRegistryYAML []byte

// Registry is the ordered catalog of configuration options. Keys are unique
// and, by schema, contain no underscores, so every key maps to exactly one
// flag parameter name and back.
type Registry struct {
	defs     []Definition
	byKey    map[string]int
	sections map[string]string
}

type registryFile struct {
	Sections map[string]string `yaml:"sections"`
	Options  []Definition      `yaml:"options"`
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry embedded in the binary. It is parsed and
// validated once; a broken embedded registry is a build defect and panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = Parse(defaultRegistryYAML)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded option registry is invalid: %v", defaultErr))
	}
	return defaultRegistry
}

// Parse validates raw registry YAML and builds a Registry from it.
func Parse(data []byte) (*Registry, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating option registry: %w", err)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("invalid option registry: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing option registry: %w", err)
	}

	return New(file.Options, file.Sections)
}

// New builds a Registry from definitions in registration order. Duplicate
// keys or duplicate derived parameter names are rejected, as are defaults
// that do not coerce to the option's type.
func New(defs []Definition, sections map[string]string) (*Registry, error) {
	r := &Registry{
		defs:     make([]Definition, 0, len(defs)),
		byKey:    make(map[string]int, len(defs)),
		sections: sections,
	}
	params := make(map[string]string, len(defs))

	for _, d := range defs {
		if _, dup := r.byKey[d.Key]; dup {
			return nil, fmt.Errorf("duplicate option key %q", d.Key)
		}
		param := ParamName(d.Key)
		if other, dup := params[param]; dup {
			return nil, fmt.Errorf("options %q and %q map to the same parameter %q", other, d.Key, param)
		}
		if d.Default != nil {
			v, err := d.Type.Coerce(d.Default)
			if err != nil {
				return nil, fmt.Errorf("default for %q: %w", d.Key, err)
			}
			d.Default = v
		}
		params[param] = d.Key
		r.byKey[d.Key] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r, nil
}

// All returns the definitions in registration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of registered options.
func (r *Registry) Len() int { return len(r.defs) }

// Lookup returns the definition for key.
func (r *Registry) Lookup(key string) (Definition, bool) {
	i, ok := r.byKey[key]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// SectionDescription returns the description of a key section, if any.
func (r *Registry) SectionDescription(section string) string {
	return r.sections[section]
}
