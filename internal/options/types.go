package options

import (
	"fmt"

	"github.com/spf13/cast"
)

// Type is the value type of a configuration option.
type Type string

// Supported option types.
const (
	TypeString Type = "string"
	TypeInt    Type = "int"
	TypeBool   Type = "bool"
	TypeFloat  Type = "float"
)

// ValidTypes lists every supported option type.
var ValidTypes = []Type{TypeString, TypeInt, TypeBool, TypeFloat}

// Definition describes one configuration option.
type Definition struct {
	Key             string `yaml:"key"`
	Type            Type   `yaml:"type"`
	Description     string `yaml:"description"`
	Default         any    `yaml:"default,omitempty"`
	Deprecated      bool   `yaml:"deprecated,omitempty"`
	DeprecationText string `yaml:"deprecation_text,omitempty"`
	DeprecationDate string `yaml:"deprecation_date,omitempty"`
}

// Section returns the first segment of the key, e.g. "server" for "server.port".
func (d Definition) Section() string {
	for i := 0; i < len(d.Key); i++ {
		if d.Key[i] == '.' {
			return d.Key[:i]
		}
	}
	return d.Key
}

// Parse converts raw command-line or environment text into a value of type t.
func (t Type) Parse(raw string) (any, error) {
	return t.Coerce(raw)
}

// Coerce converts v into the Go representation of t: string, int, bool or float64.
func (t Type) Coerce(v any) (any, error) {
	var (
		out any
		err error
	)
	switch t {
	case TypeString:
		out, err = cast.ToStringE(v)
	case TypeInt:
		out, err = cast.ToIntE(v)
	case TypeBool:
		out, err = cast.ToBoolE(v)
	case TypeFloat:
		out, err = cast.ToFloat64E(v)
	default:
		return nil, fmt.Errorf("unknown option type %q", t)
	}
	if err != nil {
		return nil, fmt.Errorf("expected %s: %w", t, err)
	}
	return out, nil
}
