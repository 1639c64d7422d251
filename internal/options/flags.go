package options

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/sprout-labs/sprout/internal/branding"
)

// envAnnotation is the pflag annotation key holding a flag's env var name.
const envAnnotation = "sprout_envvar"

// FlagSpec is the command-line surface derived from one Definition.
type FlagSpec struct {
	Key    string // server.port
	Name   string // --server.port
	Param  string // server_port
	Help   string
	Type   Type
	EnvVar string // SPROUT_CONFIG_SERVER_PORT
}

// flagName is the name pflag registers, without the leading dashes.
func (s FlagSpec) flagName() string {
	return strings.TrimPrefix(s.Name, "--")
}

// ParamName returns the destination parameter name for a dotted key.
func ParamName(key string) string {
	return strings.ReplaceAll(key, ".", "_")
}

// KeyForParam maps a destination parameter name back to its dotted key.
func KeyForParam(param string) string {
	return strings.ReplaceAll(param, "_", ".")
}

// EnvVarName returns the environment variable bound to the option key.
func EnvVarName(key string) string {
	return branding.ConfigEnvPrefix() + strings.ToUpper(ParamName(key))
}

// Translate derives the flag specification for a single option. Deprecated
// options still get a flag; the deprecation notice is appended to the help.
func Translate(d Definition) FlagSpec {
	help := d.Description
	if d.Deprecated {
		help += fmt.Sprintf("\n %s - %s", d.DeprecationText, d.DeprecationDate)
	}
	return FlagSpec{
		Key:    d.Key,
		Name:   "--" + d.Key,
		Param:  ParamName(d.Key),
		Help:   help,
		Type:   d.Type,
		EnvVar: EnvVarName(d.Key),
	}
}

// Install registers one flag per registry option on fs, walking the registry
// in reverse registration order, and returns the installed specs in that
// order. Every flag takes an explicit value, booleans included.
func Install(fs *pflag.FlagSet, reg *Registry) []FlagSpec {
	defs := reg.All()
	specs := make([]FlagSpec, 0, len(defs))
	for i := len(defs) - 1; i >= 0; i-- {
		spec := Translate(defs[i])
		fs.Var(newOptionValue(spec.Type), spec.flagName(), spec.Help)
		_ = fs.SetAnnotation(spec.flagName(), envAnnotation, []string{spec.EnvVar})
		specs = append(specs, spec)
	}
	return specs
}

// ApplyEnv fills every installed flag that was not given on the command line
// from its environment variable. Empty variables count as unset. lookup is
// os.LookupEnv when nil.
func ApplyEnv(fs *pflag.FlagSet, specs []FlagSpec, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, spec := range specs {
		f := fs.Lookup(spec.flagName())
		if f == nil || f.Changed {
			continue
		}
		raw, ok := lookup(spec.EnvVar)
		if !ok || raw == "" {
			continue
		}
		if err := fs.Set(spec.flagName(), raw); err != nil {
			return fmt.Errorf("invalid value %q for %s (from %s): %w", raw, spec.Name, spec.EnvVar, err)
		}
	}
	return nil
}

// Values returns the parsed value of every installed flag keyed by
// destination parameter name. Flags supplied neither on the command line nor
// through the environment map to nil.
func Values(fs *pflag.FlagSet, specs []FlagSpec) map[string]any {
	values := make(map[string]any, len(specs))
	for _, spec := range specs {
		values[spec.Param] = nil
		f := fs.Lookup(spec.flagName())
		if f == nil {
			continue
		}
		if v, ok := f.Value.(*optionValue); ok && v.set {
			values[spec.Param] = v.val
		}
	}
	return values
}

// EnvVarOf returns the environment variable a flag installed by Install is
// bound to.
func EnvVarOf(f *pflag.Flag) (string, bool) {
	vals := f.Annotations[envAnnotation]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}
