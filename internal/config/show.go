package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Show writes the effective configuration to w as an annotated TOML
// document: one table per section, each option preceded by its description,
// its default, and the layer that set it when that is not the default.
func (s *Store) Show(w io.Writer) error {
	var b strings.Builder
	b.WriteString("# Below are all the sections and options you can have in ~/.sprout/config.toml.\n")

	section := ""
	for _, d := range s.reg.All() {
		if sec := d.Section(); sec != section {
			section = sec
			b.WriteString("\n")
			if desc := s.reg.SectionDescription(sec); desc != "" {
				fmt.Fprintf(&b, "# %s\n", desc)
			}
			fmt.Fprintf(&b, "[%s]\n", sec)
		}

		b.WriteString("\n")
		fmt.Fprintf(&b, "# %s\n", d.Description)
		if d.Deprecated {
			fmt.Fprintf(&b, "# DEPRECATED: %s - %s\n", d.DeprecationText, d.DeprecationDate)
		}
		def, err := renderValue(d.Default)
		if err != nil {
			return fmt.Errorf("rendering default for %s: %w", d.Key, err)
		}
		fmt.Fprintf(&b, "# Default: %s\n", def)
		if where := s.Where(d.Key); where != ProvenanceDefault {
			fmt.Fprintf(&b, "# The value below was set by %s\n", where)
		}

		val, err := renderValue(s.Get(d.Key))
		if err != nil {
			return fmt.Errorf("rendering value for %s: %w", d.Key, err)
		}
		fmt.Fprintf(&b, "%s = %s\n", strings.TrimPrefix(d.Key, section+"."), val)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// renderValue encodes a single value the way it would appear in a TOML file.
func renderValue(v any) (string, error) {
	if v == nil {
		return `""`, nil
	}
	out, err := toml.Marshal(map[string]any{"v": v})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.TrimPrefix(string(out), "v = ")), nil
}
