package options

import "github.com/spf13/cast"

// optionValue is a pflag.Value that stays unset until a value is parsed, so
// callers can tell "not supplied" apart from a zero value. It deliberately
// has no IsBoolFlag method: `--server.headless true` consumes its argument.
type optionValue struct {
	typ Type
	val any
	set bool
}

func newOptionValue(t Type) *optionValue {
	return &optionValue{typ: t}
}

func (v *optionValue) Set(raw string) error {
	parsed, err := v.typ.Parse(raw)
	if err != nil {
		return err
	}
	v.val = parsed
	v.set = true
	return nil
}

func (v *optionValue) String() string {
	if !v.set {
		return ""
	}
	return cast.ToString(v.val)
}

func (v *optionValue) Type() string {
	return string(v.typ)
}
