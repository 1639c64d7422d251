package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/sprout-labs/sprout/internal/options"
)

const fileType = "toml"

// Provenance labels recorded next to every value.
const (
	ProvenanceDefault = "default"
	ProvenanceCLI     = "cli call option"
)

// Store is the live configuration: registry defaults, then config files in
// load order, then explicit overrides. Every key remembers which layer set it.
type Store struct {
	v      *viper.Viper
	reg    *options.Registry
	where  map[string]string
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for config file diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New creates a Store holding only the registry defaults.
func New(reg *options.Registry, opts ...Option) *Store {
	s := &Store{
		v:      viper.New(),
		reg:    reg,
		where:  make(map[string]string, reg.Len()),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, d := range reg.All() {
		s.v.SetDefault(d.Key, d.Default)
		s.where[d.Key] = ProvenanceDefault
	}
	return s
}

// Load creates a Store and layers every existing file in paths over the
// defaults. Later files win. Missing files are skipped; unknown keys are
// logged and ignored; values of the wrong type are an error.
func Load(reg *options.Registry, paths []string, opts ...Option) (*Store, error) {
	s := New(reg, opts...)
	for _, p := range paths {
		if err := s.mergeFile(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) mergeFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking config file %s: %w", path, err)
	}

	layer := viper.New()
	layer.SetConfigFile(path)
	layer.SetConfigType(fileType)
	if err := layer.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	known := make(map[string]bool, s.reg.Len())
	for _, d := range s.reg.All() {
		known[strings.ToLower(d.Key)] = true
		if !layer.IsSet(d.Key) {
			continue
		}
		if _, err := d.Type.Coerce(layer.Get(d.Key)); err != nil {
			return fmt.Errorf("config file %s: option %s: %w", path, d.Key, err)
		}
		s.where[d.Key] = path
	}
	for _, k := range layer.AllKeys() {
		if !known[k] {
			s.logger.Warn("ignoring unknown config option", "key", k, "file", path)
		}
	}

	s.v.SetConfigFile(path)
	s.v.SetConfigType(fileType)
	if err := s.v.MergeInConfig(); err != nil {
		return fmt.Errorf("merging config file %s: %w", path, err)
	}
	s.logger.Debug("loaded config file", "path", path)
	return nil
}

// Set writes value for key into the override layer and records where it
// came from. The value is coerced to the option's type first.
func (s *Store) Set(key string, value any, where string) error {
	d, ok := s.reg.Lookup(key)
	if !ok {
		return fmt.Errorf("unknown config option %q", key)
	}
	coerced, err := d.Type.Coerce(value)
	if err != nil {
		return fmt.Errorf("option %s: %w", key, err)
	}
	s.v.Set(key, coerced)
	s.where[key] = where
	return nil
}

// ApplyOverrides writes every supplied command-line value into the store with
// provenance ProvenanceCLI. values is keyed by destination parameter name; nil
// entries were not supplied and leave the file and default layers in force.
func (s *Store) ApplyOverrides(values map[string]any) error {
	params := make([]string, 0, len(values))
	for p := range values {
		params = append(params, p)
	}
	sort.Strings(params)

	for _, param := range params {
		v := values[param]
		if v == nil {
			continue
		}
		if err := s.Set(options.KeyForParam(param), v, ProvenanceCLI); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the effective value of key coerced to its option type, or nil
// for an unknown key.
func (s *Store) Get(key string) any {
	d, ok := s.reg.Lookup(key)
	if !ok {
		return nil
	}
	v, err := d.Type.Coerce(s.v.Get(key))
	if err != nil {
		return d.Default
	}
	return v
}

// GetString returns the effective value of key as a string.
func (s *Store) GetString(key string) string {
	return s.v.GetString(key)
}

// Where returns the provenance of key's effective value.
func (s *Store) Where(key string) string {
	return s.where[key]
}

// SetBy returns the effective values of every option whose provenance is where.
func (s *Store) SetBy(where string) map[string]any {
	out := make(map[string]any)
	for _, d := range s.reg.All() {
		if s.where[d.Key] == where {
			out[d.Key] = s.Get(d.Key)
		}
	}
	return out
}

// Registry returns the option registry backing the store.
func (s *Store) Registry() *options.Registry {
	return s.reg
}
