// Package credentials stores the activation record that gates the run
// command. Activation asks for an optional email address and assigns an
// installation ID; nothing here is secret or encrypted.
package credentials

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/sprout-labs/sprout/internal/branding"
	"github.com/sprout-labs/sprout/internal/platform"
)

// maxPromptAttempts bounds how often an invalid email is asked for again.
const maxPromptAttempts = 3

// ErrNotActivated is returned by CheckActivated when no activation exists
// and auto-resolution is off.
var ErrNotActivated = errors.New("not activated")

// Activation is the record persisted in credentials.toml.
type Activation struct {
	Email          string    `toml:"email"`
	InstallationID string    `toml:"installation_id"`
	ActivatedAt    time.Time `toml:"activated_at"`
}

// Store reads and writes the activation record and runs the interactive
// activation prompt.
type Store struct {
	path string
	in   io.Reader
	out  io.Writer
}

// Option configures a Store.
type Option func(*Store)

// WithIO sets the prompt input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Store) {
		s.in = in
		s.out = out
	}
}

// New creates a Store backed by the file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		in:   os.Stdin,
		out:  os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the credentials file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the activation record. Returns nil, nil if none exists yet.
func (s *Store) Load() (*Activation, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	var a Activation
	if err := toml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing credentials %s: %w", s.path, err)
	}
	return &a, nil
}

// Save writes the activation record with owner-only permissions.
func (s *Store) Save(a *Activation) error {
	data, err := toml.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	return platform.WriteSecureFile(s.path, data)
}

// IsActivated reports whether a valid activation record exists.
func (s *Store) IsActivated() (bool, error) {
	a, err := s.Load()
	if err != nil {
		return false, err
	}
	return a != nil && a.InstallationID != "", nil
}

// CheckActivated is the gate in front of every run. When no activation
// exists it runs the interactive activation if autoResolve is set, and
// returns ErrNotActivated otherwise.
func (s *Store) CheckActivated(autoResolve bool) error {
	ok, err := s.IsActivated()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if !autoResolve {
		return fmt.Errorf("%w: run `%s activate` first", ErrNotActivated, branding.CLIName())
	}
	_, err = s.Activate()
	return err
}

// Activate prompts for an email address and stores a new activation. An
// empty answer, or end of input, activates without an email.
func (s *Store) Activate() (*Activation, error) {
	if ok, err := s.IsActivated(); err != nil {
		return nil, err
	} else if ok {
		fmt.Fprintf(s.out, "Already activated. Run `%s activate reset` to start over.\n", branding.CLIName())
		return s.Load()
	}

	fmt.Fprintf(s.out, "\n  Welcome to %s!\n\n", branding.DisplayName())
	fmt.Fprintln(s.out, "  If you would like release news and technical support, enter your")
	fmt.Fprintln(s.out, "  email address below. Otherwise, leave the field blank.")
	fmt.Fprintln(s.out)

	email, err := s.promptEmail()
	if err != nil {
		return nil, err
	}

	a := &Activation{
		Email:          email,
		InstallationID: uuid.NewString(),
		ActivatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := s.Save(a); err != nil {
		return nil, err
	}
	fmt.Fprintln(s.out)
	return a, nil
}

func (s *Store) promptEmail() (string, error) {
	reader := bufio.NewReader(s.in)
	for attempt := 0; attempt < maxPromptAttempts; attempt++ {
		fmt.Fprint(s.out, "  Email: ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading email: %w", err)
		}
		email := strings.TrimSpace(line)
		if email == "" {
			return "", nil
		}
		if validEmail(email) {
			return email, nil
		}
		if errors.Is(err, io.EOF) {
			break
		}
		fmt.Fprintln(s.out, "  Please enter a valid email address, or leave it blank.")
	}
	return "", fmt.Errorf("no valid email address entered")
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Reset removes the stored activation. Removing a missing file is not an error.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	fmt.Fprintln(s.out, "Activation credentials removed.")
	return nil
}
