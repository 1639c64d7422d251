package target

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sprout-labs/sprout/internal/issue"
)

// Script is a resolved run target that exists on the local filesystem.
type Script struct {
	// Path is the local file to execute. Local targets are returned exactly
	// as given.
	Path string
	// Source is the raw target the script was resolved from.
	Source string
	// Remote is true when the script was downloaded.
	Remote bool

	tempDir string
}

// Close releases the temporary directory of a downloaded script. It is a
// no-op for local scripts and safe to call more than once.
func (s *Script) Close() error {
	if s == nil || s.tempDir == "" {
		return nil
	}
	dir := s.tempDir
	s.tempDir = ""
	return os.RemoveAll(dir)
}

// Resolver turns raw run targets into local scripts.
type Resolver struct {
	fetcher  *Fetcher
	tempRoot string
	logger   *log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFetcher sets the fetcher used for URL targets.
func WithFetcher(f *Fetcher) Option {
	return func(r *Resolver) {
		r.fetcher = f
	}
}

// WithTempRoot sets the parent of the per-run temporary directories.
// Empty means os.TempDir().
func WithTempRoot(dir string) Option {
	return func(r *Resolver) {
		r.tempRoot = dir
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a Resolver with a default Fetcher.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		fetcher: NewFetcher(),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve classifies raw as a URL or a filesystem path and returns a script
// that exists at the moment of return. Callers must Close the script.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*Script, error) {
	if u, ok := ParseURL(raw); ok {
		return r.resolveRemote(ctx, raw, u)
	}

	if _, err := os.Stat(raw); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, issue.BadParameter("File does not exist: %s", raw).WithParam("target")
		}
		return nil, issue.BadParameter("Cannot read %s: %v", raw, err).WithParam("target").Wrap(err)
	}
	r.logger.Debug("resolved local target", "path", raw)
	return &Script{Path: raw, Source: raw}, nil
}

func (r *Resolver) resolveRemote(ctx context.Context, raw string, u *url.URL) (*Script, error) {
	name := FilenameFromURL(u)
	if name == "" || name == "." || name == ".." {
		return nil, issue.BadParameter("Cannot derive a file name from %s", raw).WithParam("target")
	}

	dir, err := os.MkdirTemp(r.tempRoot, "sprout-run-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary directory: %w", err)
	}

	path := filepath.Join(dir, name)
	r.logger.Debug("fetching remote target", "url", raw, "dest", path)
	if err := r.fetcher.Fetch(ctx, path, raw); err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}
	return &Script{Path: path, Source: raw, Remote: true, tempDir: dir}, nil
}

// ParseURL reports whether raw is an absolute http or https URL with a host.
func ParseURL(raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, false
	}
	if u.Host == "" {
		return nil, false
	}
	return u, true
}

// FilenameFromURL returns the last segment of the URL path with surrounding
// slashes removed, e.g. "app.py" for https://example.com/scripts/app.py/.
func FilenameFromURL(u *url.URL) string {
	p := strings.Trim(u.Path, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	return p
}
