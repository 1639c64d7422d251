package updater

import (
	"net/http"
	"time"
)

// Release represents a GitHub release.
type Release struct {
	Version    string    `json:"tag_name"`
	Prerelease bool      `json:"prerelease"`
	Published  time.Time `json:"published_at"`
	HTMLURL    string    `json:"html_url"`
}

// Updater checks for newer releases of the running binary.
type Updater struct {
	currentVersion string
	httpClient     *http.Client
	apiBase        string
	cacheDir       string
	maxAge         time.Duration
	now            func() time.Time
	background     func(func())
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.httpClient = c
	}
}

// WithAPIBase overrides the GitHub API base URL.
func WithAPIBase(base string) Option {
	return func(u *Updater) {
		u.apiBase = base
	}
}

// WithCacheDir sets where the version-check cache is stored. Without it the
// updater never caches and never shows a banner.
func WithCacheDir(dir string) Option {
	return func(u *Updater) {
		u.cacheDir = dir
	}
}

// WithSynchronousRefresh refreshes a stale cache inline instead of in a
// goroutine. Tests use it to observe the refreshed cache.
func WithSynchronousRefresh() Option {
	return func(u *Updater) {
		u.background = func(f func()) { f() }
	}
}

// New creates an Updater with the given current version and options.
func New(currentVersion string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		httpClient:     &http.Client{Timeout: 5 * time.Second},
		apiBase:        githubAPIBase,
		maxAge:         DefaultCacheMaxAge,
		now:            time.Now,
		background:     func(f func()) { go f() },
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
