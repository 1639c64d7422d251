package target

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/sprout-labs/sprout/internal/branding"
	"github.com/sprout-labs/sprout/internal/issue"
)

// Fetcher downloads remote scripts. It sets no timeout of its own; the
// configured HTTP client decides.
type Fetcher struct {
	httpClient *http.Client
}

// FetchOption configures a Fetcher.
type FetchOption func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) FetchOption {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// NewFetcher creates a Fetcher using http.DefaultClient unless overridden.
func NewFetcher(opts ...FetchOption) *Fetcher {
	f := &Fetcher{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs a blocking GET of rawURL and writes the body to dest.
// Transport failures and non-2xx statuses are reported as a bad parameter
// naming the URL and the underlying failure. Bytes already written to dest
// are left in place; the caller owns cleanup of its directory.
func (f *Fetcher) Fetch(ctx context.Context, dest, rawURL string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating download file: %w", err)
	}
	defer out.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fetchError(rawURL, err)
	}
	req.Header.Set("User-Agent", branding.CLIName()+"-launcher")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fetchError(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fetchError(rawURL, fmt.Errorf("%d %s for url: %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), rawURL))
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fetchError(rawURL, fmt.Errorf("reading response body: %w", err))
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing download file: %w", err)
	}
	return nil
}

func fetchError(rawURL string, cause error) error {
	return issue.BadParameter("Unable to fetch %s.\n%v", rawURL, cause).WithParam("target").Wrap(cause)
}
