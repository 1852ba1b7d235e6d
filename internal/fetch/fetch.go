// Package fetch retrieves bundled scripts and source maps over HTTP.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/standardbeagle/hooklens/internal/errors"
	"github.com/standardbeagle/hooklens/internal/types"
	"github.com/standardbeagle/hooklens/internal/version"
)

// Client retrieves the body behind a URL. Satisfied by *Fetcher; tests
// substitute an in-memory double.
type Client interface {
	Fetch(ctx context.Context, url string) (*types.FetchedFile, error)
}

// Options configures a Fetcher.
type Options struct {
	// Timeout bounds a single request. Default: 30s.
	Timeout time.Duration

	// MaxBodyBytes caps how much of a response body is read.
	// Default: 64MB - production bundles routinely reach tens of MB.
	MaxBodyBytes int64

	// UserAgent is sent with every request.
	UserAgent string
}

// DefaultOptions returns the default fetcher options.
func DefaultOptions() Options {
	return Options{
		Timeout:      30 * time.Second,
		MaxBodyBytes: 64 * 1024 * 1024,
		UserAgent:    "hooklens/" + version.Version,
	}
}

// Fetcher issues plain GETs. Only 2xx bodies are consumed; Content-Type
// is ignored.
type Fetcher struct {
	client *http.Client
	opts   Options
}

// New creates a Fetcher with the given options. Zero-value fields fall
// back to defaults.
func New(opts Options) *Fetcher {
	def := DefaultOptions()
	if opts.Timeout == 0 {
		opts.Timeout = def.Timeout
	}
	if opts.MaxBodyBytes == 0 {
		opts.MaxBodyBytes = def.MaxBodyBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	return &Fetcher{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}
}

// Fetch retrieves url and returns its body. Non-2xx statuses, transport
// errors, and read errors all fail the fetch; the caller isolates the
// failure to the hooks of the affected file.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*types.FetchedFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewFetchError(url, 0, err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.NewFetchError(url, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewFetchError(url, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBodyBytes))
	if err != nil {
		return nil, errors.NewFetchError(url, 0, err)
	}

	return &types.FetchedFile{URL: url, Body: string(body)}, nil
}
