// Package fetch implements the Fetcher interface.
// A source is "-" (stdin), an http(s) URL, or a local file path.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gaurav-prasanna/qbformat/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "qbformat/1.0 (https://github.com/gaurav-prasanna/qbformat)"

	// Stdin is the source name that reads standard input.
	Stdin = "-"
)

// SourceFetcher reads question exports from files, stdin, or HTTP.
type SourceFetcher struct {
	client *http.Client
	stdin  io.Reader
}

// New creates a SourceFetcher with a sensible HTTP timeout.
func New() *SourceFetcher {
	return &SourceFetcher{
		client: &http.Client{Timeout: defaultTimeout},
		stdin:  os.Stdin,
	}
}

// WithStdin replaces the reader used for the "-" source.
func (f *SourceFetcher) WithStdin(r io.Reader) *SourceFetcher {
	f.stdin = r
	return f
}

// IsURL reports whether source is fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch retrieves the raw text of source.
func (f *SourceFetcher) Fetch(ctx context.Context, source string) (*core.FetchResult, error) {
	switch {
	case source == Stdin:
		body, err := io.ReadAll(f.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return &core.FetchResult{Source: source, Body: string(body)}, nil
	case IsURL(source):
		return f.fetchURL(ctx, source)
	default:
		body, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		return &core.FetchResult{Source: source, Body: string(body)}, nil
	}
}

func (f *SourceFetcher) fetchURL(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json,text/html;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		Source:      url,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}, nil
}
