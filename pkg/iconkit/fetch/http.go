package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// DefaultTimeout bounds a single HTTP fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodyBytes caps the size of a fetched document.
	DefaultMaxBodyBytes int64 = 4 << 20

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "iconkit"
)

// HTTPFetcher fetches documents with a plain GET.
// Requests go through an otelhttp transport, so they join the caller's trace
// when a tracer provider is configured.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient replaces the underlying client.
// The fetcher keeps a shallow copy, so later options such as WithTimeout
// leave c untouched. Its transport is not wrapped.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			cp := *c
			f.client = &cp
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		if d >= 0 {
			f.client.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodyBytes caps the accepted response size.
func WithMaxBodyBytes(n int64) HTTPOption {
	return func(f *HTTPFetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// NewHTTPFetcher creates an HTTPFetcher.
//
// Example:
//
//	f := fetch.NewHTTPFetcher(
//	    fetch.WithTimeout(5*time.Second),
//	    fetch.WithUserAgent("my-app/1.0"),
//	)
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Compile-time interface check.
var _ Fetcher = (*HTTPFetcher)(nil)

// FetchText implements Fetcher.
func (f *HTTPFetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "image/svg+xml, text/plain;q=0.9, */*;q=0.8")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(snippet))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Endpoint:   url,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return "", fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, f.maxBytes)
	}
	return string(body), nil
}
