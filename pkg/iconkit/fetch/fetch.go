// Package fetch provides the text-fetch capability the icon registry uses to
// load icon and icon-set documents.
//
// Fetchers return the raw response body; parsing is the caller's job.
// Fetchers never retry: a failed fetch is reported once and the caller
// decides whether to ask again.
package fetch

import (
	"context"
	"errors"
	"fmt"
)

// Fetcher loads the text content of a URL.
// Implementations must be safe for concurrent use.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (string, error)

// FetchText implements Fetcher.
func (f FetcherFunc) FetchText(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// ErrBodyTooLarge indicates a response exceeded the configured size limit.
var ErrBodyTooLarge = errors.New("response body too large")

// HTTPError represents a non-2xx HTTP response.
type HTTPError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("HTTP %d at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
