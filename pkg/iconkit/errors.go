package iconkit

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/iconkit/pkg/iconkit/svgdom"
)

// Sentinel errors for registration and resolution.
var (
	// ErrUnsafeURL indicates the sanitizer rejected an icon URL.
	ErrUnsafeURL = errors.New("unsafe icon url")

	// ErrUnsafeMarkup indicates the sanitizer rejected inline icon markup.
	ErrUnsafeMarkup = errors.New("unsafe icon markup")

	// ErrNoFetcher indicates an icon had to be loaded by URL but the registry
	// has no fetcher. Configure one with WithFetcher.
	ErrNoFetcher = errors.New("no fetcher configured")

	// ErrFetchFailed indicates fetching an icon document failed.
	ErrFetchFailed = errors.New("icon fetch failed")

	// ErrIconNotFound indicates no registered icon or icon set matched a name.
	ErrIconNotFound = errors.New("icon not found")
)

// ErrMalformedMarkup indicates icon markup has no <svg> element.
var ErrMalformedMarkup = svgdom.ErrNoSVG

// UnsafeURLError reports a URL the sanitizer rejected.
type UnsafeURLError struct {
	// URL is the URL as given by the caller.
	URL string
	// Err is the sanitizer's error.
	Err error
}

// Error implements the error interface.
func (e *UnsafeURLError) Error() string {
	return fmt.Sprintf("unsafe icon url %q: %v", e.URL, e.Err)
}

// Unwrap returns the sanitizer's error for errors.Is/As support.
func (e *UnsafeURLError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrUnsafeURL.
func (e *UnsafeURLError) Is(target error) bool {
	return target == ErrUnsafeURL
}

// UnsafeMarkupError reports inline markup the sanitizer rejected.
type UnsafeMarkupError struct {
	// Key is the icon being registered, or the zero Key for an icon set.
	Key Key
	// Err is the sanitizer's error.
	Err error
}

// Error implements the error interface.
func (e *UnsafeMarkupError) Error() string {
	if e.Key == (Key{}) {
		return fmt.Sprintf("unsafe icon set markup: %v", e.Err)
	}
	return fmt.Sprintf("unsafe markup for icon %s: %v", e.Key, e.Err)
}

// Unwrap returns the sanitizer's error for errors.Is/As support.
func (e *UnsafeMarkupError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrUnsafeMarkup.
func (e *UnsafeMarkupError) Is(target error) bool {
	return target == ErrUnsafeMarkup
}

// FetchError wraps a failed fetch of an icon document.
type FetchError struct {
	// URL is the sanitized URL that was fetched.
	URL string
	// Err is the fetcher's error.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch icon %s: %v", e.URL, e.Err)
}

// Unwrap returns the fetcher's error for errors.Is/As support.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetchFailed.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// IconNotFoundError reports a name that no icon or icon set provides.
type IconNotFoundError struct {
	Key Key
}

// Error implements the error interface.
func (e *IconNotFoundError) Error() string {
	return fmt.Sprintf("unable to find icon with the name %q", e.Key.String())
}

// Unwrap returns ErrIconNotFound.
func (e *IconNotFoundError) Unwrap() error {
	return ErrIconNotFound
}
