package fetch

import (
	"context"
	"errors"
	"io/fs"
	"net"
)

// Category describes whether asking again later might succeed.
// It is informational only; nothing in this module retries.
type Category int

const (
	// CategoryTransient indicates a later attempt will likely help.
	// Examples: timeouts, rate limits, 5xx responses.
	CategoryTransient Category = iota

	// CategoryPermanent indicates a later attempt will not help.
	// Examples: 404, 403, missing files.
	CategoryPermanent

	// CategoryCanceled indicates the caller gave up.
	CategoryCanceled
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryTransient:
		return "transient"
	case CategoryPermanent:
		return "permanent"
	case CategoryCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Categorize classifies a fetch error.
func Categorize(err error) Category {
	if err == nil {
		return CategoryPermanent
	}

	if errors.Is(err, context.Canceled) {
		return CategoryCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTransient
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case 408, 425, 429:
			return CategoryTransient
		default:
			if httpErr.StatusCode >= 500 {
				return CategoryTransient
			}
			return CategoryPermanent
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CategoryTransient
	}

	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrBodyTooLarge) {
		return CategoryPermanent
	}

	// Unknown transport failures (connection refused, DNS) may clear up.
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return CategoryTransient
	}

	return CategoryPermanent
}

// IsTransient reports whether a later attempt might succeed.
func IsTransient(err error) bool {
	return Categorize(err) == CategoryTransient
}
