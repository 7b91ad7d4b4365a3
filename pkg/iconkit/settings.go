package iconkit

import (
	"fmt"

	"github.com/randalmurphal/iconkit/pkg/iconkit/cache"
	"github.com/randalmurphal/iconkit/pkg/iconkit/config"
	"github.com/randalmurphal/iconkit/pkg/iconkit/fetch"
	"github.com/randalmurphal/iconkit/pkg/iconkit/sanitize"
)

// FromSettings builds a registry wired from process settings: an HTTP
// fetcher, a sanitizer honoring the base URL and allowed schemes, the SQLite
// cache store when CachePath is set, and the manifest when ManifestPath is
// set. opts are applied after the settings and override them.
//
// Call Close on the returned registry to release the cache store.
//
// Example:
//
//	settings, err := config.FromEnv()
//	if err != nil {
//	    return err
//	}
//	reg, err := iconkit.FromSettings(settings, iconkit.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer reg.Close()
func FromSettings(s config.Settings, opts ...Option) (*Registry, error) {
	fetcher := fetch.NewHTTPFetcher(
		fetch.WithTimeout(s.HTTPTimeout),
		fetch.WithUserAgent(s.UserAgent),
		fetch.WithMaxBodyBytes(s.MaxBodyBytes),
	)
	sanitizer := sanitize.New(
		sanitize.WithBaseURL(s.BaseURL),
		sanitize.WithSchemes(s.AllowedSchemes...),
	)

	base := []Option{
		WithFetcher(fetcher),
		WithSanitizer(sanitizer),
		WithMaxConcurrentFetches(s.MaxConcurrentFetches),
		WithMetrics(s.Metrics),
		WithTracing(s.Tracing),
	}

	var store *cache.SQLiteStore
	if s.CachePath != "" {
		var err error
		store, err = cache.NewSQLiteStore(s.CachePath)
		if err != nil {
			return nil, fmt.Errorf("open icon cache: %w", err)
		}
		base = append(base, WithCacheStore(store))
	}

	r := New(append(base, opts...)...)
	if store != nil {
		r.closers = append(r.closers, store)
	}

	if s.ManifestPath != "" {
		m, err := config.FromFile(s.ManifestPath)
		if err == nil {
			err = r.ApplyManifest(m)
		}
		if err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("load manifest %s: %w", s.ManifestPath, err)
		}
	}
	return r, nil
}
