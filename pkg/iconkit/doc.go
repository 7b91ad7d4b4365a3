/*
Package iconkit provides a caching, request-deduplicating registry for SVG icons.

# Overview

Icons are registered under a name in a namespace, either from a URL fetched on
first use or from inline markup, or in bulk as icon sets: documents holding
many elements tagged with an id. Resolving an icon returns an *svgdom.Element
the caller owns outright; the registry keeps its own copy untouched.

# Basic Usage

	reg := iconkit.New(iconkit.WithFetcher(fetch.NewHTTPFetcher()))

	reg.AddIcon("home", "https://cdn.example.com/icons/home.svg")
	reg.RegisterSetByURL("brand", "https://cdn.example.com/icons/brand-set.svg")
	if _, err := reg.AddIconMarkup("dot", `<svg viewBox="0 0 8 8"><circle cx="4" cy="4" r="4"/></svg>`); err != nil {
	    log.Fatal(err)
	}

	home, err := reg.Icon(ctx, "home")
	logo, err := reg.ResolveByName(ctx, "logo", "brand")
	raw, err := reg.ResolveByURL(ctx, "https://cdn.example.com/icons/misc.svg")

# Resolution

A named registration always wins. Without one, the namespace's icon sets are
searched from the most recently registered to the oldest. Sets already
loaded are searched first; only when none has the icon are the remaining sets
fetched, all in parallel, and searched again once every fetch has settled.
A set that fails to load is logged and skipped.

Fetched documents are cached per URL. Concurrent resolutions of the same URL
share one fetch. Failed fetches are not cached, so the next resolution asks
again; nothing retries on its own.

Every resolved icon carries the same attributes: fit="", width and height
of 100%, preserveAspectRatio="xMidYMid meet" and focusable="false".

# Security

URLs and inline markup go through a sanitize.Sanitizer before use. The default
allows http and https URLs and strips scripts, event handler attributes and
script URLs from markup. Replace it with WithSanitizer.

# Errors

	_, err := reg.Icon(ctx, "missing")
	if errors.Is(err, iconkit.ErrIconNotFound) {
	    // fall back to a font icon
	}

	var fetchErr *iconkit.FetchError
	if errors.As(err, &fetchErr) {
	    log.Printf("fetch %s: %v", fetchErr.URL, fetchErr.Err)
	}

# Caching Tier

WithCacheStore adds a store for raw fetched documents, consulted before the
network. cache.SQLiteStore keeps documents across restarts:

	store, err := cache.NewSQLiteStore("./icons.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

	reg := iconkit.New(
	    iconkit.WithFetcher(fetch.NewHTTPFetcher()),
	    iconkit.WithCacheStore(store),
	)

# Configuration

A manifest registers a whole catalog, and FromSettings wires a registry from
ICONKIT_* environment variables:

	settings, err := config.FromEnv()
	reg, err := iconkit.FromSettings(settings)
	defer reg.Close()

# Observability

	reg := iconkit.New(
	    iconkit.WithLogger(logger),
	    iconkit.WithMetrics(true),
	    iconkit.WithTracing(true),
	)

Logs carry resolve_id and op fields. OpenTelemetry metrics: iconkit.fetch.*,
iconkit.cache.*, iconkit.resolve.*. Spans: iconkit.resolve.{url,name} >
iconkit.fetch.

# Lifecycle

Dispose drops registrations and cached documents. Fetches still in flight
finish, but their results are thrown away. Provide hands nested scopes the
registry of their parent scope when there is one.

# Thread Safety

  - Registry IS safe for concurrent use
  - Resolved elements belong to the caller and are not shared

# Subpackages

  - svgdom: parsed SVG element trees
  - sanitize: URL and markup sanitization
  - fetch: HTTP and fs.FS fetchers
  - cache: raw document stores (memory, SQLite)
  - config: manifests and environment settings
  - observability: logging, metrics, and tracing helpers
*/
package iconkit
