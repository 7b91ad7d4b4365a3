package iconkit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/randalmurphal/iconkit/pkg/iconkit/cache"
	"github.com/randalmurphal/iconkit/pkg/iconkit/fetch"
	"github.com/randalmurphal/iconkit/pkg/iconkit/observability"
	"github.com/randalmurphal/iconkit/pkg/iconkit/sanitize"
	"github.com/randalmurphal/iconkit/pkg/iconkit/svgdom"
)

// DefaultFontClass is the font class used until SetDefaultFontClasses is called.
const DefaultFontClass = "material-icons"

// Registry registers SVG icons by name, URL or icon set and resolves them to
// independent element copies. Fetches are lazy, cached per URL and shared
// between concurrent callers.
//
// A Registry is safe for concurrent use.
type Registry struct {
	fetcher              fetch.Fetcher
	sanitizer            sanitize.Sanitizer
	store                cache.Store
	logger               *slog.Logger
	metrics              observability.MetricsRecorder
	spans                observability.SpanManager
	maxConcurrentFetches int
	closers              []io.Closer

	flights singleflight.Group

	// storeMu orders store write-backs against Dispose. Taken before mu.
	storeMu sync.Mutex

	mu                 sync.Mutex
	gen                uint64
	icons              map[Key]*entry
	sets               map[string][]*entry
	urlCache           map[string]*svgdom.Element
	fontAliases        map[string]string
	defaultFontClasses []string
}

// New creates a Registry.
//
// Example:
//
//	reg := iconkit.New(
//	    iconkit.WithFetcher(fetch.NewHTTPFetcher()),
//	    iconkit.WithLogger(logger),
//	)
//	reg.AddIcon("home", "https://cdn.example.com/icons/home.svg")
//	svg, err := reg.Icon(ctx, "home")
func New(opts ...Option) *Registry {
	r := &Registry{
		sanitizer:          sanitize.New(),
		logger:             slog.Default(),
		metrics:            observability.NoopMetrics{},
		spans:              observability.NoopSpanManager{},
		icons:              make(map[Key]*entry),
		sets:               make(map[string][]*entry),
		urlCache:           make(map[string]*svgdom.Element),
		fontAliases:        make(map[string]string),
		defaultFontClasses: []string{DefaultFontClass},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Provide returns parent when it is non-nil and a new Registry built from
// opts otherwise. Nested scopes use it to share one registry with their
// outermost owner.
func Provide(parent *Registry, opts ...Option) *Registry {
	if parent != nil {
		return parent
	}
	return New(opts...)
}

// RegisterByURL registers a named icon loaded from url on first use.
// A later registration under the same key replaces this one.
func (r *Registry) RegisterByURL(namespace, name, url string) *Registry {
	return r.addIcon(Key{Namespace: namespace, Name: name}, URLSource{URL: url})
}

// AddIcon registers a named icon in the default namespace, loaded from url.
func (r *Registry) AddIcon(name, url string) *Registry {
	return r.RegisterByURL("", name, url)
}

// RegisterByMarkup registers a named icon from inline markup.
// The markup is sanitized and parsed immediately; on error the registry is
// left unchanged.
func (r *Registry) RegisterByMarkup(namespace, name, markup string) (*Registry, error) {
	key := Key{Namespace: namespace, Name: name}
	elem, err := r.parseInline(key, markup)
	if err != nil {
		return r, err
	}
	return r.addIcon(key, InlineSource{Element: setSvgAttributes(elem)}), nil
}

// AddIconMarkup registers a named icon in the default namespace from inline
// markup.
func (r *Registry) AddIconMarkup(name, markup string) (*Registry, error) {
	return r.RegisterByMarkup("", name, markup)
}

// RegisterSetByURL appends an icon set loaded from url to namespace.
// Sets registered later take precedence when several define the same icon.
func (r *Registry) RegisterSetByURL(namespace, url string) *Registry {
	return r.addSet(namespace, URLSource{URL: url})
}

// AddIconSet appends an icon set in the default namespace, loaded from url.
func (r *Registry) AddIconSet(url string) *Registry {
	return r.RegisterSetByURL("", url)
}

// RegisterSetByMarkup appends an icon set parsed from inline markup to
// namespace. On error the registry is left unchanged.
func (r *Registry) RegisterSetByMarkup(namespace, markup string) (*Registry, error) {
	elem, err := r.parseInline(Key{}, markup)
	if err != nil {
		return r, err
	}
	return r.addSet(namespace, InlineSource{Element: elem}), nil
}

// AddIconSetMarkup appends an icon set in the default namespace from inline
// markup.
func (r *Registry) AddIconSetMarkup(markup string) (*Registry, error) {
	return r.RegisterSetByMarkup("", markup)
}

// RegisterFontAlias maps alias to a CSS class name for icon fonts.
// An empty className maps the alias to itself.
func (r *Registry) RegisterFontAlias(alias, className string) *Registry {
	if className == "" {
		className = alias
	}
	r.mu.Lock()
	r.fontAliases[alias] = className
	r.mu.Unlock()
	return r
}

// ClassNameForFontAlias returns the class registered for alias, or alias
// itself when none is.
func (r *Registry) ClassNameForFontAlias(alias string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if className, ok := r.fontAliases[alias]; ok && className != "" {
		return className
	}
	return alias
}

// SetDefaultFontClasses replaces the classes used for font icons that name
// no font set.
func (r *Registry) SetDefaultFontClasses(classNames ...string) *Registry {
	r.mu.Lock()
	r.defaultFontClasses = slices.Clone(classNames)
	r.mu.Unlock()
	return r
}

// DefaultFontClasses returns a copy of the default font classes.
func (r *Registry) DefaultFontClasses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.defaultFontClasses)
}

// Dispose drops every registration and cached document, including the cache
// store if one is configured. Fetches still in flight complete, but their
// results are discarded. Font settings are kept.
func (r *Registry) Dispose() {
	r.storeMu.Lock()
	defer r.storeMu.Unlock()

	r.mu.Lock()
	icons, sets, cached := len(r.icons), 0, len(r.urlCache)
	for _, list := range r.sets {
		sets += len(list)
	}
	r.gen++
	clear(r.icons)
	clear(r.sets)
	clear(r.urlCache)
	r.mu.Unlock()

	if r.store != nil {
		if err := r.store.Clear(context.Background()); err != nil {
			observability.LogStoreError(r.logger, "clear", "", err)
		}
	}
	observability.LogDispose(r.logger, icons, sets, cached)
}

// Close releases resources the registry opened itself, such as the cache
// store created by FromSettings. Stores passed in with WithCacheStore are
// left to their owner.
func (r *Registry) Close() error {
	r.mu.Lock()
	closers := r.closers
	r.closers = nil
	r.mu.Unlock()

	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) addIcon(key Key, src Source) *Registry {
	r.mu.Lock()
	r.icons[key] = newEntry(src)
	r.mu.Unlock()
	return r
}

func (r *Registry) addSet(namespace string, src Source) *Registry {
	r.mu.Lock()
	r.sets[namespace] = append(r.sets[namespace], newEntry(src))
	r.mu.Unlock()
	return r
}

// parseInline sanitizes and parses registered markup. key is zero for sets.
func (r *Registry) parseInline(key Key, markup string) (*svgdom.Element, error) {
	safe, err := r.sanitizer.SanitizeMarkup(markup)
	if err != nil {
		return nil, &UnsafeMarkupError{Key: key, Err: err}
	}
	elem, err := svgdom.Parse(safe)
	if err != nil {
		if key == (Key{}) {
			return nil, fmt.Errorf("parse icon set markup: %w", err)
		}
		return nil, fmt.Errorf("parse markup for icon %s: %w", key, err)
	}
	return elem, nil
}
