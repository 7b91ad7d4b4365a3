package iconkit

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/iconkit/pkg/iconkit/fetch"
	"github.com/randalmurphal/iconkit/pkg/iconkit/observability"
	"github.com/randalmurphal/iconkit/pkg/iconkit/svgdom"
)

// Sources reported in resolution logs.
const (
	sourceCache  = "cache"
	sourceInline = "inline"
	sourceFetch  = "fetch"
	sourceSet    = "set"
)

// resolution carries the per-call observability state of one resolve.
type resolution struct {
	r      *Registry
	op     string
	target string
	logger *slog.Logger
	span   trace.Span
	start  time.Time
	source string
}

func (r *Registry) startResolve(ctx context.Context, op, target string) (context.Context, *resolution) {
	id := uuid.New().String()
	ctx, span := r.spans.StartResolveSpan(ctx, op, target, id)
	res := &resolution{
		r:      r,
		op:     op,
		target: target,
		logger: observability.EnrichLogger(r.logger, id, op),
		span:   span,
		start:  time.Now(),
	}
	observability.LogResolveStart(res.logger, target)
	return ctx, res
}

func (res *resolution) end(ctx context.Context, err error) {
	elapsed := time.Since(res.start)
	ms := float64(elapsed.Microseconds()) / 1000
	res.r.metrics.RecordResolve(ctx, res.op, elapsed, err)
	if err != nil {
		observability.LogResolveError(res.logger, res.target, err, ms)
	} else {
		observability.LogResolveComplete(res.logger, res.target, res.source, ms)
	}
	res.r.spans.EndSpanWithError(res.span, err)
}

// ResolveByURL returns a copy of the icon at url, fetching and caching it on
// first use. Every call returns an element the caller may modify freely.
//
// Errors: *UnsafeURLError, ErrNoFetcher, *FetchError, ErrMalformedMarkup,
// or ctx.Err() when ctx ends first.
func (r *Registry) ResolveByURL(ctx context.Context, url string) (svg *svgdom.Element, err error) {
	ctx, res := r.startResolve(ctx, "url", url)
	defer func() { res.end(ctx, err) }()

	safe, err := r.sanitizer.SanitizeURL(url)
	if err != nil {
		return nil, &UnsafeURLError{URL: url, Err: err}
	}

	r.mu.Lock()
	gen := r.gen
	cached := r.urlCache[safe]
	r.mu.Unlock()

	r.metrics.RecordCacheLookup(ctx, "url", cached != nil)
	if cached != nil {
		res.source = sourceCache
		return cached.Clone(), nil
	}

	text, err := r.fetchText(ctx, gen, safe)
	if err != nil {
		return nil, err
	}
	parsed, err := parseIcon(text)
	if err != nil {
		return nil, fmt.Errorf("parse icon %s: %w", safe, err)
	}

	r.mu.Lock()
	if r.gen == gen {
		if existing := r.urlCache[safe]; existing != nil {
			parsed = existing
		} else {
			r.urlCache[safe] = parsed
		}
	}
	r.mu.Unlock()

	res.source = sourceFetch
	return parsed.Clone(), nil
}

// Icon resolves name in the default namespace.
func (r *Registry) Icon(ctx context.Context, name string) (*svgdom.Element, error) {
	return r.ResolveByName(ctx, name, "")
}

// ResolveByName returns a copy of the icon registered as name in namespace.
//
// A named registration wins over icon sets. Otherwise the namespace's icon
// sets are searched newest first for an element with id name: sets already
// loaded are searched before anything is fetched, then every unloaded set is
// fetched in parallel and the search repeated once all fetches settle. A set
// that fails to load is logged and skipped. If ctx ends during the fetches,
// sets that did load are still searched and ctx.Err() is returned on a miss.
//
// Errors: *IconNotFoundError, *UnsafeURLError, ErrNoFetcher, *FetchError
// (named URL icons only), ErrMalformedMarkup, or ctx.Err().
func (r *Registry) ResolveByName(ctx context.Context, name, namespace string) (svg *svgdom.Element, err error) {
	key := Key{Namespace: namespace, Name: name}
	ctx, res := r.startResolve(ctx, "name", key.String())
	defer func() { res.end(ctx, err) }()

	r.mu.Lock()
	gen := r.gen
	icon := r.icons[key]
	sets := slices.Clone(r.sets[namespace])
	r.mu.Unlock()

	r.metrics.RecordCacheLookup(ctx, "named", icon != nil)
	if icon != nil {
		return r.resolveEntry(ctx, res, gen, icon)
	}

	if len(sets) == 0 {
		return nil, &IconNotFoundError{Key: key}
	}

	found := r.searchSets(sets, name)
	r.metrics.RecordCacheLookup(ctx, "set", found != nil)
	if found != nil {
		res.source = sourceSet
		return found, nil
	}

	if err := r.loadSets(ctx, res.logger, gen, namespace, sets); err != nil {
		return nil, err
	}

	if found := r.searchSets(sets, name); found != nil {
		res.source = sourceSet
		return found, nil
	}
	// Sets whose fetch was abandoned on cancellation are missing, so a miss
	// is not conclusive.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, &IconNotFoundError{Key: key}
}

// resolveEntry returns a copy of a named icon, fetching it if needed.
func (r *Registry) resolveEntry(ctx context.Context, res *resolution, gen uint64, e *entry) (*svgdom.Element, error) {
	r.mu.Lock()
	elem := e.elem
	r.mu.Unlock()

	if elem != nil {
		res.source = sourceCache
		if _, inline := e.src.(InlineSource); inline {
			res.source = sourceInline
		}
		return elem.Clone(), nil
	}

	elem, err := r.materialize(ctx, gen, e, parseIcon)
	if err != nil {
		return nil, err
	}
	res.source = sourceFetch
	return elem.Clone(), nil
}

// materialize fetches and parses a URL entry and records the result on it.
// If another caller got there first, its element is kept and returned.
func (r *Registry) materialize(ctx context.Context, gen uint64, e *entry, parse func(string) (*svgdom.Element, error)) (*svgdom.Element, error) {
	raw := e.url()
	safe, err := r.sanitizer.SanitizeURL(raw)
	if err != nil {
		return nil, &UnsafeURLError{URL: raw, Err: err}
	}

	text, err := r.fetchText(ctx, gen, safe)
	if err != nil {
		return nil, err
	}
	elem, err := parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse icon %s: %w", safe, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e.elem == nil {
		e.elem = elem
	}
	return e.elem, nil
}

// searchSets looks for name in the loaded sets, newest first.
func (r *Registry) searchSets(sets []*entry, name string) *svgdom.Element {
	r.mu.Lock()
	loaded := make([]*svgdom.Element, len(sets))
	for i, e := range sets {
		loaded[i] = e.elem
	}
	r.mu.Unlock()

	for i := len(loaded) - 1; i >= 0; i-- {
		if loaded[i] == nil {
			continue
		}
		if icon := extractIcon(loaded[i], name); icon != nil {
			return icon
		}
	}
	return nil
}

// loadSets fetches every set that is not loaded yet, in parallel, and
// returns when all of them have settled. Failures are logged and otherwise
// ignored. It fails only when a set needs fetching and there is no fetcher.
func (r *Registry) loadSets(ctx context.Context, logger *slog.Logger, gen uint64, namespace string, sets []*entry) error {
	r.mu.Lock()
	var pending []*entry
	for _, e := range sets {
		if e.elem == nil {
			pending = append(pending, e)
		}
	}
	r.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	if r.fetcher == nil {
		return ErrNoFetcher
	}

	r.spans.AddSpanEvent(ctx, "icon_sets.fetch",
		attribute.String("namespace", namespace),
		attribute.Int("count", len(pending)),
	)

	var g errgroup.Group
	if r.maxConcurrentFetches > 0 {
		g.SetLimit(r.maxConcurrentFetches)
	}
	for _, e := range pending {
		g.Go(func() error {
			if _, err := r.materialize(ctx, gen, e, svgdom.Parse); err != nil {
				observability.LogSetLoadFailed(logger, namespace, e.url(), err, fetch.Categorize(err).String())
			}
			return nil
		})
	}
	return g.Wait()
}
