package iconkit

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/randalmurphal/iconkit/pkg/iconkit/cache"
	"github.com/randalmurphal/iconkit/pkg/iconkit/fetch"
	"github.com/randalmurphal/iconkit/pkg/iconkit/observability"
)

// fetchText returns the text at a sanitized URL. It is the only path to the
// fetcher.
//
// Concurrent calls for the same URL within one cache generation share a
// single fetch, which is forgotten as soon as it settles. The shared fetch
// does not inherit the caller's cancellation: a caller whose ctx ends stops
// waiting, the fetch itself carries on for the others.
func (r *Registry) fetchText(ctx context.Context, gen uint64, url string) (string, error) {
	if r.fetcher == nil {
		return "", ErrNoFetcher
	}

	key := strconv.FormatUint(gen, 10) + "|" + url
	ch := r.flights.DoChan(key, func() (any, error) {
		return r.load(context.WithoutCancel(ctx), gen, url)
	})

	select {
	case res := <-ch:
		if res.Shared {
			r.metrics.RecordSharedFetch(ctx)
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// load reads url from the cache store, falling back to the fetcher.
// Fetched text is written back to the store unless the registry was disposed
// in the meantime.
func (r *Registry) load(ctx context.Context, gen uint64, url string) (text string, err error) {
	ctx, span := r.spans.StartFetchSpan(ctx, url)
	defer func() {
		r.spans.EndSpanWithError(span, err)
	}()

	elapsed := observability.TimedOperation()

	if r.store != nil {
		stored, getErr := r.store.Get(ctx, url)
		switch {
		case getErr == nil:
			r.metrics.RecordCacheLookup(ctx, "store", true)
			observability.LogFetchComplete(r.logger, url, elapsed(), len(stored), true)
			return stored, nil
		case errors.Is(getErr, cache.ErrNotFound):
			r.metrics.RecordCacheLookup(ctx, "store", false)
		default:
			observability.LogStoreError(r.logger, "get", url, getErr)
		}
	}

	observability.LogFetchStart(r.logger, url)
	start := time.Now()
	text, err = r.fetcher.FetchText(ctx, url)
	r.metrics.RecordFetch(ctx, time.Since(start), err)
	if err != nil {
		observability.LogFetchError(r.logger, url, err, fetch.Categorize(err).String())
		return "", &FetchError{URL: url, Err: err}
	}
	observability.LogFetchComplete(r.logger, url, elapsed(), len(text), false)

	r.storeText(ctx, gen, url, text)
	return text, nil
}

// storeText writes fetched text to the store unless the registry was disposed
// since gen. storeMu is held across the generation check and the write.
func (r *Registry) storeText(ctx context.Context, gen uint64, url, text string) {
	if r.store == nil {
		return
	}
	r.storeMu.Lock()
	defer r.storeMu.Unlock()
	if r.generation() != gen {
		return
	}
	if err := r.store.Put(ctx, url, text); err != nil {
		observability.LogStoreError(r.logger, "put", url, err)
	}
}

func (r *Registry) generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}
