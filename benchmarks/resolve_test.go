package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/randalmurphal/iconkit/pkg/iconkit"
	"github.com/randalmurphal/iconkit/pkg/iconkit/fetch"
	"github.com/randalmurphal/iconkit/pkg/iconkit/sanitize"
	"github.com/randalmurphal/iconkit/pkg/iconkit/svgdom"
)

const homeSVG = `<svg viewBox="0 0 24 24"><path d="M10 20v-6h4v6h5v-8h3L12 3 2 12h3v8z"/></svg>`

// BenchmarkResolveByURL_Cached resolves an already cached URL icon.
func BenchmarkResolveByURL_Cached(b *testing.B) {
	reg := newRegistry(map[string]string{setURL(0): homeSVG})
	ctx := context.Background()
	if _, err := reg.ResolveByURL(ctx, setURL(0)); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = reg.ResolveByURL(ctx, setURL(0))
	}
}

// BenchmarkResolveByName_Named resolves an inline named icon.
func BenchmarkResolveByName_Named(b *testing.B) {
	reg := newRegistry(nil)
	if _, err := reg.AddIconMarkup("home", homeSVG); err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = reg.Icon(ctx, "home")
	}
}

// BenchmarkResolveByName_Set_10 extracts from the newest of 10 loaded sets.
func BenchmarkResolveByName_Set_10(b *testing.B) {
	benchmarkSets(b, 10, "icon-0")
}

// BenchmarkResolveByName_SetMiss_10 searches all 10 sets, hitting the oldest.
func BenchmarkResolveByName_SetMiss_10(b *testing.B) {
	benchmarkSets(b, 10, "only-first")
}

func benchmarkSets(b *testing.B, n int, name string) {
	docs := make(map[string]string, n)
	reg := newRegistry(docs)
	docs[setURL(0)] = `<svg><g id="only-first"><path d="M0 0"/></g></svg>`
	reg.AddIconSet(setURL(0))
	for i := 1; i < n; i++ {
		docs[setURL(i)] = largeSet(50)
		reg.AddIconSet(setURL(i))
	}
	ctx := context.Background()
	if _, err := reg.Icon(ctx, name); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = reg.Icon(ctx, name)
	}
}

// BenchmarkParse_Set_200 parses a 200-member icon set.
func BenchmarkParse_Set_200(b *testing.B) {
	doc := largeSet(200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = svgdom.Parse(doc)
	}
}

// BenchmarkFindByID_Set_200 looks up the last member of a parsed set.
func BenchmarkFindByID_Set_200(b *testing.B) {
	set, err := svgdom.Parse(largeSet(200))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = set.FindByID("icon-199")
	}
}

// BenchmarkSanitizeMarkup_Set_200 measures markup sanitization overhead.
func BenchmarkSanitizeMarkup_Set_200(b *testing.B) {
	s := sanitize.New()
	doc := largeSet(200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.SanitizeMarkup(doc)
	}
}

// Helper functions

func newRegistry(docs map[string]string) *iconkit.Registry {
	fetcher := fetch.FetcherFunc(func(_ context.Context, url string) (string, error) {
		if doc, ok := docs[url]; ok {
			return doc, nil
		}
		return "", fmt.Errorf("no document for %s", url)
	})
	return iconkit.New(iconkit.WithFetcher(fetcher), iconkit.WithLogger(nil))
}
