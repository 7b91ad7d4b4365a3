package benchmarks

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/randalmurphal/iconkit/pkg/iconkit/cache"
)

// BenchmarkMemoryStore_Put measures in-memory document writes.
func BenchmarkMemoryStore_Put(b *testing.B) {
	store := cache.NewMemoryStore()
	ctx := context.Background()
	doc := largeSet(200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Put(ctx, setURL(i%100), doc)
	}
}

// BenchmarkMemoryStore_Get measures in-memory document reads.
func BenchmarkMemoryStore_Get(b *testing.B) {
	store := cache.NewMemoryStore()
	ctx := context.Background()
	_ = store.Put(ctx, setURL(0), largeSet(200))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Get(ctx, setURL(0))
	}
}

// BenchmarkSQLiteStore_Put measures SQLite document writes.
func BenchmarkSQLiteStore_Put(b *testing.B) {
	store, cleanup := createSQLiteStore(b)
	defer cleanup()
	ctx := context.Background()
	doc := largeSet(200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Put(ctx, setURL(i%100), doc)
	}
}

// BenchmarkSQLiteStore_Get measures SQLite document reads.
func BenchmarkSQLiteStore_Get(b *testing.B) {
	store, cleanup := createSQLiteStore(b)
	defer cleanup()
	ctx := context.Background()
	_ = store.Put(ctx, setURL(0), largeSet(200))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Get(ctx, setURL(0))
	}
}

// Helper functions

func setURL(i int) string {
	return fmt.Sprintf("https://cdn.example.com/sets/%d.svg", i)
}

// largeSet builds an icon set document with n symbol members.
func largeSet(n int) string {
	var sb strings.Builder
	sb.WriteString("<svg>")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, `<symbol id="icon-%d" viewBox="0 0 24 24"><path d="M%d 0h24v24H0z"/></symbol>`, i, i)
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func createSQLiteStore(b *testing.B) (*cache.SQLiteStore, func()) {
	b.Helper()
	tmpFile, err := os.CreateTemp("", "bench-*.db")
	if err != nil {
		b.Fatal(err)
	}
	tmpFile.Close()

	store, err := cache.NewSQLiteStore(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		b.Fatal(err)
	}

	return store, func() {
		store.Close()
		os.Remove(tmpFile.Name())
	}
}
