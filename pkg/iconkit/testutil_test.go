package iconkit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/iconkit/pkg/iconkit/fetch"
	"github.com/randalmurphal/iconkit/pkg/iconkit/svgdom"
)

// Test documents used across tests.
const (
	homeSVG = `<svg viewBox="0 0 24 24"><path d="M10 20v-6h4v6h5v-8h3L12 3 2 12h3v8z"/></svg>`
	starSVG = `<svg viewBox="0 0 24 24"><path d="M12 17.27L18.18 21l-1.64-7.03L22 9.24z"/></svg>`

	setA = `<svg>
  <defs>
    <symbol id="alpha" viewBox="0 0 10 10"><circle r="1"></circle><rect width="1"></rect></symbol>
  </defs>
  <g id="beta"><path d="M0 0"></path></g>
  <svg id="gamma" viewBox="0 0 5 5"><path d="M1 1"></path></svg>
  <path id="shared" d="A"></path>
</svg>`

	setB = `<svg>
  <path id="shared" d="B"></path>
  <g id="delta"></g>
</svg>`
)

// fakeFetcher serves canned documents and counts calls per URL.
// Unknown URLs fail with a 404 HTTPError.
type fakeFetcher struct {
	mu      sync.Mutex
	docs    map[string]string
	errs    map[string]error
	calls   map[string]int
	gate    chan struct{}
	started chan string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		docs:  make(map[string]string),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// withGate makes every fetch block until release is called, announcing
// itself on started first.
func (f *fakeFetcher) withGate() (started <-chan string, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
	f.started = make(chan string, 64)
	var once sync.Once
	gate := f.gate
	return f.started, func() { once.Do(func() { close(gate) }) }
}

func (f *fakeFetcher) FetchText(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls[url]++
	gate, started := f.gate, f.started
	f.mu.Unlock()

	if started != nil {
		started <- url
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	if doc, ok := f.docs[url]; ok {
		return doc, nil
	}
	return "", &fetch.HTTPError{StatusCode: 404, Message: "Not Found", Endpoint: url}
}

func (f *fakeFetcher) count(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func (f *fakeFetcher) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// newTestRegistry returns a quiet registry backed by f.
func newTestRegistry(f *fakeFetcher, opts ...Option) *Registry {
	base := []Option{WithLogger(nil)}
	if f != nil {
		base = append(base, WithFetcher(f))
	}
	return New(append(base, opts...)...)
}

// logBuffer collects JSON log records.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func newLogBuffer() (*logBuffer, *slog.Logger) {
	b := &logBuffer{}
	return b, slog.New(slog.NewJSONHandler(b, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (b *logBuffer) records(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []map[string]any
	for _, line := range bytes.Split(b.buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

// withMessage returns the records whose msg equals msg.
func withMessage(recs []map[string]any, msg string) []map[string]any {
	var out []map[string]any
	for _, r := range recs {
		if r["msg"] == msg {
			out = append(out, r)
		}
	}
	return out
}

// attr returns an attribute value, failing the test if it is missing.
func attr(t *testing.T, e *svgdom.Element, name string) string {
	t.Helper()
	v, ok := e.Attr(name)
	require.True(t, ok, "attribute %q missing on <%s>", name, e.Tag())
	return v
}

// assertIconAttributes checks the attributes every resolved icon carries.
func assertIconAttributes(t *testing.T, svg *svgdom.Element) {
	t.Helper()
	require.True(t, svg.IsTag("svg"), "expected <svg>, got <%s>", svg.Tag())
	require.Equal(t, "", attr(t, svg, "fit"))
	require.Equal(t, "100%", attr(t, svg, "height"))
	require.Equal(t, "100%", attr(t, svg, "width"))
	require.Equal(t, "xMidYMid meet", attr(t, svg, "preserveAspectRatio"))
	require.Equal(t, "false", attr(t, svg, "focusable"))
}
