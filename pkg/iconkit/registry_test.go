package iconkit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/iconkit/pkg/iconkit/cache"
)

func TestKey_String(t *testing.T) {
	assert.Equal(t, ":home", Key{Name: "home"}.String())
	assert.Equal(t, "brand:logo", Key{Namespace: "brand", Name: "logo"}.String())
}

func TestRegistration_Chaining(t *testing.T) {
	reg := newTestRegistry(nil)

	same := reg.
		AddIcon("a", "https://x/a.svg").
		RegisterByURL("ns", "b", "https://x/b.svg").
		AddIconSet("https://x/set.svg").
		RegisterSetByURL("ns", "https://x/ns-set.svg").
		RegisterFontAlias("fa", "fontawesome").
		SetDefaultFontClasses("mi")
	assert.Same(t, reg, same)

	got, err := reg.AddIconMarkup("c", homeSVG)
	require.NoError(t, err)
	assert.Same(t, reg, got)

	got, err = reg.AddIconSetMarkup(setA)
	require.NoError(t, err)
	assert.Same(t, reg, got)

	assert.Len(t, reg.icons, 3)
	assert.Len(t, reg.sets[""], 2)
	assert.Len(t, reg.sets["ns"], 1)
}

func TestRegistration_NothingFetchedUpFront(t *testing.T) {
	f := newFakeFetcher()
	reg := newTestRegistry(f)

	reg.AddIcon("home", "https://x/home.svg")
	reg.AddIconSet("https://x/set.svg")

	assert.Zero(t, f.total())
}

func TestRegisterByMarkup_UnsafeMarkup(t *testing.T) {
	reg := newTestRegistry(nil)
	_, err := reg.RegisterByMarkup("ns", "bad", starSVG)
	require.NoError(t, err)

	_, err = reg.RegisterByMarkup("ns", "bad", `<script>alert(1)</script>`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsafeMarkup)

	var unsafeErr *UnsafeMarkupError
	require.ErrorAs(t, err, &unsafeErr)
	assert.Equal(t, Key{Namespace: "ns", Name: "bad"}, unsafeErr.Key)

	svg, err := reg.ResolveByName(context.Background(), "bad", "ns")
	require.NoError(t, err, "previous registration survives the rejected one")
	assert.Equal(t, "0 0 24 24", attr(t, svg, "viewBox"))
}

func TestRegisterByMarkup_StripsScripts(t *testing.T) {
	reg := newTestRegistry(nil)
	_, err := reg.AddIconMarkup("x", `<svg onload="alert(1)"><script>alert(2)</script><path d="M0 0"/></svg>`)
	require.NoError(t, err)

	svg, err := reg.Icon(context.Background(), "x")
	require.NoError(t, err)
	_, hasOnload := svg.Attr("onload")
	assert.False(t, hasOnload)
	assert.NotContains(t, svg.String(), "script")
}

func TestRegisterByMarkup_Malformed(t *testing.T) {
	reg := newTestRegistry(nil)

	_, err := reg.AddIconMarkup("x", `<div>not an icon</div>`)
	assert.ErrorIs(t, err, ErrMalformedMarkup)
	assert.Empty(t, reg.icons)

	_, err = reg.AddIconSetMarkup(`<p>nothing</p>`)
	assert.ErrorIs(t, err, ErrMalformedMarkup)
	assert.Empty(t, reg.sets)
}

func TestRegisterSetByMarkup_Unsafe(t *testing.T) {
	reg := newTestRegistry(nil)
	_, err := reg.RegisterSetByMarkup("ns", "   ")
	require.Error(t, err)

	var unsafeErr *UnsafeMarkupError
	require.ErrorAs(t, err, &unsafeErr)
	assert.Equal(t, Key{}, unsafeErr.Key)
	assert.Contains(t, err.Error(), "icon set")
	assert.Empty(t, reg.sets)
}

func TestFontAliases(t *testing.T) {
	reg := newTestRegistry(nil)

	assert.Equal(t, "unknown", reg.ClassNameForFontAlias("unknown"))

	reg.RegisterFontAlias("fa", "fontawesome")
	assert.Equal(t, "fontawesome", reg.ClassNameForFontAlias("fa"))

	reg.RegisterFontAlias("mi", "")
	assert.Equal(t, "mi", reg.ClassNameForFontAlias("mi"))

	reg.RegisterFontAlias("fa", "fa-solid")
	assert.Equal(t, "fa-solid", reg.ClassNameForFontAlias("fa"))
}

func TestDefaultFontClasses(t *testing.T) {
	reg := newTestRegistry(nil)
	assert.Equal(t, []string{"material-icons"}, reg.DefaultFontClasses())

	reg.SetDefaultFontClasses("mi", "mi-outlined")
	classes := reg.DefaultFontClasses()
	assert.Equal(t, []string{"mi", "mi-outlined"}, classes)

	classes[0] = "changed"
	assert.Equal(t, []string{"mi", "mi-outlined"}, reg.DefaultFontClasses())

	reg.SetDefaultFontClasses()
	assert.Empty(t, reg.DefaultFontClasses())
}

func TestProvide(t *testing.T) {
	root := Provide(nil, WithLogger(nil))
	require.NotNil(t, root)

	child := Provide(root)
	assert.Same(t, root, child)

	_, err := root.AddIconMarkup("shared", homeSVG)
	require.NoError(t, err)
	_, err = child.Icon(context.Background(), "shared")
	assert.NoError(t, err)
}

func TestDispose(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "https://x/old.svg", homeSVG))

	reg := newTestRegistry(newFakeFetcher(), WithCacheStore(store))
	reg.RegisterFontAlias("fa", "fontawesome")
	_, err := reg.AddIconMarkup("home", homeSVG)
	require.NoError(t, err)
	_, err = reg.AddIconSetMarkup(setA)
	require.NoError(t, err)

	reg.Dispose()

	_, err = reg.Icon(ctx, "home")
	assert.ErrorIs(t, err, ErrIconNotFound)
	_, err = reg.Icon(ctx, "beta")
	assert.ErrorIs(t, err, ErrIconNotFound)

	infos, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)

	assert.Equal(t, "fontawesome", reg.ClassNameForFontAlias("fa"), "font settings survive dispose")

	assert.NotPanics(t, reg.Dispose, "dispose twice")
}

// failingStore fails every operation.
type failingStore struct{ cache.Store }

func (failingStore) Get(context.Context, string) (string, error) { return "", errors.New("disk gone") }
func (failingStore) Put(context.Context, string, string) error  { return errors.New("disk gone") }
func (failingStore) Clear(context.Context) error                { return errors.New("disk gone") }

func TestDispose_StoreErrorIsLogged(t *testing.T) {
	logs, logger := newLogBuffer()
	reg := New(WithLogger(logger), WithCacheStore(failingStore{}))

	reg.Dispose()

	failures := withMessage(logs.records(t), "icon cache store failed")
	require.Len(t, failures, 1)
	assert.Equal(t, "clear", failures[0]["operation"])
}

// closeCounter records Close calls.
type closeCounter struct {
	calls int
	err   error
}

func (c *closeCounter) Close() error {
	c.calls++
	return c.err
}

func TestClose(t *testing.T) {
	reg := newTestRegistry(nil)
	assert.NoError(t, reg.Close(), "nothing to close")

	ok := &closeCounter{}
	bad := &closeCounter{err: errors.New("busy")}
	reg.closers = append(reg.closers, ok, bad)

	err := reg.Close()
	assert.ErrorContains(t, err, "busy")
	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, bad.calls)

	assert.NoError(t, reg.Close(), "second close is a no-op")
	assert.Equal(t, 1, ok.calls)
}
