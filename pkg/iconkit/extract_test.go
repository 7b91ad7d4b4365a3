package iconkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/iconkit/pkg/iconkit/svgdom"
)

func parseSet(t *testing.T, markup string) *svgdom.Element {
	t.Helper()
	set, err := svgdom.Parse(markup)
	require.NoError(t, err)
	return set
}

func TestExtractIcon(t *testing.T) {
	set := parseSet(t, setA)

	t.Run("svg member is returned as is", func(t *testing.T) {
		icon := extractIcon(set, "gamma")
		require.NotNil(t, icon)
		assertIconAttributes(t, icon)
		assert.Equal(t, "0 0 5 5", attr(t, icon, "viewBox"))
		_, hasID := icon.Attr("id")
		assert.False(t, hasID)

		children := icon.Children()
		require.Len(t, children, 1)
		assert.Equal(t, "path", children[0].Tag())
	})

	t.Run("symbol children move into a new svg", func(t *testing.T) {
		icon := extractIcon(set, "alpha")
		require.NotNil(t, icon)
		assertIconAttributes(t, icon)

		children := icon.Children()
		require.Len(t, children, 2)
		assert.Equal(t, "circle", children[0].Tag())
		assert.Equal(t, "rect", children[1].Tag())
		assert.Nil(t, icon.FindByID("alpha"))
	})

	t.Run("other elements are wrapped", func(t *testing.T) {
		icon := extractIcon(set, "beta")
		require.NotNil(t, icon)
		assertIconAttributes(t, icon)

		children := icon.Children()
		require.Len(t, children, 1)
		assert.Equal(t, "g", children[0].Tag())
		_, hasID := children[0].Attr("id")
		assert.False(t, hasID, "extracted element keeps no id")
	})

	t.Run("missing id", func(t *testing.T) {
		assert.Nil(t, extractIcon(set, "nope"))
	})

	t.Run("set root is not a candidate", func(t *testing.T) {
		root := parseSet(t, `<svg id="root"><g id="child"></g></svg>`)
		assert.Nil(t, extractIcon(root, "root"))
	})

	t.Run("set is left untouched", func(t *testing.T) {
		before := set.String()
		for _, name := range []string{"alpha", "beta", "gamma", "shared"} {
			icon := extractIcon(set, name)
			require.NotNil(t, icon)
			icon.SetAttr("data-mutated", "yes")
		}
		assert.Equal(t, before, set.String())
		assert.NotNil(t, set.FindByID("beta"))
	})
}

func TestExtractIcon_SpecialCharacterIDs(t *testing.T) {
	set := parseSet(t, `<svg><g id="icons:home.v2[filled]"></g><g id="a b"></g></svg>`)

	assert.NotNil(t, extractIcon(set, "icons:home.v2[filled]"))
	assert.NotNil(t, extractIcon(set, "a b"))
	assert.Nil(t, extractIcon(set, "icons"), "match is exact, not a prefix")
}

func TestParseIcon(t *testing.T) {
	t.Run("applies icon attributes", func(t *testing.T) {
		svg, err := parseIcon(homeSVG)
		require.NoError(t, err)
		assertIconAttributes(t, svg)
		assert.Equal(t, "0 0 24 24", attr(t, svg, "viewBox"))
	})

	t.Run("overrides sizing from the document", func(t *testing.T) {
		svg, err := parseIcon(`<svg width="48" height="48" preserveAspectRatio="none"></svg>`)
		require.NoError(t, err)
		assertIconAttributes(t, svg)
	})

	t.Run("finds svg inside other markup", func(t *testing.T) {
		svg, err := parseIcon(`<?xml version="1.0"?><div><p>hi</p>` + starSVG + `</div>`)
		require.NoError(t, err)
		assert.Equal(t, "svg", svg.Tag())
	})

	t.Run("no svg", func(t *testing.T) {
		_, err := parseIcon(`<div>not an icon</div>`)
		assert.ErrorIs(t, err, ErrMalformedMarkup)
	})
}
