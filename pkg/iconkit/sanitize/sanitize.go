// Package sanitize provides the markup and URL sanitization capabilities the
// icon registry consumes.
//
// The registry never trusts caller input directly: inline SVG markup passes
// through SanitizeMarkup before parsing, and every URL passes through
// SanitizeURL before it is used as a cache key or fetched.
package sanitize

import (
	"errors"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrRejected indicates the input could not be made safe.
var ErrRejected = errors.New("rejected by sanitizer")

// Sanitizer turns untrusted input into safe input or rejects it.
// Implementations must be safe for concurrent use.
type Sanitizer interface {
	// SanitizeMarkup returns a safe rendition of raw markup.
	SanitizeMarkup(raw string) (string, error)

	// SanitizeURL returns the resolved, safe form of raw.
	SanitizeURL(raw string) (string, error)
}

// DefaultSchemes are the URL schemes allowed when none are configured.
var DefaultSchemes = []string{"https", "http"}

// blockedElements are dropped together with their subtree.
var blockedElements = map[string]bool{
	"script":        true,
	"foreignobject": true,
	"iframe":        true,
	"object":        true,
	"embed":         true,
	"audio":         true,
	"video":         true,
}

// animationElements can rewrite an attribute of their parent element.
var animationElements = map[string]bool{
	"set":              true,
	"animate":          true,
	"animatemotion":    true,
	"animatetransform": true,
}

// rasterDataTypes are the data: URL media types allowed in link attributes.
var rasterDataTypes = []string{
	"data:image/png",
	"data:image/jpeg",
	"data:image/jpg",
	"data:image/gif",
	"data:image/webp",
	"data:image/bmp",
}

// Default is the standard Sanitizer.
type Default struct {
	base    *url.URL
	schemes []string
}

// Option configures a Default sanitizer.
type Option func(*Default)

// WithBaseURL resolves relative URLs against base.
// An unparsable base is ignored.
func WithBaseURL(base string) Option {
	return func(d *Default) {
		if base == "" {
			return
		}
		if u, err := url.Parse(base); err == nil {
			d.base = u
		}
	}
}

// WithSchemes sets the allowed URL schemes. Empty keeps the defaults.
func WithSchemes(schemes ...string) Option {
	return func(d *Default) {
		if len(schemes) == 0 {
			return
		}
		d.schemes = make([]string, 0, len(schemes))
		for _, s := range schemes {
			d.schemes = append(d.schemes, strings.ToLower(strings.TrimSpace(s)))
		}
	}
}

// New creates a Default sanitizer.
func New(opts ...Option) *Default {
	d := &Default{schemes: DefaultSchemes}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Compile-time interface check.
var _ Sanitizer = (*Default)(nil)

// SanitizeURL implements Sanitizer.
//
// Relative URLs are resolved against the base URL when one is configured and
// rejected otherwise. The resolved URL must use an allowed scheme.
func (d *Default) SanitizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrRejected
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrRejected
	}
	if !u.IsAbs() {
		if d.base == nil {
			return "", ErrRejected
		}
		u = d.base.ResolveReference(u)
	}

	if !slices.Contains(d.schemes, strings.ToLower(u.Scheme)) {
		return "", ErrRejected
	}
	if u.Opaque != "" || (u.Host == "" && u.Scheme != "file") {
		return "", ErrRejected
	}
	return u.String(), nil
}

// SanitizeMarkup implements Sanitizer.
//
// Scriptable content is stripped: blocked elements, animations that target a
// link attribute, event handler attributes, and link or animation values
// carrying javascript:, vbscript: or non-raster data: URLs.
// Markup with no element left after stripping is rejected.
func (d *Default) SanitizeMarkup(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrRejected
	}

	nodes, err := html.ParseFragment(strings.NewReader(raw), &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
	})
	if err != nil {
		return "", ErrRejected
	}

	var b strings.Builder
	elements := 0
	for _, n := range nodes {
		if dropElement(n) {
			continue
		}
		if n.Type == html.ElementNode {
			scrub(n)
			elements++
		}
		if err := html.Render(&b, n); err != nil {
			return "", ErrRejected
		}
	}

	if elements == 0 {
		return "", ErrRejected
	}
	return b.String(), nil
}

// scrub removes unsafe attributes from n and unsafe elements below it.
func scrub(n *html.Node) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if unsafeAttr(a) {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if dropElement(c) {
			n.RemoveChild(c)
		} else if c.Type == html.ElementNode {
			scrub(c)
		}
		c = next
	}
}

// dropElement reports whether n is removed together with its subtree.
func dropElement(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	tag := strings.ToLower(n.Data)
	if blockedElements[tag] {
		return true
	}
	if !animationElements[tag] {
		return false
	}
	for _, a := range n.Attr {
		if strings.ToLower(a.Key) != "attributename" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(a.Val)) {
		case "href", "xlink:href", "src":
			return true
		}
	}
	return false
}

func unsafeAttr(a html.Attribute) bool {
	key := strings.ToLower(a.Key)
	if strings.HasPrefix(key, "on") {
		return true
	}
	switch key {
	case "href", "src", "action", "formaction":
		return unsafeURL(a.Val)
	case "to", "from", "by", "values":
		for _, v := range strings.Split(a.Val, ";") {
			if unsafeURL(v) {
				return true
			}
		}
	}
	return false
}

// unsafeURL reports whether v is a script-bearing or non-raster data: URL.
func unsafeURL(v string) bool {
	v = strings.ToLower(strings.Join(strings.Fields(v), ""))
	switch {
	case strings.HasPrefix(v, "javascript:"), strings.HasPrefix(v, "vbscript:"):
		return true
	case strings.HasPrefix(v, "data:"):
		for _, raster := range rasterDataTypes {
			if strings.HasPrefix(v, raster+";") || strings.HasPrefix(v, raster+",") {
				return false
			}
		}
		return true
	}
	return false
}
