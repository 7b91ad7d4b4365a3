package iconkit

import "github.com/randalmurphal/iconkit/pkg/iconkit/svgdom"

// Key identifies a named icon. The empty namespace is the default namespace.
type Key struct {
	Namespace string
	Name      string
}

// String returns the key as "<namespace>:<name>".
func (k Key) String() string {
	return k.Namespace + ":" + k.Name
}

// Source is where a registered icon or icon set comes from: a URLSource or an
// InlineSource.
type Source interface {
	isSource()
}

// URLSource is an icon document fetched on first use.
type URLSource struct {
	URL string
}

// InlineSource is an icon document registered as markup and parsed up front.
type InlineSource struct {
	Element *svgdom.Element
}

func (URLSource) isSource()    {}
func (InlineSource) isSource() {}

// entry is one registration. elem holds the parsed document once known: at
// registration for inline sources, after the first successful fetch for URL
// sources. elem is guarded by Registry.mu and never mutated once set.
type entry struct {
	src  Source
	elem *svgdom.Element
}

func newEntry(src Source) *entry {
	e := &entry{src: src}
	if inline, ok := src.(InlineSource); ok {
		e.elem = inline.Element
	}
	return e
}

// url returns the entry's URL, or "" for inline sources.
func (e *entry) url() string {
	if u, ok := e.src.(URLSource); ok {
		return u.URL
	}
	return ""
}
