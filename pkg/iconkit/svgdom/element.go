// Package svgdom is the small DOM surface the icon registry needs: parse
// markup into a tree, query it by id, clone subtrees and edit attributes.
//
// Markup is parsed with golang.org/x/net/html as an HTML fragment in a <div>
// context, which is the algorithm a browser runs for innerHTML. SVG content is
// therefore handled as foreign content: tag and attribute names get the SVG
// case adjustments (viewBox, preserveAspectRatio, clipPath, ...) and
// xlink:href lands in the "xlink" attribute namespace.
package svgdom

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoSVG indicates the parsed markup does not contain an <svg> element.
var ErrNoSVG = errors.New("<svg> tag not found")

// Element is a node in a parsed SVG tree.
// An Element is not safe for concurrent mutation; concurrent reads are fine.
type Element struct {
	node *html.Node
}

// Parse parses markup and returns the first <svg> element in document order,
// detached from whatever wrapped it. Returns ErrNoSVG if there is none.
func Parse(markup string) (*Element, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), fragmentContext())
	if err != nil {
		return nil, err
	}

	for _, n := range nodes {
		if svg := findFirst(n, isSVG); svg != nil {
			if svg.Parent != nil {
				svg.Parent.RemoveChild(svg)
			}
			e := &Element{node: svg}
			if viewBox, ok := e.Attr("viewBox"); ok {
				e.SetAttr("viewBox", viewBox)
			}
			return e, nil
		}
	}
	return nil, ErrNoSVG
}

// NewSVG returns an empty <svg> element.
func NewSVG() *Element {
	return &Element{node: &html.Node{
		Type:      html.ElementNode,
		DataAtom:  atom.Svg,
		Data:      "svg",
		Namespace: "svg",
	}}
}

// Tag returns the element's tag name as parsed (SVG case adjustments applied).
func (e *Element) Tag() string {
	return e.node.Data
}

// IsTag reports whether the element's tag matches name, ignoring case.
func (e *Element) IsTag(name string) bool {
	return strings.EqualFold(e.node.Data, name)
}

// Attr returns the value of a non-namespaced attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Attrs returns a copy of all attributes.
func (e *Element) Attrs() []html.Attribute {
	out := make([]html.Attribute, len(e.node.Attr))
	copy(out, e.node.Attr)
	return out
}

// SetAttr sets a non-namespaced attribute, replacing an existing value.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes a non-namespaced attribute if present.
func (e *Element) RemoveAttr(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// FindByID returns the first descendant (document order, excluding e itself)
// whose id attribute equals id exactly, or nil.
func (e *Element) FindByID(id string) *Element {
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if n := findFirst(c, func(n *html.Node) bool { return hasID(n, id) }); n != nil {
			return &Element{node: n}
		}
	}
	return nil
}

// Children returns the element children of e. The returned elements are live
// views into the tree, not copies.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Element{node: c})
		}
	}
	return out
}

// AppendChild appends child to e, detaching it from a previous parent first.
func (e *Element) AppendChild(child *Element) {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
}

// Clone returns a deep copy of e with no parent.
func (e *Element) Clone() *Element {
	return &Element{node: cloneNode(e.node)}
}

// Render writes the element as markup.
func (e *Element) Render(w io.Writer) error {
	return html.Render(w, e.node)
}

// String returns the element as markup, or "" if rendering fails.
func (e *Element) String() string {
	var b strings.Builder
	if err := html.Render(&b, e.node); err != nil {
		return ""
	}
	return b.String()
}

// Node exposes the underlying x/net/html node.
func (e *Element) Node() *html.Node {
	return e.node
}

func fragmentContext() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
	}
}

func isSVG(n *html.Node) bool {
	return n.Type == html.ElementNode && strings.EqualFold(n.Data, "svg")
}

func hasID(n *html.Node, id string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "id" && a.Val == id {
			return true
		}
	}
	return false
}

// findFirst walks n and its descendants in document order.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func cloneNode(n *html.Node) *html.Node {
	out := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		out.Attr = make([]html.Attribute, len(n.Attr))
		copy(out.Attr, n.Attr)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out.AppendChild(cloneNode(c))
	}
	return out
}
