package iconkit

import "github.com/randalmurphal/iconkit/pkg/iconkit/svgdom"

// setSvgAttributes applies the attributes every resolved icon carries and
// returns svg.
func setSvgAttributes(svg *svgdom.Element) *svgdom.Element {
	svg.SetAttr("fit", "")
	svg.SetAttr("height", "100%")
	svg.SetAttr("width", "100%")
	svg.SetAttr("preserveAspectRatio", "xMidYMid meet")
	svg.SetAttr("focusable", "false")
	return svg
}

// parseIcon parses a fetched single-icon document.
func parseIcon(text string) (*svgdom.Element, error) {
	svg, err := svgdom.Parse(text)
	if err != nil {
		return nil, err
	}
	return setSvgAttributes(svg), nil
}

// extractIcon copies the element whose id is name out of an icon set into a
// standalone <svg>. The set itself is not modified. Returns nil when the set
// has no such element.
//
// The id match is exact, so names may contain characters that would need
// escaping in a fragment or selector.
func extractIcon(set *svgdom.Element, name string) *svgdom.Element {
	found := set.FindByID(name)
	if found == nil {
		return nil
	}

	icon := found.Clone()
	icon.RemoveAttr("id")

	switch {
	case icon.IsTag("svg"):
		return setSvgAttributes(icon)
	case icon.IsTag("symbol"):
		// <symbol> is never rendered on its own; lift its element children
		// into a fresh <svg>.
		svg := svgdom.NewSVG()
		for _, child := range icon.Children() {
			svg.AppendChild(child)
		}
		return setSvgAttributes(svg)
	default:
		svg := svgdom.NewSVG()
		svg.AppendChild(icon)
		return setSvgAttributes(svg)
	}
}
