package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/stackbar/pkg/chart/scene"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	static bool
}

// WithStatic omits tooltip panels and the script driving them. Raster
// and print output use it.
func WithStatic() SVGOption { return func(r *svgRenderer) { r.static = true } }

var elementNames = map[scene.Kind]string{
	scene.KindGroup:   "g",
	scene.KindRect:    "rect",
	scene.KindText:    "text",
	scene.KindPath:    "path",
	scene.KindEllipse: "ellipse",
	scene.KindLine:    "line",
}

// RenderSVG renders s as a standalone SVG document.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)

	renderPatterns(&buf, s.Patterns)
	if s.Root != nil {
		r.renderNode(&buf, s.Root, 1)
	}
	if s.Interactive && !r.static && s.Root != nil {
		if id, ok := s.Root.Attr("id"); ok {
			renderTooltipScript(&buf, id)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderNode(buf *bytes.Buffer, n *scene.Node, depth int) {
	if r.static {
		if class, _ := n.Attr("class"); class == "tooltips" {
			return
		}
	}
	name := elementNames[n.Kind]
	indent := strings.Repeat("  ", depth)

	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(name)
	for _, a := range n.Attrs {
		if a.Value == "" {
			continue
		}
		fmt.Fprintf(buf, ` %s="%s"`, a.Name, escape(a.Value))
	}

	switch {
	case n.Text != "":
		fmt.Fprintf(buf, ">%s</%s>\n", escape(n.Text), name)
	case len(n.Children) > 0:
		buf.WriteString(">\n")
		for _, c := range n.Children {
			r.renderNode(buf, c, depth+1)
		}
		fmt.Fprintf(buf, "%s</%s>\n", indent, name)
	default:
		buf.WriteString("/>\n")
	}
}

func renderPatterns(buf *bytes.Buffer, patterns []scene.Pattern) {
	if len(patterns) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, p := range patterns {
		fmt.Fprintf(buf, `    <pattern id="%s" patternUnits="userSpaceOnUse" width="%.1f" height="%.1f"`,
			escape(p.ID), p.Size, p.Size)
		if p.Type == "stripes" {
			buf.WriteString(` patternTransform="rotate(45)"`)
		}
		buf.WriteString(">\n")
		fmt.Fprintf(buf, `      <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", p.Size, p.Size, escape(p.Background))
		if p.Type == "stripes" {
			fmt.Fprintf(buf, `      <line x1="0" y1="0" x2="0" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
				p.Size, escape(p.Color), p.Size/2)
		} else {
			fmt.Fprintf(buf, `      <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
				p.Size/2, p.Size/2, p.Size/4, escape(p.Color))
		}
		buf.WriteString("    </pattern>\n")
	}
	buf.WriteString("  </defs>\n")
}

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
