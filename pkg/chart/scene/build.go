package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/layout"
)

const (
	messageColor  = "#c00000"
	gridColor     = "#d3d3d3"
	panelColor    = "grey"
	panelText     = "#fff"
	dashLine      = "5,4"
	dashGrid      = "1,3"
	messageLineH  = 14
	messageMargin = 12
)

var patternSizes = map[string]float64{
	config.SizeSmall:  4,
	config.SizeMedium: 8,
	config.SizeLarge:  12,
}

// builder carries shared state while a scene is assembled.
type builder struct {
	l      *layout.Layout
	cfg    config.Config
	prefix string
}

// Build converts l into a scene. cfg supplies colours and fonts and
// must be the configuration l was built with.
func Build(l *layout.Layout, cfg config.Config) *Scene {
	id := sceneID(l)
	b := &builder{l: l, cfg: cfg, prefix: "sb-" + id.String()[:8]}

	s := &Scene{
		ID:          id.String(),
		Width:       l.Viewport.Width,
		Height:      l.Viewport.Height,
		Interactive: true,
	}
	if cfg.Capabilities.PatternFills && cfg.Pattern.PatternToggle {
		s.Patterns = []Pattern{{
			ID:         b.patternID(),
			Type:       cfg.Pattern.PatternType,
			Size:       patternSizes[cfg.Pattern.PatternUnitSize],
			Color:      cfg.Pattern.PatternColor,
			Background: cfg.TargetSeries.SerieColor,
		}}
	}

	plot := group("plot", Attr{"transform", translate(l.Plot.X, l.Plot.Y)})
	plot.Add(
		b.yAxis(),
		b.secondaryAxis(),
		b.xAxis(),
		b.bars(),
		b.deltaBars(),
		b.labels(),
		b.threshold(),
		b.connectors(),
	)

	root := group("chart", Attr{"id", b.prefix})
	root.Add(plot, b.legend(), b.messages(s), b.panels())
	s.Root = root
	return s
}

func (b *builder) patternID() string { return b.prefix + "-pattern" }

// =============================================================================
// Axes
// =============================================================================

func (b *builder) yAxis() *Node {
	y := b.cfg.YAxis
	g := group("y-axis")
	for _, t := range b.l.YTicks {
		if y.ToggleGridLines {
			g.Add(line(0, t.Y, b.l.Plot.W, t.Y, "grid", gridColor, 1, dashGrid))
		}
		if t.Label != "" {
			g.Add(text(t.Label, -6, t.Y, "end", y.Font).Set("dominant-baseline", "middle"))
		}
	}
	return g
}

func (b *builder) secondaryAxis() *Node {
	if b.l.Y2 == nil {
		return nil
	}
	f := b.cfg.SecondaryYAxis.Font
	g := group("y2-axis", Attr{"transform", translate(b.l.Plot.W, 0)})
	for _, t := range b.l.Y2Ticks {
		if t.Label != "" {
			g.Add(text(t.Label, 6, t.Y, "start", f).Set("dominant-baseline", "middle"))
		}
	}
	return g
}

func (b *builder) xAxis() *Node {
	f := b.cfg.XAxis.Font
	g := group("x-axis")
	for _, xl := range b.l.XLabels {
		t := text(xl.Text, 0, 0, xl.Anchor, f).Set("dominant-baseline", "hanging")
		tr := translate(xl.X, xl.Y)
		if xl.Angle != 0 {
			tr += " rotate(" + num(-xl.Angle) + ")"
		}
		t.Set("transform", tr)
		g.Add(t)
	}
	return g
}

// =============================================================================
// Bars and labels
// =============================================================================

func (b *builder) seriesFill(s int, patterned bool) string {
	if patterned {
		return "url(#" + b.patternID() + ")"
	}
	return b.cfg.SeriesStyle(s).SerieColor
}

func (b *builder) bars() *Node {
	bar := b.cfg.Bar
	g := group("bars")
	for s, segs := range b.l.Segments {
		sg := group("series", Attr{"data-series", b.l.Order[s]})
		for _, seg := range segs {
			if seg.Hidden {
				continue
			}
			r := rect(seg.Rect, "bar", b.seriesFill(s, seg.Patterned))
			r.Set("data-row", strconv.Itoa(seg.Row))
			b.tipAnchor(r, seg.Row, s)
			if seg.Border {
				stroke(r, bar.BarBorderColor, bar.BarBorderSize, bar.BarBorderLineType)
			}
			sg.Add(r)
		}
		g.Add(sg)
	}
	return g
}

// tipAnchor binds n to the tooltip panel of row, hovering series s. The
// precomputed anchor is used when the pointer position is unavailable.
func (b *builder) tipAnchor(n *Node, row, s int) {
	if s < 0 {
		return
	}
	n.Set("data-series", strconv.Itoa(s))
	if p := b.l.Panels; row < len(p) && s < len(p[row].Anchors) {
		a := p[row].Anchors[s]
		n.Set("data-tip-x", num(a.X))
		n.Set("data-tip-y", num(a.Y))
	}
}

func (b *builder) deltaBars() *Node {
	if len(b.l.DeltaBars) == 0 {
		return nil
	}
	gb := b.cfg.GrowthBar
	g := group("delta-bars")
	for _, d := range b.l.DeltaBars {
		fill := gb.NegativeGrowthColor
		if d.Positive {
			fill = gb.PositiveGrowthColor
		}
		r := rect(d.Rect, "delta-bar", fill).Set("data-row", strconv.Itoa(d.Row))
		b.tipAnchor(r, d.Row, len(b.l.Order)-1)
		g.Add(r)
		if d.Label != nil {
			g.Add(labelNode(*d.Label, "delta-label"))
		}
	}
	return g
}

func (b *builder) labels() *Node {
	if len(b.l.Labels) == 0 {
		return nil
	}
	g := group("labels")
	for _, lb := range b.l.Labels {
		if lb.Background != nil {
			g.Add(rect(*lb.Background, "label-bg", lb.BgColor))
		}
		g.Add(labelNode(lb, "bar-label"))
	}
	return g
}

func labelNode(lb layout.Label, class string) *Node {
	t := text(lb.Text, lb.X, lb.Y, "middle", lb.Font)
	t.Set("class", class)
	t.Set("dominant-baseline", "middle")
	return t
}

// =============================================================================
// Indicators
// =============================================================================

func (b *builder) threshold() *Node {
	th := b.l.Threshold
	if th == nil {
		return nil
	}
	c := b.cfg.Threshold
	p := &Node{Kind: KindPath, Attrs: []Attr{
		{"class", "threshold"},
		{"d", polyline(th.Points)},
		{"fill", "none"},
	}}
	stroke(p, c.LineColor, c.LineThickness, c.LineType)
	return p
}

func (b *builder) connectors() *Node {
	if len(b.l.Connectors) == 0 {
		return nil
	}
	g := group("connectors")
	for _, c := range b.l.Connectors {
		ind := b.cfg.Indicator(c.Kind)
		cg := group("connector "+c.Kind.String(),
			Attr{"data-rows", strconv.Itoa(c.Rows[0]) + "," + strconv.Itoa(c.Rows[1])})

		path := &Node{Kind: KindPath, Attrs: []Attr{{"d", polyline(c.Points[:])}, {"fill", "none"}}}
		stroke(path, ind.Line.LineColor, ind.Line.LineSize, ind.Line.LineType)
		cg.Add(path)

		for _, a := range c.Arrows {
			cg.Add(&Node{Kind: KindPath, Attrs: []Attr{
				{"class", "arrow"},
				{"d", polyline(layout.TrianglePath(a.Size)) + "Z"},
				{"transform", translate(a.X, a.Y) + " rotate(" + num(a.Rotation) + ")"},
				{"fill", ind.Line.LineColor},
			}})
		}
		if e := c.Ellipse; e != nil {
			cg.Add(&Node{Kind: KindEllipse, Attrs: []Attr{
				{"cx", num(e.CX)}, {"cy", num(e.CY)},
				{"rx", num(e.RX)}, {"ry", num(e.RY)},
				{"fill", ind.Label.LabelBackgroundColor},
				{"stroke", ind.Label.BorderColor},
				{"stroke-width", num(ind.Label.BorderSize)},
			}})
		}
		cg.Add(text(c.Text, c.LabelAt.X, c.LabelAt.Y, "middle", ind.Label.Font).
			Set("class", "growth-label").
			Set("dominant-baseline", "middle"))
		g.Add(cg)
	}
	return g
}

// =============================================================================
// Legend, messages and tooltips
// =============================================================================

func (b *builder) legend() *Node {
	if len(b.l.Legend.Entries) == 0 {
		return nil
	}
	f := b.cfg.Legend.Font
	g := group("legend")
	patterned := b.cfg.Capabilities.PatternFills && b.cfg.Pattern.PatternToggle
	for _, e := range b.l.Legend.Entries {
		icon := layout.Rect{X: e.X, Y: e.Y, W: layout.LegendIconSize, H: layout.LegendIconSize}
		g.Add(
			rect(icon, "legend-icon", b.seriesFill(e.Series, patterned && e.Series == 0)),
			text(e.Text, e.X+layout.LegendTextX, e.Y+layout.LegendIconSize, "start", f).Set("class", "legend-text"),
		)
	}
	return g
}

func (b *builder) messages(s *Scene) *Node {
	if len(b.l.Failures) == 0 {
		return nil
	}
	g := group("messages")
	x := b.cfg.Layout.ChartXMargin / 2
	for i, f := range b.l.Failures {
		s.Messages = append(s.Messages, f.Message)
		g.Add(&Node{
			Kind: KindText,
			Attrs: []Attr{
				{"class", "message"},
				{"x", num(x)},
				{"y", num(messageMargin + float64(i)*messageLineH)},
				{"font-size", "12"},
				{"fill", messageColor},
			},
			Text: f.Message,
		})
	}
	return g
}

func (b *builder) panels() *Node {
	g := group("tooltips",
		Attr{"data-rows", strconv.Itoa(len(b.l.Categories))},
		Attr{"data-bandwidth", num(b.l.X.Bandwidth())},
		Attr{"data-height", num(b.l.Viewport.Height)})
	f := config.Font{Family: b.cfg.DataLabel.FontFamily, Color: panelText, Size: layout.TooltipFontSize}
	for _, p := range b.l.Panels {
		pg := group("panel",
			Attr{"id", fmt.Sprintf("%s-panel-%d", b.prefix, p.Row)},
			Attr{"data-row", strconv.Itoa(p.Row)},
			Attr{"data-w", num(p.W)},
			Attr{"data-h", num(p.H)},
			Attr{"opacity", "0"})
		pg.Add(rect(layout.Rect{W: p.W, H: p.H}, "panel-bg", panelColor))

		y := layout.TooltipPadding + layout.TooltipLineHeight/2.0
		pg.Add(text(p.Title, layout.TooltipPadding, y, "start", f).
			Set("class", "panel-title").
			Set("dominant-baseline", "middle"))
		for _, ln := range p.Lines {
			y += layout.TooltipLineHeight
			class := "panel-line"
			if ln.Underline {
				class += " hovered"
			}
			pg.Add(text(ln.Text, layout.TooltipPadding, y, "start", f).
				Set("class", class).
				Set("data-series", strconv.Itoa(ln.Series)).
				Set("dominant-baseline", "middle"))
		}
		g.Add(pg)
	}
	return g
}

// =============================================================================
// Node helpers
// =============================================================================

func group(class string, attrs ...Attr) *Node {
	return &Node{Kind: KindGroup, Attrs: append([]Attr{{"class", class}}, attrs...)}
}

func rect(r layout.Rect, class, fill string) *Node {
	return &Node{Kind: KindRect, Attrs: []Attr{
		{"class", class},
		{"x", num(r.X)},
		{"y", num(r.Y)},
		{"width", num(r.W)},
		{"height", num(r.H)},
		{"fill", fill},
	}}
}

func line(x1, y1, x2, y2 float64, class, color string, width float64, dash string) *Node {
	n := &Node{Kind: KindLine, Attrs: []Attr{
		{"class", class},
		{"x1", num(x1)}, {"y1", num(y1)},
		{"x2", num(x2)}, {"y2", num(y2)},
		{"stroke", color},
		{"stroke-width", num(width)},
	}}
	if dash != "" {
		n.Set("stroke-dasharray", dash)
	}
	return n
}

func text(s string, x, y float64, anchor string, f config.Font) *Node {
	return &Node{
		Kind: KindText,
		Attrs: []Attr{
			{"x", num(x)},
			{"y", num(y)},
			{"text-anchor", anchor},
			{"font-family", f.Family},
			{"font-size", num(f.Size)},
			{"fill", f.Color},
		},
		Text: s,
	}
}

func stroke(n *Node, color string, width float64, lineType string) {
	n.Set("stroke", color)
	n.Set("stroke-width", num(width))
	if lineType == config.LineDashed {
		n.Set("stroke-dasharray", dashLine)
	}
}

func translate(x, y float64) string {
	return "translate(" + num(x) + "," + num(y) + ")"
}

func polyline(pts []layout.Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i == 0 {
			sb.WriteString("M")
		} else {
			sb.WriteString(" L")
		}
		sb.WriteString(num(p.X))
		sb.WriteByte(',')
		sb.WriteString(num(p.Y))
	}
	return sb.String()
}
