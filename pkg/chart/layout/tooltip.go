package layout

import (
	"math"

	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/textmeasure"
	"github.com/matzehuels/stackbar/pkg/chart/units"
)

// Tooltip panel styling.
const (
	TooltipFontSize   = 11
	TooltipLineHeight = 15
	TooltipPadding    = 10
)

// Panel is the hover tooltip of one category.
type Panel struct {
	Row   int
	Title string
	Lines []TooltipLine
	W, H  float64
	// Anchors holds the panel's top-left corner, in container
	// coordinates, when hovering each series' segment of this row.
	Anchors []Point
}

// TooltipLine is one series entry in a tooltip panel.
type TooltipLine struct {
	Series    int
	Text      string
	Underline bool
}

// TooltipSummary lists names with their formatted values, last series
// first. The hovered series is underlined; pass -1 for none.
func TooltipSummary(names []string, values []float64, hovered, digits int, u units.Unit) []TooltipLine {
	out := make([]TooltipLine, 0, len(names))
	for s := len(names) - 1; s >= 0; s-- {
		out = append(out, TooltipLine{
			Series:    s,
			Text:      names[s] + ": " + units.Format(values[s], digits, u),
			Underline: s == hovered,
		})
	}
	return out
}

// TooltipPosition places a panel of size w x h next to a segment whose
// top-left corner is at (x, y). Panels of categories in the last third
// open to the left; panels never extend below the container.
func TooltipPosition(x, y float64, row, rows int, bw, w, h, containerH float64) Point {
	px := x + bw*1.5
	if float64(row) > float64(rows)*2/3 {
		px = x - w - bw/2
	}
	return Point{px, math.Min(y, containerH-h)}
}

func (l *Layout) layoutPanels(cfg config.Config, m textmeasure.Measurer) {
	u := formatUnit(cfg.DataLabel.DisplayUnits)
	font := textmeasure.Font{Family: cfg.DataLabel.FontFamily, Size: TooltipFontSize}
	bw := l.X.Bandwidth()

	l.Panels = make([]Panel, len(l.Categories))
	values := make([]float64, len(l.Order))
	for r, cat := range l.Categories {
		for s := range l.Order {
			values[s] = l.Stacks[s][r].Value
		}
		p := Panel{
			Row:   r,
			Title: cat,
			Lines: TooltipSummary(l.Order, values, -1, cfg.DataLabel.DisplayDigits, u),
		}
		maxW := l.measureOr(m, cat, font)
		for _, ln := range p.Lines {
			maxW = math.Max(maxW, l.measureOr(m, ln.Text, font))
		}
		p.W = maxW + 2*TooltipPadding
		p.H = float64(len(p.Lines)+1)*TooltipLineHeight + 2*TooltipPadding

		p.Anchors = make([]Point, len(l.Order))
		for s := range l.Order {
			seg := l.Segments[s][r]
			p.Anchors[s] = TooltipPosition(l.Plot.X+seg.X, l.Plot.Y+seg.Y, r, len(l.Categories), bw, p.W, p.H, l.Viewport.Height)
		}
		l.Panels[r] = p
	}
}
