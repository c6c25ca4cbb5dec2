package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/textmeasure"
	"github.com/matzehuels/stackbar/pkg/chart/units"
	"github.com/matzehuels/stackbar/pkg/dataset"
	"github.com/matzehuels/stackbar/pkg/errors"
)

// Arrowhead rotations in degrees. Arrowheads are upward triangles before
// rotation.
const (
	arrowDown  = 60
	arrowRight = -30
	arrowLeft  = 30
)

// ellipsePadding is subtracted from the text width to get the radius of
// an ellipse that still covers the text.
const ellipsePadding = 10

// Connector is a growth indicator: a four-point path between two bar
// segments with a percentage label on it.
type Connector struct {
	Kind    config.IndicatorKind
	Rows    [2]int
	Points  [4]Point
	Growth  float64
	Text    string
	LabelAt Point
	Ellipse *Ellipse
	Arrows  []Arrow
}

// Ellipse is the background shape of a connector label.
type Ellipse struct {
	CX, CY, RX, RY float64
}

// Arrow is an arrowhead of the given area.
type Arrow struct {
	X, Y     float64
	Rotation float64
	Size     float64
}

// endpoint is one end of a connector before the path is routed.
type endpoint struct {
	seg Segment
	x   float64 // anchor x in top mode
}

func (l *Layout) layoutConnectors(cfg config.Config, t dataset.Table, m textmeasure.Measurer) {
	if cfg.PrimaryGrowth.Toggle {
		l.contain(FamilyPrimary, func() error {
			cs, err := l.primaryConnectors(cfg, t, m)
			if err != nil {
				return err
			}
			l.Connectors = append(l.Connectors, cs...)
			return nil
		})
	}
	if cfg.SecondaryGrowth.Toggle {
		l.contain(FamilySecondary, func() error {
			c, err := l.secondaryConnector(cfg, t, m)
			if err != nil {
				return err
			}
			if c != nil {
				l.Connectors = append(l.Connectors, *c)
			}
			return nil
		})
	}
}

// primaryConnectors compares the two series within each selected
// category. An empty selector selects every category.
func (l *Layout) primaryConnectors(cfg config.Config, t dataset.Table, m textmeasure.Measurer) ([]Connector, error) {
	if len(l.Order) != 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "primary growth needs two series, got %d", len(l.Order))
	}
	ind := cfg.Indicator(config.IndicatorPrimary)

	var rows []int
	if strings.TrimSpace(ind.Growth.Selector) == "" {
		rows = make([]int, len(t.Rows))
		for i := range rows {
			rows[i] = i
		}
	} else {
		var err error
		if rows, err = t.Resolve(ind.Growth.Selector); err != nil {
			return nil, err
		}
	}

	bw := l.X.Bandwidth()
	var out []Connector
	for _, r := range rows {
		a, b := t.Value(r, t.Series[0]), t.Value(r, t.Series[1])
		pct, ok := GrowthPercent(a, b, cfg.Bar.FlipSeries, ind.Label.FlipCalculation, ind.Label.ShowSign)
		if !ok {
			continue
		}
		x := l.X.XAt(r)
		c, err := l.route(ind, r, r,
			endpoint{seg: l.Segments[0][r], x: x + bw/4},
			endpoint{seg: l.Segments[1][r], x: x + 3*bw/4},
			pct, m)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// secondaryConnector compares the last series across two categories.
// It returns nil when either compared value is zero.
func (l *Layout) secondaryConnector(cfg config.Config, t dataset.Table, m textmeasure.Measurer) (*Connector, error) {
	ind := cfg.Indicator(config.IndicatorSecondary)
	s := len(l.Order) - 1
	values := make([]float64, len(l.Categories))
	for r := range values {
		values[r] = l.Stacks[s][r].Value
	}

	r2 := lastNonzero(values)
	if sel := strings.TrimSpace(ind.Growth.Selector2); sel != "" {
		idx, err := t.Resolve(sel)
		if err != nil {
			return nil, err
		}
		r2 = idx[0]
	}
	if r2 < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no nonzero %q value to compare", l.Order[s])
	}
	r1, ok := lookbackFrom(values, r2, ind.Growth.Lookback)
	if sel := strings.TrimSpace(ind.Growth.Selector1); sel != "" {
		idx, err := t.Resolve(sel)
		if err != nil {
			return nil, err
		}
		r1, ok = idx[0], true
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"no nonzero category %d periods before %q", ind.Growth.Lookback, l.Categories[r2])
	}

	pct, ok := GrowthPercent(values[r1], values[r2], false, ind.Label.FlipCalculation, ind.Label.ShowSign)
	if !ok {
		return nil, nil
	}
	c, err := l.route(ind, r1, r2,
		endpoint{seg: l.Segments[s][r1], x: l.X.CenterAt(r1)},
		endpoint{seg: l.Segments[s][r2], x: l.X.CenterAt(r2)},
		pct, m)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DefaultPair picks the categories compared by the secondary indicator
// when no selectors are configured: the last nonzero value, and the
// nonzero value found by walking back from lookback periods earlier.
// ok is false when no such pair exists.
func DefaultPair(values []float64, lookback int) (r1, r2 int, ok bool) {
	r2 = lastNonzero(values)
	if r2 < 0 {
		return 0, 0, false
	}
	r1, ok = lookbackFrom(values, r2, lookback)
	return r1, r2, ok
}

func lastNonzero(values []float64) int {
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] != 0 {
			return i
		}
	}
	return -1
}

// lookbackFrom walks back from lookback periods before r to the nearest
// nonzero value.
func lookbackFrom(values []float64, r, lookback int) (int, bool) {
	if lookback < 1 {
		lookback = 1
	}
	start := r - lookback
	if start < 0 {
		start = 0
	}
	if start >= r {
		return 0, false
	}
	for i := start; i >= 0; i-- {
		if values[i] != 0 {
			return i, true
		}
	}
	return 0, false
}

// route lays out the connector path between e1 and e2.
func (l *Layout) route(ind config.Indicator, r1, r2 int, e1, e2 endpoint, pct float64, m textmeasure.Measurer) (Connector, error) {
	c := Connector{
		Kind:   ind.Kind,
		Rows:   [2]int{r1, r2},
		Growth: pct,
		Text:   units.Percent(pct),
	}
	g := ind.Growth
	var rot1, rot2 float64

	if g.DisplayLabel == config.DisplaySide {
		lo, hi := 0.0, l.trueWidth()
		y1, y2 := e1.seg.Y, e2.seg.Y
		var x1, x2, xPos float64
		if g.DisplaySide == config.SideLeft {
			x1, x2 = e1.seg.X, e2.seg.X
			xPos = math.Max(lo, math.Min(x1, x2)-g.LabelXOffset)
			rot1, rot2 = arrowRight, arrowRight
		} else {
			x1, x2 = e1.seg.X+e1.seg.W, e2.seg.X+e2.seg.W
			xPos = math.Min(hi, math.Max(x1, x2)+g.LabelXOffset)
			rot1, rot2 = arrowLeft, arrowLeft
		}
		c.Points = [4]Point{{x1, y1}, {xPos, y1}, {xPos, y2}, {x2, y2}}
		c.LabelAt = Point{xPos, (y1 + y2) / 2}
	} else {
		off := ind.Line.LineOffsetHeight
		y1, y2 := e1.seg.Y-off, e2.seg.Y-off
		bridge := 0.0
		if !g.AlignIndicators && ind.Kind == config.IndicatorPrimary {
			bridge = math.Max(0, math.Min(y1, y2)-2*ind.Label.LabelHeight)
		}
		bridge -= g.LabelYOffset
		c.Points = [4]Point{{e1.x, y1}, {e1.x, bridge}, {e2.x, bridge}, {e2.x, y2}}
		c.LabelAt = Point{(e1.x + e2.x) / 2, bridge}
		rot1, rot2 = arrowDown, arrowDown
	}

	for _, p := range c.Points {
		if !finite(p.X, p.Y) {
			return Connector{}, geometryError(ind.Kind.String()+" connector", p.X, p.Y)
		}
	}

	switch ind.Line.DisplayArrow {
	case config.ArrowLeft:
		c.Arrows = []Arrow{{c.Points[0].X, c.Points[0].Y, rot1, ind.Line.ArrowSize}}
	case config.ArrowRight:
		c.Arrows = []Arrow{{c.Points[3].X, c.Points[3].Y, rot2, ind.Line.ArrowSize}}
	case config.ArrowBoth:
		c.Arrows = []Arrow{
			{c.Points[0].X, c.Points[0].Y, rot1, ind.Line.ArrowSize},
			{c.Points[3].X, c.Points[3].Y, rot2, ind.Line.ArrowSize},
		}
	}

	if ind.Label.ToggleBgShape {
		f := ind.Label.Font
		tw := l.measureOr(m, c.Text, textmeasure.Font{Family: f.Family, Size: f.Size})
		c.Ellipse = &Ellipse{
			CX: c.LabelAt.X,
			CY: c.LabelAt.Y,
			RX: EllipseRadius(tw, ind.Label.LabelMinWidth),
			RY: ind.Label.LabelHeight,
		}
	}
	return c, nil
}

// EllipseRadius returns the horizontal radius of a label ellipse: the
// minimum width for short text, otherwise the text width less padding.
func EllipseRadius(textW, minWidth float64) float64 {
	if minWidth+ellipsePadding > textW {
		return minWidth
	}
	return textW - ellipsePadding
}

// TrianglePath returns the vertices of an upward equilateral triangle of
// the given area centred on the origin.
func TrianglePath(area float64) []Point {
	y := -math.Sqrt(area / (math.Sqrt(3) * 3))
	return []Point{
		{0, y * 2},
		{-math.Sqrt(3) * y, -y},
		{math.Sqrt(3) * y, -y},
	}
}

// trueWidth is the plot width plus the horizontal chart margin, in plot
// coordinates.
func (l *Layout) trueWidth() float64 {
	return l.Viewport.Width - l.Legend.Reserve.Left
}
