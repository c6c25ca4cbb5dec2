package layout

import (
	"math"

	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/scale"
	"github.com/matzehuels/stackbar/pkg/chart/stack"
	"github.com/matzehuels/stackbar/pkg/chart/textmeasure"
	"github.com/matzehuels/stackbar/pkg/chart/units"
	"github.com/matzehuels/stackbar/pkg/dataset"
	"github.com/matzehuels/stackbar/pkg/errors"
)

// Viewport is the size of the chart container in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Layout is the computed geometry of one chart.
type Layout struct {
	Viewport Viewport
	Plot     Rect

	Categories []string
	Order      []string // series in stack order
	Stacks     stack.Stacks
	X          scale.Band
	Y          scale.Linear
	Y2         *scale.Linear // nil unless the secondary axis is shown

	XLabels []XLabel
	YTicks  []Tick
	Y2Ticks []Tick

	Segments   [][]Segment // [series][row], hidden series included
	Labels     []Label
	DeltaBars  []DeltaBar
	Connectors []Connector
	Legend     Legend
	Threshold  *ThresholdLine
	Panels     []Panel // one tooltip panel per row

	Failures []Failure
	Warnings []error
}

// Build lays out table t in viewport vp. m measures label text.
func Build(cfg config.Config, t dataset.Table, vp Viewport, m textmeasure.Measurer) (*Layout, error) {
	if err := checkInput(t, vp); err != nil {
		return nil, err
	}

	mode := stack.Stacked
	if cfg.Bar.Stacking == string(stack.Overlay) {
		mode = stack.Overlay
	}
	order := stack.Order(t.Series, cfg.Bar.FlipSeries)

	l := &Layout{
		Viewport:   vp,
		Categories: t.Categories(),
		Order:      order,
		Stacks:     stack.Build(t.Rows, order, mode),
	}

	l.Legend = l.layoutLegend(cfg, m)
	if err := l.placePlot(cfg); err != nil {
		return nil, err
	}

	l.layoutAxes(cfg)
	adj := l.adjustments(cfg, t)
	l.layoutSegments(cfg, adj, mode)
	l.layoutLabels(cfg, m)
	l.layoutDeltaBars(cfg, adj, m)
	l.layoutConnectors(cfg, t, m)
	l.layoutThreshold(cfg, t)
	l.layoutPanels(cfg, m)
	return l, nil
}

func checkInput(t dataset.Table, vp Viewport) error {
	if len(t.Rows) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no data rows")
	}
	if len(t.Series) == 0 || len(t.Series) > dataset.MaxSeries {
		return errors.New(errors.ErrCodeInvalidInput, "expected 1 to %d series, got %d", dataset.MaxSeries, len(t.Series))
	}
	for _, r := range t.Rows {
		for _, s := range t.Series {
			if v := r.Values[s]; math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.New(errors.ErrCodeInvalidInput, "non-finite value for %q in %q", s, r.Category)
			}
		}
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid viewport %vx%v", vp.Width, vp.Height)
	}
	return nil
}

// placePlot carves the plot area out of the viewport after margins and
// legend reservations.
func (l *Layout) placePlot(cfg config.Config) error {
	lay := cfg.Layout
	p := Rect{
		X: lay.ChartXMargin/2 + l.Legend.Reserve.Left,
		Y: lay.ChartTopMargin + l.Legend.Reserve.Top,
	}
	p.W = l.Viewport.Width - lay.ChartXMargin - l.Legend.Reserve.Left
	p.H = l.Viewport.Height - lay.ChartTopMargin - lay.ChartBottomMargin - l.Legend.Reserve.Top - l.Legend.Reserve.Bottom
	if p.W <= 0 || p.H <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"viewport %vx%v leaves no room for the plot", l.Viewport.Width, l.Viewport.Height)
	}
	l.Plot = p
	return nil
}

// formatUnit parses a configured unit; configs are validated up front so
// an unknown name falls back to auto.
func formatUnit(s string) units.Unit {
	u, err := units.ParseUnit(s)
	if err != nil {
		return units.Auto
	}
	return u
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
