package layout

import (
	"strings"

	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/stack"
	"github.com/matzehuels/stackbar/pkg/dataset"
)

// Segment is the drawn rectangle of one series in one category.
type Segment struct {
	Rect
	Series    int // index into Layout.Order
	Row       int
	Value     float64
	Adjust    float64 // manual height adjustment in pixels
	Hidden    bool
	Border    bool
	Patterned bool
}

// adjustments returns the manual pixel adjustment of every segment,
// indexed [series][row]. Unresolved selector entries contribute nothing
// and are reported as a selector failure.
func (l *Layout) adjustments(cfg config.Config, t dataset.Table) [][]float64 {
	adj := make([][]float64, len(l.Order))
	for s := range adj {
		adj[s] = make([]float64, len(t.Rows))
	}
	if !cfg.Capabilities.ManualHeightAdjustment {
		return adj
	}
	for s := range l.Order {
		style := cfg.SeriesStyle(s)
		if style.BarHeightAdjustment == 0 || strings.TrimSpace(style.BarSelect) == "" {
			continue
		}
		idx, err := t.Resolve(style.BarSelect)
		if err != nil {
			l.fail(FamilySelector, err)
		}
		for _, r := range idx {
			adj[s][r] = style.BarHeightAdjustment
		}
	}
	return adj
}

// layoutSegments positions every segment. In stacked mode a segment is
// lifted by the adjustments of all segments below it and grows by its
// own adjustment, so an adjustment moves everything above it by the
// same amount.
func (l *Layout) layoutSegments(cfg config.Config, adj [][]float64, mode stack.Mode) {
	bw := l.X.Bandwidth()
	pad := cfg.Bar.BarPadding
	patterned := cfg.Capabilities.PatternFills && cfg.Pattern.PatternToggle

	l.Segments = make([][]Segment, len(l.Order))
	for s := range l.Order {
		l.Segments[s] = make([]Segment, len(l.Categories))
	}

	for r := range l.Categories {
		start := l.X.XAt(r)
		below := 0.0
		for s := range l.Order {
			st := l.Stacks[s][r]
			x, w := start, bw
			if s > 0 {
				w = bw * pad
				x = alignedX(start, bw, w, cfg.Bar.BarAlignment)
			}
			own := adj[s][r]
			if mode == stack.Overlay {
				below = 0
			}
			yTop := l.Y.Y(st.Top) - below - own
			yBase := l.Y.Y(st.Baseline) - below
			h := yBase - yTop
			if h < 0 {
				h = 0
			}
			l.Segments[s][r] = Segment{
				Rect:      Rect{X: x, Y: yTop, W: w, H: h},
				Series:    s,
				Row:       r,
				Value:     st.Value,
				Adjust:    own,
				Hidden:    !cfg.SeriesStyle(s).ShowSerie,
				Border:    hasBorder(cfg.Bar.DisplayBarBorder, s),
				Patterned: patterned && s == 0,
			}
			below += own
		}
	}
}

// alignedX places a narrower bar of width w inside a band of width bw.
func alignedX(start, bw, w float64, align string) float64 {
	switch align {
	case config.AlignLeft:
		return start
	case config.AlignRight:
		return start + bw - w
	default:
		return start + (bw-w)/2
	}
}

func hasBorder(mode string, series int) bool {
	switch mode {
	case config.BorderBoth:
		return true
	case config.BorderFirst:
		return series == 0
	case config.BorderSecond:
		return series == 1
	default:
		return false
	}
}
