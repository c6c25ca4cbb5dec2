package layout

import (
	"math"

	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/textmeasure"
	"github.com/matzehuels/stackbar/pkg/chart/units"
)

// DeltaBar is the narrow rectangle spanning the two series values of a
// category.
type DeltaBar struct {
	Rect
	Row      int
	Growth   float64
	Positive bool
	Label    *Label
}

// GrowthPercent returns the growth between a and b in percent. By
// default it is (1 - a/b) * 100; flipCalc uses a/b * 100 instead and
// flipSeries swaps the operands. Unless showSign is set the magnitude is
// returned. ok is false when either operand is zero.
func GrowthPercent(a, b float64, flipSeries, flipCalc, showSign bool) (pct float64, ok bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	if flipSeries {
		a, b = b, a
	}
	if flipCalc {
		pct = a / b * 100
	} else {
		pct = (1 - a/b) * 100
	}
	if !showSign {
		pct = math.Abs(pct)
	}
	return pct, true
}

// layoutDeltaBars places one delta bar per category where both series
// are nonzero. The bar spans the raw value positions of the two series,
// each shifted by its own manual adjustment.
func (l *Layout) layoutDeltaBars(cfg config.Config, adj [][]float64, m textmeasure.Measurer) {
	gb := cfg.GrowthBar
	if !gb.GrowthRectToggle || len(l.Order) != 2 {
		return
	}
	gl := cfg.GrowthLabel
	u := formatUnit(gl.DisplayUnits)
	font := textmeasure.Font{Family: gl.Font.Family, Size: gl.Font.Size}
	bw := l.X.Bandwidth()
	w := bw * gb.GrowthRectWidth

	for r := range l.Categories {
		v0, v1 := l.Stacks[0][r].Value, l.Stacks[1][r].Value
		growth, ok := GrowthPercent(v0, v1, false, false, true)
		if !ok {
			continue
		}
		y0 := l.Y.Y(v0) - adj[0][r]
		y1 := l.Y.Y(v1) - adj[1][r]
		x := l.X.XAt(r)
		if gb.AlignGrowthRect != config.AlignLeft {
			x += bw - w
		}
		db := DeltaBar{
			Rect:     Rect{X: x, Y: math.Min(y0, y1), W: w, H: math.Abs(y0 - y1)},
			Row:      r,
			Growth:   growth,
			Positive: growth > 0,
		}
		if !finite(db.X, db.Y, db.W, db.H) {
			l.Warnings = append(l.Warnings, geometryError("delta bar", db.X, db.Y, db.W, db.H))
			continue
		}

		if gl.LabelToggle {
			delta := v0 - v1
			if gl.FlipSign {
				delta = -delta
			}
			text := units.Format(delta, gl.DisplayDigits, u)
			tw, err := m.Measure(text, font)
			switch {
			case err != nil:
				l.Warnings = append(l.Warnings, err)
			case LabelFits(tw, w, gl.LabelDisplayTolerance):
				lb := &Label{Text: text, X: db.X + db.W/2, Series: -1, Row: r, Font: gl.Font}
				if gl.LabelPosition == config.LabelTop {
					lb.Y = db.Y - labelTopOffset
				} else {
					lb.Y = db.Y + db.H/2
				}
				db.Label = lb
			}
		}
		l.DeltaBars = append(l.DeltaBars, db)
	}
}
