package layout

import (
	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/scale"
	"github.com/matzehuels/stackbar/pkg/chart/units"
)

// xLabelGap is the distance between the plot bottom and the category
// label anchor (tick length plus padding).
const xLabelGap = 9

// emptyDomainMax is the y domain used when every value is zero.
const emptyDomainMax = 10

// Tick is one labelled position on a value axis.
type Tick struct {
	Value float64
	Y     float64
	Label string // empty for the zero tick
}

// XLabel is one category label below the plot.
type XLabel struct {
	Text   string
	X, Y   float64
	Angle  float64 // counter-clockwise rotation in degrees
	Anchor string  // "middle" or "end"
}

func (l *Layout) layoutAxes(cfg config.Config) {
	l.X = scale.NewBand(l.Categories, l.Plot.W, cfg.Layout.XAxisBarWhiteSpace)
	l.Y = scale.NewLinear(0, primaryMax(cfg, l.Stacks.Max()), l.Plot.H, 0)
	l.YTicks = ticks(l.Y, cfg.YAxis.TickCount, cfg.YAxis.DisplayDigits, formatUnit(cfg.YAxis.DisplayUnits))

	if cfg.Capabilities.SecondaryAxis && cfg.SecondaryYAxis.ToggleOn {
		sec := cfg.SecondaryYAxis
		_, d1 := l.Y.Domain()
		hi := d1
		if sec.MaxValue > sec.MinValue {
			hi = sec.MaxValue
		}
		y2 := scale.NewLinear(sec.MinValue, hi, l.Plot.H, 0)
		l.Y2 = &y2
		l.Y2Ticks = ticks(y2, sec.TickCount, sec.DisplayDigits, formatUnit(sec.DisplayUnits))
	}

	anchor := "middle"
	if cfg.XAxis.LabelAngle != 0 {
		anchor = "end"
	}
	l.XLabels = make([]XLabel, len(l.Categories))
	for i, c := range l.Categories {
		l.XLabels[i] = XLabel{
			Text:   c,
			X:      l.X.CenterAt(i) + cfg.XAxis.XOffset,
			Y:      l.Plot.H + xLabelGap - cfg.XAxis.YOffset,
			Angle:  cfg.XAxis.LabelAngle,
			Anchor: anchor,
		}
	}
}

// primaryMax returns the upper bound of the primary y domain: the
// configured maximum, or the observed maximum with headroom rounded up.
func primaryMax(cfg config.Config, observed float64) float64 {
	if cfg.YAxis.MaxValue > 0 {
		return cfg.YAxis.MaxValue
	}
	max := units.TopRound(observed * cfg.Layout.YScaleFactor)
	if max <= 0 {
		return emptyDomainMax
	}
	return max
}

func ticks(y scale.Linear, count, digits int, u units.Unit) []Tick {
	vals := y.Ticks(count)
	out := make([]Tick, len(vals))
	for i, v := range vals {
		out[i] = Tick{Value: v, Y: y.Y(v)}
		if v != 0 {
			out[i].Label = units.Format(v, digits, u)
		}
	}
	return out
}
