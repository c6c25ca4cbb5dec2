package layout

import (
	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/dataset"
	"github.com/matzehuels/stackbar/pkg/errors"
)

// ThresholdLine is the polyline drawn for the table's threshold values.
type ThresholdLine struct {
	Points []Point
	Value  float64 // aggregated value; zero in series mode
}

func (l *Layout) layoutThreshold(cfg config.Config, t dataset.Table) {
	th := cfg.Threshold
	if !th.LineToggle || len(t.Thresholds) == 0 {
		return
	}
	y := l.Y
	if th.LineAlign == config.AxisSecondary && l.Y2 != nil {
		y = *l.Y2
	}

	if th.Aggregate == config.AggregateSeries {
		if len(t.Thresholds) == len(l.Categories) {
			pts := make([]Point, len(t.Thresholds))
			for i, v := range t.Thresholds {
				pts[i] = Point{l.X.CenterAt(i), y.Y(v) - th.LineOffsetHeight}
			}
			l.Threshold = &ThresholdLine{Points: pts}
			return
		}
		l.Warnings = append(l.Warnings, errors.New(errors.ErrCodeInvalidInput,
			"threshold has %d values for %d categories, using the first", len(t.Thresholds), len(l.Categories)))
	}

	v := t.Thresholds[0]
	if th.Aggregate == config.AggregateSum {
		v = 0
		for _, x := range t.Thresholds {
			v += x
		}
	}
	py := y.Y(v) - th.LineOffsetHeight
	l.Threshold = &ThresholdLine{
		Points: []Point{{0, py}, {l.Plot.W, py}},
		Value:  v,
	}
}
