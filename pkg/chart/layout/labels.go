package layout

import (
	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/textmeasure"
	"github.com/matzehuels/stackbar/pkg/chart/units"
)

// Label offsets relative to a bar, in pixels.
const (
	labelTopOffset    = 10 // text anchor above the bar top
	labelBgTopOffset  = 18 // background plate above the bar top
	labelBottomOffset = 15 // text anchor above the plot bottom
)

// Label is a value label anchored at its centre.
type Label struct {
	Text       string
	X, Y       float64
	Series     int
	Row        int
	Font       config.Font
	Background *Rect // optional plate behind the text
	BgColor    string
}

// LabelFits reports whether a label of width textW fits a slot of width
// slot with the given tolerance. Equality fits.
func LabelFits(textW, slot, tolerance float64) bool {
	return textW <= slot+tolerance
}

func (l *Layout) layoutLabels(cfg config.Config, m textmeasure.Measurer) {
	dl := cfg.DataLabel
	u := formatUnit(dl.DisplayUnits)
	font := textmeasure.Font{Family: dl.FontFamily, Size: dl.FontSize}
	slot := l.X.Bandwidth() / float64(len(l.Order))

	for s := range l.Order {
		style := cfg.SeriesStyle(s)
		if !style.ShowSerie || !style.BarLabelToggle || style.BarLabelPosition == config.LabelNone {
			continue
		}
		for r, seg := range l.Segments[s] {
			if seg.Value == 0 {
				continue
			}
			text := units.Format(seg.Value, dl.DisplayDigits, u)
			w, err := m.Measure(text, font)
			if err != nil {
				l.Warnings = append(l.Warnings, err)
				continue
			}
			if !LabelFits(w, slot, dl.LabelDisplayTolerance) || seg.H <= dl.FontSize {
				continue
			}

			lb := Label{
				Text:   text,
				X:      seg.X + seg.W/2,
				Series: s,
				Row:    r,
				Font:   config.Font{Family: dl.FontFamily, Size: dl.FontSize, Color: style.LabelFontColor},
			}
			switch style.BarLabelPosition {
			case config.LabelTop:
				lb.Y = seg.Y - labelTopOffset
				if style.LabelBgToggle {
					lb.Background = &Rect{X: lb.X - (w+4)/2, Y: seg.Y - labelBgTopOffset, W: w + 4, H: dl.FontSize + 2}
					lb.BgColor = style.LabelBackgroundColor
				}
			case config.LabelBottom:
				lb.Y = l.Plot.H - labelBottomOffset
			default:
				lb.Y = seg.Y + seg.H/2
			}
			l.Labels = append(l.Labels, lb)
		}
	}
}
