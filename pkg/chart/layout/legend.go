package layout

import (
	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/textmeasure"
)

// Legend geometry.
const (
	LegendRowHeight = 15 // height of one legend row
	LegendPadding   = 30 // gap added after each entry's text
	LegendIconSize  = 10 // side of the colour swatch
	LegendTextX     = 15 // text offset from the swatch
	legendLeftGap   = 40 // space between a left legend and the plot
)

// Legend is the laid out series legend.
type Legend struct {
	Entries []LegendEntry
	Rows    int
	Reserve Reserve
}

// LegendEntry places one series swatch. X and Y are the swatch's
// top-left corner in container coordinates.
type LegendEntry struct {
	Series int // index into Layout.Order
	Text   string
	X, Y   float64
	Width  float64 // measured text width
	Row    int
}

// Reserve is the space a legend takes away from the plot.
type Reserve struct {
	Top, Bottom, Left float64
}

// WrapLegend assigns entries to rows. Each entry advances the running
// offset by its width plus padding; a new row starts once the offset has
// reached the available width. The first entry of a row never wraps.
func WrapLegend(widths []float64, padding, available float64) []int {
	rows := make([]int, len(widths))
	row, offset := 0, 0.0
	for i, w := range widths {
		if offset > 0 && offset >= available {
			row++
			offset = 0
		}
		rows[i] = row
		offset += w + padding
	}
	return rows
}

func (l *Layout) layoutLegend(cfg config.Config, m textmeasure.Measurer) Legend {
	lg := cfg.Legend
	if !lg.LegendToggle {
		return Legend{}
	}

	var entries []LegendEntry
	var widths []float64
	font := textmeasure.Font{Family: lg.Font.Family, Size: lg.Font.Size}
	for s, name := range l.Order {
		if !cfg.SeriesStyle(s).ShowSerie {
			continue
		}
		w := l.measureOr(m, name, font)
		entries = append(entries, LegendEntry{Series: s, Text: name, Width: w})
		widths = append(widths, w)
	}
	if len(entries) == 0 {
		return Legend{}
	}

	x0 := cfg.Layout.ChartXMargin / 2
	top := cfg.Layout.ChartTopMargin
	out := Legend{Entries: entries}

	switch lg.LegendPosition {
	case config.LegendLeft:
		maxW := 0.0
		for i := range out.Entries {
			e := &out.Entries[i]
			e.Row = i
			e.X = x0
			e.Y = top + float64(i)*LegendRowHeight
			if w := e.Width + LegendTextX; w > maxW {
				maxW = w
			}
		}
		out.Rows = len(entries)
		out.Reserve.Left = maxW + legendLeftGap
		return out
	}

	avail := l.Viewport.Width - cfg.Layout.ChartXMargin
	rows := WrapLegend(widths, LegendPadding, avail)
	out.Rows = rows[len(rows)-1] + 1
	height := float64(out.Rows)*LegendRowHeight + lg.LegendMargin

	y0 := top
	if lg.LegendPosition == config.LegendBottom {
		out.Reserve.Bottom = height
		y0 = l.Viewport.Height - height + lg.LegendMargin
	} else {
		out.Reserve.Top = height
	}

	rowStart := 0
	for i := range out.Entries {
		if i > 0 && rows[i] != rows[i-1] {
			rowStart = i
		}
		e := &out.Entries[i]
		e.Row = rows[i]
		e.Y = y0 + float64(e.Row)*LegendRowHeight
		if i == rowStart {
			e.X = x0
			if lg.LegendPosition == config.LegendBottom && e.Row == 0 {
				e.X = (l.Viewport.Width - rowWidth(out.Entries, rows, 0)) / 2
			}
			continue
		}
		prev := out.Entries[i-1]
		e.X = prev.X + prev.Width + LegendPadding
	}
	return out
}

// rowWidth is the extent of one legend row, excluding trailing padding.
func rowWidth(entries []LegendEntry, rows []int, row int) float64 {
	w, n := 0.0, 0
	for i, e := range entries {
		if rows[i] != row {
			continue
		}
		w += e.Width + LegendPadding
		n++
	}
	if n == 0 {
		return 0
	}
	return w - LegendPadding + LegendTextX
}

// measureOr measures text with m, falling back to an estimate when m
// fails. The failure is kept as a warning.
func (l *Layout) measureOr(m textmeasure.Measurer, text string, f textmeasure.Font) float64 {
	w, err := m.Measure(text, f)
	if err == nil {
		return w
	}
	l.Warnings = append(l.Warnings, err)
	w, _ = textmeasure.Approx{}.Measure(text, f)
	return w
}
