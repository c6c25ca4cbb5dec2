package layout

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/textmeasure"
	"github.com/matzehuels/stackbar/pkg/chart/units"
	"github.com/matzehuels/stackbar/pkg/dataset"
	"github.com/matzehuels/stackbar/pkg/errors"
)

var fixedWidth = textmeasure.MeasurerFunc(func(text string, _ textmeasure.Font) (float64, error) {
	return float64(len(text)) * 6, nil
})

var viewport = Viewport{Width: 600, Height: 400}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// sampleTable is Jan A=10 B=20, Feb A=0 B=30.
func sampleTable(t *testing.T) dataset.Table {
	t.Helper()
	tbl, err := dataset.New([]string{"A", "B"}, []dataset.Row{
		{Category: "Jan", Values: map[string]float64{"A": 10, "B": 20}},
		{Category: "Feb", Values: map[string]float64{"A": 0, "B": 30}},
	}, nil)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	return tbl
}

func build(t *testing.T, cfg config.Config, tbl dataset.Table) *Layout {
	t.Helper()
	l, err := Build(cfg, tbl, viewport, fixedWidth)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return l
}

func TestWrapLegend(t *testing.T) {
	tests := []struct {
		name      string
		widths    []float64
		available float64
		want      []int
	}{
		{"wraps third", []float64{50, 50, 50}, 120, []int{0, 0, 1}},
		{"single row", []float64{50, 50, 50}, 1000, []int{0, 0, 0}},
		{"narrow", []float64{50, 50, 50}, 10, []int{0, 1, 2}},
		{"empty", nil, 100, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapLegend(tt.widths, LegendPadding, tt.available)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapLegend() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildSample(t *testing.T) {
	cfg := config.Default()
	cfg.GrowthBar.GrowthRectToggle = true
	l := build(t, cfg, sampleTable(t))

	if _, hi := l.Y.Domain(); hi != 40 {
		t.Errorf("y domain max = %v, want 40", hi)
	}
	if len(l.DeltaBars) != 1 {
		t.Fatalf("len(DeltaBars) = %d, want 1", len(l.DeltaBars))
	}
	db := l.DeltaBars[0]
	if db.Row != 0 || !db.Positive {
		t.Errorf("delta bar = row %d positive %v, want row 0 positive", db.Row, db.Positive)
	}
	if got := l.Segments[0][1].H; got != 0 {
		t.Errorf("Feb A height = %v, want 0", got)
	}
	if len(l.Failures) != 0 {
		t.Errorf("Failures = %v, want none", l.Failures)
	}

	// Stacked segments touch.
	a, b := l.Segments[0][0], l.Segments[1][0]
	if !approxEqual(a.Y, b.Y+b.H) {
		t.Errorf("B bottom = %v, want A top %v", b.Y+b.H, a.Y)
	}
}

func TestManualAdjustment(t *testing.T) {
	cfg := config.Default()
	cfg.GrowthBar.GrowthRectToggle = true
	tbl := sampleTable(t)
	base := build(t, cfg, tbl)

	cfg.TargetSeries.BarSelect = "Jan"
	cfg.TargetSeries.BarHeightAdjustment = 5
	adj := build(t, cfg, tbl)

	if got := base.Segments[0][0].Y - adj.Segments[0][0].Y; !approxEqual(got, 5) {
		t.Errorf("Jan A shift = %v, want 5", got)
	}
	if got := adj.Segments[0][0].H - base.Segments[0][0].H; !approxEqual(got, 5) {
		t.Errorf("Jan A growth = %v, want 5", got)
	}
	if got := base.Segments[1][0].Y - adj.Segments[1][0].Y; !approxEqual(got, 5) {
		t.Errorf("Jan B shift = %v, want 5", got)
	}
	if base.Segments[1][0].H != adj.Segments[1][0].H {
		t.Errorf("Jan B height changed: %v -> %v", base.Segments[1][0].H, adj.Segments[1][0].H)
	}
	for s := range base.Order {
		if base.Segments[s][1] != adj.Segments[s][1] {
			t.Errorf("Feb series %d changed: %+v -> %+v", s, base.Segments[s][1], adj.Segments[s][1])
		}
	}

	bottom := func(d DeltaBar) float64 { return d.Y + d.H }
	if got := bottom(base.DeltaBars[0]) - bottom(adj.DeltaBars[0]); !approxEqual(got, 5) {
		t.Errorf("delta bar A end shift = %v, want 5", got)
	}
}

func TestManualAdjustmentLabels(t *testing.T) {
	tests := []struct {
		position string
		want     float64 // upward shift of the Jan A label
	}{
		{config.LabelTop, 5},
		{config.LabelMid, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			cfg := config.Default()
			cfg.TargetSeries.BarLabelPosition = tt.position
			cfg.ValueSeries.BarLabelPosition = tt.position
			tbl := sampleTable(t)
			base := build(t, cfg, tbl)

			cfg.TargetSeries.BarSelect = "Jan"
			cfg.TargetSeries.BarHeightAdjustment = 5
			adj := build(t, cfg, tbl)

			find := func(l *Layout, s, r int) *Label {
				for i := range l.Labels {
					if l.Labels[i].Series == s && l.Labels[i].Row == r {
						return &l.Labels[i]
					}
				}
				return nil
			}
			before, after := find(base, 0, 0), find(adj, 0, 0)
			if before == nil || after == nil {
				t.Fatal("Jan A label missing")
			}
			if got := before.Y - after.Y; !approxEqual(got, tt.want) {
				t.Errorf("Jan A label shift = %v, want %v", got, tt.want)
			}
			for s := range base.Order {
				b, a := find(base, s, 1), find(adj, s, 1)
				if (b == nil) != (a == nil) || (b != nil && b.Y != a.Y) {
					t.Errorf("Feb series %d label moved: %+v -> %+v", s, b, a)
				}
			}
		})
	}
}

func TestManualAdjustmentDisabled(t *testing.T) {
	cfg := config.Default()
	tbl := sampleTable(t)
	base := build(t, cfg, tbl)

	cfg.Capabilities.ManualHeightAdjustment = false
	cfg.TargetSeries.BarSelect = "Jan"
	cfg.TargetSeries.BarHeightAdjustment = 5
	got := build(t, cfg, tbl)

	if !reflect.DeepEqual(base.Segments, got.Segments) {
		t.Error("segments changed with adjustment capability off")
	}
}

func TestUnresolvedBarSelector(t *testing.T) {
	cfg := config.Default()
	cfg.TargetSeries.BarSelect = "Jan, Nope"
	cfg.TargetSeries.BarHeightAdjustment = 5
	l := build(t, cfg, sampleTable(t))

	if !l.Failed(FamilySelector) {
		t.Fatal("Failed(selector) = false, want true")
	}
	if l.Failures[0].Message != MsgInvalidSelector {
		t.Errorf("Message = %q, want %q", l.Failures[0].Message, MsgInvalidSelector)
	}
	if l.Segments[0][0].Adjust != 5 {
		t.Errorf("resolved entry adjustment = %v, want 5", l.Segments[0][0].Adjust)
	}
}

func TestLabelFits(t *testing.T) {
	tests := []struct {
		textW, slot, tol float64
		want             bool
	}{
		{25, 10, 15, true},
		{26, 10, 15, false},
		{5, 10, 0, true},
	}
	for _, tt := range tests {
		if got := LabelFits(tt.textW, tt.slot, tt.tol); got != tt.want {
			t.Errorf("LabelFits(%v, %v, %v) = %v, want %v", tt.textW, tt.slot, tt.tol, got, tt.want)
		}
	}
}

func TestBarLabels(t *testing.T) {
	cfg := config.Default()
	l := build(t, cfg, sampleTable(t))

	// Feb A is zero and gets no label.
	for _, lb := range l.Labels {
		if lb.Series == 0 && lb.Row == 1 {
			t.Errorf("unexpected label %q on zero segment", lb.Text)
		}
	}
	if len(l.Labels) != 3 {
		t.Fatalf("len(Labels) = %d, want 3", len(l.Labels))
	}
	seg := l.Segments[1][1]
	for _, lb := range l.Labels {
		if lb.Series == 1 && lb.Row == 1 {
			if lb.Text != "30.0" {
				t.Errorf("Feb B label = %q, want %q", lb.Text, "30.0")
			}
			if !approxEqual(lb.Y, seg.Y+seg.H/2) {
				t.Errorf("Feb B label y = %v, want %v", lb.Y, seg.Y+seg.H/2)
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	cfg := config.Default()
	cfg.GrowthBar.GrowthRectToggle = true
	cfg.PrimaryGrowth.Toggle = true
	cfg.SecondaryGrowth.Toggle = true
	tbl := sampleTable(t)

	a := build(t, cfg, tbl)
	b := build(t, cfg, tbl)
	if !reflect.DeepEqual(a, b) {
		t.Error("Build() is not deterministic")
	}
}

func TestBuildFatal(t *testing.T) {
	tbl := sampleTable(t)
	tests := []struct {
		name string
		vp   Viewport
	}{
		{"zero", Viewport{}},
		{"no room", Viewport{Width: 80, Height: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(config.Default(), tbl, tt.vp, fixedWidth)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Build() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestPrimaryConnectors(t *testing.T) {
	cfg := config.Default()
	cfg.PrimaryGrowth.Toggle = true
	l := build(t, cfg, sampleTable(t))

	// Feb has a zero value and is skipped.
	if len(l.Connectors) != 1 {
		t.Fatalf("len(Connectors) = %d, want 1", len(l.Connectors))
	}
	c := l.Connectors[0]
	if c.Text != "50.0%" {
		t.Errorf("Text = %q, want %q", c.Text, "50.0%")
	}
	if c.Points[1].Y != c.Points[2].Y {
		t.Errorf("bridge not horizontal: %v", c.Points)
	}
	if c.LabelAt.Y != c.Points[1].Y {
		t.Errorf("label y = %v, want bridge %v", c.LabelAt.Y, c.Points[1].Y)
	}
	if len(c.Arrows) != 2 || c.Arrows[0].Rotation != arrowDown {
		t.Errorf("Arrows = %+v, want two downward arrows", c.Arrows)
	}
	wantY := l.Segments[0][0].Y - cfg.PrimaryLine.LineOffsetHeight
	if !approxEqual(c.Points[0].Y, wantY) {
		t.Errorf("start y = %v, want %v", c.Points[0].Y, wantY)
	}
}

func TestPrimaryConnectorsSide(t *testing.T) {
	cfg := config.Default()
	cfg.PrimaryGrowth.Toggle = true
	cfg.PrimaryGrowth.DisplayLabel = config.DisplaySide
	l := build(t, cfg, sampleTable(t))

	c := l.Connectors[0]
	a, b := l.Segments[0][0], l.Segments[1][0]
	if c.Points[0] != (Point{a.X + a.W, a.Y}) || c.Points[3] != (Point{b.X + b.W, b.Y}) {
		t.Errorf("endpoints = %v %v, want segment right edges", c.Points[0], c.Points[3])
	}
	wantX := math.Max(a.X+a.W, b.X+b.W) + cfg.PrimaryGrowth.LabelXOffset
	if !approxEqual(c.LabelAt.X, wantX) {
		t.Errorf("label x = %v, want %v", c.LabelAt.X, wantX)
	}
}

func TestConnectorSideClamped(t *testing.T) {
	tests := []struct {
		side string
		want func(l *Layout) float64
	}{
		{config.SideLeft, func(*Layout) float64 { return 0 }},
		{config.SideRight, func(l *Layout) float64 { return l.Plot.W + config.Default().Layout.ChartXMargin }},
	}
	for _, tt := range tests {
		t.Run(tt.side, func(t *testing.T) {
			cfg := config.Default()
			cfg.PrimaryGrowth.Toggle = true
			cfg.PrimaryGrowth.DisplayLabel = config.DisplaySide
			cfg.PrimaryGrowth.DisplaySide = tt.side
			cfg.PrimaryGrowth.LabelXOffset = 5000
			l := build(t, cfg, sampleTable(t))

			if len(l.Connectors) != 1 {
				t.Fatalf("len(Connectors) = %d, want 1", len(l.Connectors))
			}
			if got, want := l.Connectors[0].LabelAt.X, tt.want(l); !approxEqual(got, want) {
				t.Errorf("label x = %v, want %v", got, want)
			}
		})
	}
}

func TestPrimaryConnectorFailure(t *testing.T) {
	cfg := config.Default()
	cfg.PrimaryGrowth.Toggle = true
	cfg.PrimaryGrowth.Selector = "Mar"
	l := build(t, cfg, sampleTable(t))

	if !l.Failed(FamilyPrimary) {
		t.Fatal("Failed(primary) = false, want true")
	}
	if len(l.Connectors) != 0 {
		t.Errorf("len(Connectors) = %d, want 0", len(l.Connectors))
	}
	f := l.Failures[0]
	if f.Message != MsgPrimaryFailed {
		t.Errorf("Message = %q, want %q", f.Message, MsgPrimaryFailed)
	}
	if !errors.Is(f.Err, errors.ErrCodeUnresolvedSelector) {
		t.Errorf("Err = %v, want %s", f.Err, errors.ErrCodeUnresolvedSelector)
	}
	if len(l.Segments[0]) != 2 {
		t.Error("bars were not laid out")
	}
}

func TestSecondaryConnector(t *testing.T) {
	cfg := config.Default()
	cfg.SecondaryGrowth.Toggle = true
	l := build(t, cfg, sampleTable(t))

	if len(l.Connectors) != 1 {
		t.Fatalf("len(Connectors) = %d, want 1", len(l.Connectors))
	}
	c := l.Connectors[0]
	if c.Kind != config.IndicatorSecondary || c.Rows != [2]int{0, 1} {
		t.Errorf("connector = %v rows %v, want secondary rows [0 1]", c.Kind, c.Rows)
	}
	// B goes from 20 to 30.
	if want := units.Percent(math.Abs(1-20.0/30.0) * 100); c.Text != want {
		t.Errorf("Text = %q, want %q", c.Text, want)
	}
}

func TestSecondaryConnectorNoPair(t *testing.T) {
	tbl, err := dataset.New([]string{"A"}, []dataset.Row{
		{Category: "Jan", Values: map[string]float64{"A": 10}},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.SecondaryGrowth.Toggle = true
	l := build(t, cfg, tbl)

	if !l.Failed(FamilySecondary) {
		t.Error("Failed(secondary) = false, want true")
	}
}

func TestGrowthPercent(t *testing.T) {
	tests := []struct {
		name                 string
		a, b                 float64
		flipSeries, flipCalc bool
		showSign             bool
		want                 float64
		wantOK               bool
	}{
		{"growth", 10, 20, false, false, true, 50, true},
		{"decline signed", 20, 10, false, false, true, -100, true},
		{"decline magnitude", 20, 10, false, false, false, 100, true},
		{"ratio", 10, 20, false, true, true, 50, true},
		{"flipped series", 10, 20, true, false, true, -100, true},
		{"zero", 0, 20, false, false, true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GrowthPercent(tt.a, tt.b, tt.flipSeries, tt.flipCalc, tt.showSign)
			if ok != tt.wantOK || !approxEqual(got, tt.want) {
				t.Errorf("GrowthPercent() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDefaultPair(t *testing.T) {
	ones := make([]float64, 15)
	for i := range ones {
		ones[i] = 1
	}
	gap := append([]float64(nil), ones...)
	gap[2] = 0

	tests := []struct {
		name           string
		values         []float64
		wantR1, wantR2 int
		wantOK         bool
	}{
		{"full year", ones, 2, 14, true},
		{"walks past zero", gap, 1, 14, true},
		{"short series", []float64{1, 2, 3}, 0, 2, true},
		{"trailing zero", []float64{1, 2, 3, 0}, 0, 2, true},
		{"all zero", []float64{0, 0}, 0, 0, false},
		{"single nonzero", []float64{0, 5}, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r1, r2, ok := DefaultPair(tt.values, 12)
			if ok != tt.wantOK || (ok && (r1 != tt.wantR1 || r2 != tt.wantR2)) {
				t.Errorf("DefaultPair() = %d, %d, %v, want %d, %d, %v", r1, r2, ok, tt.wantR1, tt.wantR2, tt.wantOK)
			}
		})
	}
}

func TestEllipseRadius(t *testing.T) {
	tests := []struct {
		textW, minW, want float64
	}{
		{15, 20, 20},
		{40, 20, 30},
		{30, 20, 20},
	}
	for _, tt := range tests {
		if got := EllipseRadius(tt.textW, tt.minW); got != tt.want {
			t.Errorf("EllipseRadius(%v, %v) = %v, want %v", tt.textW, tt.minW, got, tt.want)
		}
	}
}

func TestTrianglePathArea(t *testing.T) {
	pts := TrianglePath(20)
	// Shoelace formula.
	area := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if got := math.Abs(area) / 2; math.Abs(got-20) > 1e-9 {
		t.Errorf("triangle area = %v, want 20", got)
	}
	if pts[0].Y >= 0 {
		t.Errorf("apex y = %v, want negative", pts[0].Y)
	}
}

func TestTooltipPosition(t *testing.T) {
	tests := []struct {
		name string
		row  int
		y    float64
		want Point
	}{
		{"opens right", 0, 50, Point{100 + 15, 50}},
		{"opens left", 3, 50, Point{100 - 80 - 5, 50}},
		{"clamped", 0, 390, Point{100 + 15, 400 - 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TooltipPosition(100, tt.y, tt.row, 4, 10, 80, 60, 400)
			if got != tt.want {
				t.Errorf("TooltipPosition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTooltipSummary(t *testing.T) {
	lines := TooltipSummary([]string{"A", "B"}, []float64{10, 1500}, 0, 1, units.Auto)
	want := []TooltipLine{
		{Series: 1, Text: "B: 1.5K"},
		{Series: 0, Text: "A: 10.0", Underline: true},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("TooltipSummary() = %+v, want %+v", lines, want)
	}
}

func TestThreshold(t *testing.T) {
	tbl, err := dataset.New([]string{"A"}, []dataset.Row{
		{Category: "Jan", Values: map[string]float64{"A": 10}},
		{Category: "Feb", Values: map[string]float64{"A": 20}},
	}, []float64{5, 15})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		aggregate  string
		wantPoints int
		wantValue  float64
	}{
		{config.AggregateFirst, 2, 5},
		{config.AggregateSum, 2, 20},
		{config.AggregateSeries, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.aggregate, func(t *testing.T) {
			cfg := config.Default()
			cfg.Threshold.LineToggle = true
			cfg.Threshold.Aggregate = tt.aggregate
			l := build(t, cfg, tbl)
			if l.Threshold == nil {
				t.Fatal("Threshold = nil")
			}
			if len(l.Threshold.Points) != tt.wantPoints || l.Threshold.Value != tt.wantValue {
				t.Errorf("Threshold = %+v, want %d points value %v", l.Threshold, tt.wantPoints, tt.wantValue)
			}
		})
	}
}

func TestLegendBottomCentered(t *testing.T) {
	cfg := config.Default()
	cfg.Legend.LegendPosition = config.LegendBottom
	l := build(t, cfg, sampleTable(t))

	first, last := l.Legend.Entries[0], l.Legend.Entries[len(l.Legend.Entries)-1]
	left := first.X
	right := viewport.Width - (last.X + LegendTextX + last.Width)
	if !approxEqual(left, right) {
		t.Errorf("legend margins = %v / %v, want equal", left, right)
	}
	if l.Legend.Reserve.Bottom == 0 || l.Legend.Reserve.Top != 0 {
		t.Errorf("Reserve = %+v, want bottom only", l.Legend.Reserve)
	}
}

func TestLegendBottomWrapped(t *testing.T) {
	long := strings.Repeat("a", 90)
	tbl, err := dataset.New([]string{long, long + "b"}, []dataset.Row{
		{Category: "Jan", Values: map[string]float64{long: 10, long + "b": 20}},
	}, nil)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	cfg := config.Default()
	cfg.Legend.LegendPosition = config.LegendBottom
	l := build(t, cfg, tbl)

	if l.Legend.Rows != 2 {
		t.Fatalf("Rows = %d, want 2", l.Legend.Rows)
	}
	first, second := l.Legend.Entries[0], l.Legend.Entries[1]
	wantFirst := (viewport.Width - (first.Width + LegendTextX)) / 2
	if !approxEqual(first.X, wantFirst) {
		t.Errorf("first row x = %v, want centred %v", first.X, wantFirst)
	}
	if want := cfg.Layout.ChartXMargin / 2; second.X != want {
		t.Errorf("second row x = %v, want %v", second.X, want)
	}
}

func TestLegendLeft(t *testing.T) {
	cfg := config.Default()
	cfg.Legend.LegendPosition = config.LegendLeft
	l := build(t, cfg, sampleTable(t))

	if l.Legend.Rows != 2 {
		t.Errorf("Rows = %d, want 2", l.Legend.Rows)
	}
	wantX := cfg.Layout.ChartXMargin/2 + l.Legend.Reserve.Left
	if l.Plot.X != wantX {
		t.Errorf("Plot.X = %v, want %v", l.Plot.X, wantX)
	}
}
