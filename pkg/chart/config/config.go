package config

// Config is the full option set for one render. It is treated as
// immutable input: the engine never writes to it.
type Config struct {
	Layout          Layout         `toml:"layout" yaml:"layout" json:"layout"`
	Bar             Bar            `toml:"bar" yaml:"bar" json:"bar"`
	Pattern         Pattern        `toml:"pattern" yaml:"pattern" json:"pattern"`
	XAxis           XAxis          `toml:"x_axis" yaml:"x_axis" json:"x_axis"`
	YAxis           YAxis          `toml:"y_axis" yaml:"y_axis" json:"y_axis"`
	SecondaryYAxis  SecondaryYAxis `toml:"secondary_y_axis" yaml:"secondary_y_axis" json:"secondary_y_axis"`
	TargetSeries    Series         `toml:"target_series" yaml:"target_series" json:"target_series"`
	ValueSeries     Series         `toml:"value_series" yaml:"value_series" json:"value_series"`
	DataLabel       DataLabel      `toml:"data_label" yaml:"data_label" json:"data_label"`
	Legend          Legend         `toml:"legend" yaml:"legend" json:"legend"`
	GrowthBar       GrowthBar      `toml:"growth_bar" yaml:"growth_bar" json:"growth_bar"`
	GrowthLabel     GrowthLabel    `toml:"growth_label" yaml:"growth_label" json:"growth_label"`
	PrimaryGrowth   Growth         `toml:"primary_growth" yaml:"primary_growth" json:"primary_growth"`
	SecondaryGrowth Growth         `toml:"secondary_growth" yaml:"secondary_growth" json:"secondary_growth"`
	PrimaryLabel    GrowthMarker   `toml:"primary_label" yaml:"primary_label" json:"primary_label"`
	SecondaryLabel  GrowthMarker   `toml:"secondary_label" yaml:"secondary_label" json:"secondary_label"`
	PrimaryLine     Connector      `toml:"primary_line" yaml:"primary_line" json:"primary_line"`
	SecondaryLine   Connector      `toml:"secondary_line" yaml:"secondary_line" json:"secondary_line"`
	Threshold       Threshold      `toml:"threshold" yaml:"threshold" json:"threshold"`
	Capabilities    Capabilities   `toml:"capabilities" yaml:"capabilities" json:"capabilities"`
}

// Font describes a text style.
type Font struct {
	Family string  `toml:"family" yaml:"family" json:"family"`
	Color  string  `toml:"color" yaml:"color" json:"color"`
	Size   float64 `toml:"size" yaml:"size" json:"size"`
}

// Layout holds chart margins and scale factors.
type Layout struct {
	ChartXMargin      float64 `toml:"chart_x_margin" yaml:"chart_x_margin" json:"chart_x_margin"`
	ChartTopMargin    float64 `toml:"chart_top_margin" yaml:"chart_top_margin" json:"chart_top_margin"`
	ChartBottomMargin float64 `toml:"chart_bottom_margin" yaml:"chart_bottom_margin" json:"chart_bottom_margin"`
	// XAxisBarWhiteSpace is the band padding, as a fraction of a step.
	XAxisBarWhiteSpace float64 `toml:"x_axis_bar_white_space" yaml:"x_axis_bar_white_space" json:"x_axis_bar_white_space"`
	// YScaleFactor is the headroom applied to the observed maximum.
	YScaleFactor float64 `toml:"y_scale_factor" yaml:"y_scale_factor" json:"y_scale_factor"`
}

// Bar alignments for the second series.
const (
	AlignCenter = "center"
	AlignLeft   = "left"
	AlignRight  = "right"
)

// Border targets.
const (
	BorderNone   = "none"
	BorderFirst  = "first"
	BorderSecond = "second"
	BorderBoth   = "both"
)

// Stroke styles.
const (
	LineSolid  = "solid"
	LineDashed = "dashed"
)

// Bar styles the bar segments.
type Bar struct {
	BarAlignment      string  `toml:"bar_alignment" yaml:"bar_alignment" json:"bar_alignment"`
	BarPadding        float64 `toml:"bar_padding" yaml:"bar_padding" json:"bar_padding"`
	DisplayBarBorder  string  `toml:"display_bar_border" yaml:"display_bar_border" json:"display_bar_border"`
	BarBorderSize     float64 `toml:"bar_border_size" yaml:"bar_border_size" json:"bar_border_size"`
	BarBorderColor    string  `toml:"bar_border_color" yaml:"bar_border_color" json:"bar_border_color"`
	BarBorderLineType string  `toml:"bar_border_line_type" yaml:"bar_border_line_type" json:"bar_border_line_type"`
	FlipSeries        bool    `toml:"flip_series" yaml:"flip_series" json:"flip_series"`
	// Stacking is "stacked" or "overlay".
	Stacking string `toml:"stacking" yaml:"stacking" json:"stacking"`
}

// Pattern types and sizes.
const (
	PatternStripes = "stripes"
	PatternDots    = "dots"

	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Pattern fills the first series with stripes or dots.
type Pattern struct {
	PatternToggle   bool   `toml:"pattern_toggle" yaml:"pattern_toggle" json:"pattern_toggle"`
	PatternType     string `toml:"pattern_type" yaml:"pattern_type" json:"pattern_type"`
	PatternUnitSize string `toml:"pattern_unit_size" yaml:"pattern_unit_size" json:"pattern_unit_size"`
	PatternColor    string `toml:"pattern_color" yaml:"pattern_color" json:"pattern_color"`
}

// XAxis styles category labels.
type XAxis struct {
	Font       Font    `toml:"font" yaml:"font" json:"font"`
	LabelAngle float64 `toml:"label_angle" yaml:"label_angle" json:"label_angle"`
	XOffset    float64 `toml:"x_offset" yaml:"x_offset" json:"x_offset"`
	YOffset    float64 `toml:"y_offset" yaml:"y_offset" json:"y_offset"`
}

// YAxis configures the primary value axis.
type YAxis struct {
	DisplayUnits    string  `toml:"display_units" yaml:"display_units" json:"display_units"`
	DisplayDigits   int     `toml:"display_digits" yaml:"display_digits" json:"display_digits"`
	MaxValue        float64 `toml:"max_value" yaml:"max_value" json:"max_value"`
	TickCount       int     `toml:"tick_count" yaml:"tick_count" json:"tick_count"`
	ToggleGridLines bool    `toml:"toggle_grid_lines" yaml:"toggle_grid_lines" json:"toggle_grid_lines"`
	Font            Font    `toml:"font" yaml:"font" json:"font"`
}

// SecondaryYAxis configures the right-hand value axis.
type SecondaryYAxis struct {
	ToggleOn      bool    `toml:"toggle_on" yaml:"toggle_on" json:"toggle_on"`
	MinValue      float64 `toml:"min_value" yaml:"min_value" json:"min_value"`
	MaxValue      float64 `toml:"max_value" yaml:"max_value" json:"max_value"`
	DisplayUnits  string  `toml:"display_units" yaml:"display_units" json:"display_units"`
	DisplayDigits int     `toml:"display_digits" yaml:"display_digits" json:"display_digits"`
	TickCount     int     `toml:"tick_count" yaml:"tick_count" json:"tick_count"`
	Font          Font    `toml:"font" yaml:"font" json:"font"`
}

// Label positions.
const (
	LabelMid    = "mid"
	LabelTop    = "top"
	LabelBottom = "bottom"
	LabelNone   = "none"
)

// Series styles one series. TargetSeries applies to the first series in
// stack order and ValueSeries to the second.
type Series struct {
	SerieColor           string `toml:"serie_color" yaml:"serie_color" json:"serie_color"`
	ShowSerie            bool   `toml:"show_serie" yaml:"show_serie" json:"show_serie"`
	BarLabelToggle       bool   `toml:"bar_label_toggle" yaml:"bar_label_toggle" json:"bar_label_toggle"`
	BarLabelPosition     string `toml:"bar_label_position" yaml:"bar_label_position" json:"bar_label_position"`
	LabelFontColor       string `toml:"label_font_color" yaml:"label_font_color" json:"label_font_color"`
	LabelBgToggle        bool   `toml:"label_bg_toggle" yaml:"label_bg_toggle" json:"label_bg_toggle"`
	LabelBackgroundColor string `toml:"label_background_color" yaml:"label_background_color" json:"label_background_color"`
	// BarSelect is a category selector whose bars are shifted by
	// BarHeightAdjustment pixels.
	BarSelect           string  `toml:"bar_select" yaml:"bar_select" json:"bar_select"`
	BarHeightAdjustment float64 `toml:"bar_height_adjustment" yaml:"bar_height_adjustment" json:"bar_height_adjustment"`
}

// DataLabel styles bar value labels.
type DataLabel struct {
	DisplayUnits          string  `toml:"display_units" yaml:"display_units" json:"display_units"`
	DisplayDigits         int     `toml:"display_digits" yaml:"display_digits" json:"display_digits"`
	FontFamily            string  `toml:"font_family" yaml:"font_family" json:"font_family"`
	FontSize              float64 `toml:"font_size" yaml:"font_size" json:"font_size"`
	LabelDisplayTolerance float64 `toml:"label_display_tolerance" yaml:"label_display_tolerance" json:"label_display_tolerance"`
}

// Legend positions.
const (
	LegendTop    = "top"
	LegendBottom = "bottom"
	LegendLeft   = "left"
)

// Legend configures the series legend.
type Legend struct {
	LegendToggle   bool    `toml:"legend_toggle" yaml:"legend_toggle" json:"legend_toggle"`
	LegendPosition string  `toml:"legend_position" yaml:"legend_position" json:"legend_position"`
	LegendMargin   float64 `toml:"legend_margin" yaml:"legend_margin" json:"legend_margin"`
	Font           Font    `toml:"font" yaml:"font" json:"font"`
}

// GrowthBar configures per-category delta rectangles.
type GrowthBar struct {
	GrowthRectToggle    bool    `toml:"growth_rect_toggle" yaml:"growth_rect_toggle" json:"growth_rect_toggle"`
	PositiveGrowthColor string  `toml:"positive_growth_color" yaml:"positive_growth_color" json:"positive_growth_color"`
	NegativeGrowthColor string  `toml:"negative_growth_color" yaml:"negative_growth_color" json:"negative_growth_color"`
	AlignGrowthRect     string  `toml:"align_growth_rect" yaml:"align_growth_rect" json:"align_growth_rect"`
	GrowthRectWidth     float64 `toml:"growth_rect_width" yaml:"growth_rect_width" json:"growth_rect_width"`
}

// GrowthLabel configures the delta label drawn on a delta rectangle.
type GrowthLabel struct {
	LabelToggle           bool    `toml:"label_toggle" yaml:"label_toggle" json:"label_toggle"`
	LabelPosition         string  `toml:"label_position" yaml:"label_position" json:"label_position"`
	DisplayUnits          string  `toml:"display_units" yaml:"display_units" json:"display_units"`
	DisplayDigits         int     `toml:"display_digits" yaml:"display_digits" json:"display_digits"`
	FlipSign              bool    `toml:"flip_sign" yaml:"flip_sign" json:"flip_sign"`
	Font                  Font    `toml:"font" yaml:"font" json:"font"`
	LabelDisplayTolerance float64 `toml:"label_display_tolerance" yaml:"label_display_tolerance" json:"label_display_tolerance"`
}

// Connector display modes and sides.
const (
	DisplayTop  = "top"
	DisplaySide = "side"

	SideLeft  = "left"
	SideRight = "right"
)

// Growth configures one family of growth connectors. Selector applies to
// the primary family; Selector1, Selector2 and Lookback to the secondary.
type Growth struct {
	Toggle          bool    `toml:"toggle" yaml:"toggle" json:"toggle"`
	Selector        string  `toml:"selector" yaml:"selector" json:"selector"`
	Selector1       string  `toml:"selector1" yaml:"selector1" json:"selector1"`
	Selector2       string  `toml:"selector2" yaml:"selector2" json:"selector2"`
	Lookback        int     `toml:"lookback" yaml:"lookback" json:"lookback"`
	DisplayLabel    string  `toml:"display_label" yaml:"display_label" json:"display_label"`
	DisplaySide     string  `toml:"display_side" yaml:"display_side" json:"display_side"`
	AlignIndicators bool    `toml:"align_indicators" yaml:"align_indicators" json:"align_indicators"`
	LabelXOffset    float64 `toml:"label_x_offset" yaml:"label_x_offset" json:"label_x_offset"`
	LabelYOffset    float64 `toml:"label_y_offset" yaml:"label_y_offset" json:"label_y_offset"`
}

// GrowthMarker styles the ellipse-backed percentage label of a connector.
type GrowthMarker struct {
	LabelBackgroundColor string  `toml:"label_background_color" yaml:"label_background_color" json:"label_background_color"`
	Font                 Font    `toml:"font" yaml:"font" json:"font"`
	BorderColor          string  `toml:"border_color" yaml:"border_color" json:"border_color"`
	BorderSize           float64 `toml:"border_size" yaml:"border_size" json:"border_size"`
	LabelHeight          float64 `toml:"label_height" yaml:"label_height" json:"label_height"`
	LabelMinWidth        float64 `toml:"label_min_width" yaml:"label_min_width" json:"label_min_width"`
	ShowSign             bool    `toml:"show_sign" yaml:"show_sign" json:"show_sign"`
	FlipCalculation      bool    `toml:"flip_calculation" yaml:"flip_calculation" json:"flip_calculation"`
	ToggleBgShape        bool    `toml:"toggle_bg_shape" yaml:"toggle_bg_shape" json:"toggle_bg_shape"`
}

// Arrow placements.
const (
	ArrowNone  = "none"
	ArrowLeft  = "left"
	ArrowRight = "right"
	ArrowBoth  = "both"
)

// Connector styles the connector path and arrowheads.
type Connector struct {
	LineColor        string  `toml:"line_color" yaml:"line_color" json:"line_color"`
	LineSize         float64 `toml:"line_size" yaml:"line_size" json:"line_size"`
	LineType         string  `toml:"line_type" yaml:"line_type" json:"line_type"`
	ArrowSize        float64 `toml:"arrow_size" yaml:"arrow_size" json:"arrow_size"`
	DisplayArrow     string  `toml:"display_arrow" yaml:"display_arrow" json:"display_arrow"`
	LineOffsetHeight float64 `toml:"line_offset_height" yaml:"line_offset_height" json:"line_offset_height"`
}

// Threshold aggregation modes.
const (
	AggregateFirst  = "first"
	AggregateSum    = "sum"
	AggregateSeries = "series"
)

// Threshold axes.
const (
	AxisPrimary   = "primary"
	AxisSecondary = "secondary"
)

// Threshold configures the threshold line.
type Threshold struct {
	LineToggle    bool    `toml:"line_toggle" yaml:"line_toggle" json:"line_toggle"`
	LineColor     string  `toml:"line_color" yaml:"line_color" json:"line_color"`
	LineThickness float64 `toml:"line_thickness" yaml:"line_thickness" json:"line_thickness"`
	LineType      string  `toml:"line_type" yaml:"line_type" json:"line_type"`
	// LineAlign maps the line through the primary or secondary axis.
	LineAlign        string  `toml:"line_align" yaml:"line_align" json:"line_align"`
	LineOffsetHeight float64 `toml:"line_offset_height" yaml:"line_offset_height" json:"line_offset_height"`
	// Aggregate is "first" (first value), "sum" (all values) or "series"
	// (one point per category, requires one value per row).
	Aggregate string `toml:"aggregate" yaml:"aggregate" json:"aggregate"`
}

// Capabilities switches engine features that hosts historically shipped
// as separate chart variants.
type Capabilities struct {
	SecondaryAxis          bool `toml:"secondary_axis" yaml:"secondary_axis" json:"secondary_axis"`
	PatternFills           bool `toml:"pattern_fills" yaml:"pattern_fills" json:"pattern_fills"`
	ManualHeightAdjustment bool `toml:"manual_height_adjustment" yaml:"manual_height_adjustment" json:"manual_height_adjustment"`
}
