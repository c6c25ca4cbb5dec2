package config

import (
	"github.com/matzehuels/stackbar/pkg/chart/units"
	"github.com/matzehuels/stackbar/pkg/errors"
)

// Validate checks enum values, colors and numeric ranges. It returns the
// first problem found as an ErrCodeInvalidConfig error.
func (c Config) Validate() error {
	checks := []func() error{
		c.validateLayout,
		c.validateBar,
		c.validateLabels,
		c.validateIndicators,
		c.validateColors,
		c.validateUnits,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) validateLayout() error {
	l := c.Layout
	if l.ChartXMargin < 0 || l.ChartTopMargin < 0 || l.ChartBottomMargin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout: margins cannot be negative")
	}
	if l.XAxisBarWhiteSpace < 0 || l.XAxisBarWhiteSpace >= 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.x_axis_bar_white_space must be in [0, 1)")
	}
	if l.YScaleFactor <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.y_scale_factor must be positive")
	}
	if c.YAxis.TickCount < 0 || c.SecondaryYAxis.TickCount < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tick_count cannot be negative")
	}
	for name, size := range map[string]float64{
		"x_axis.font.size":          c.XAxis.Font.Size,
		"y_axis.font.size":          c.YAxis.Font.Size,
		"data_label.font_size":      c.DataLabel.FontSize,
		"legend.font.size":          c.Legend.Font.Size,
		"growth_label.font.size":    c.GrowthLabel.Font.Size,
		"primary_label.font.size":   c.PrimaryLabel.Font.Size,
		"secondary_label.font.size": c.SecondaryLabel.Font.Size,
	} {
		if size <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive", name)
		}
	}
	return nil
}

func (c Config) validateBar() error {
	b := c.Bar
	if err := errors.ValidateOneOf("bar.bar_alignment", b.BarAlignment, AlignCenter, AlignLeft, AlignRight); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("bar.display_bar_border", b.DisplayBarBorder, BorderNone, BorderFirst, BorderSecond, BorderBoth); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("bar.bar_border_line_type", b.BarBorderLineType, LineSolid, LineDashed); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("bar.stacking", b.Stacking, "stacked", "overlay"); err != nil {
		return err
	}
	if b.BarPadding <= 0 || b.BarPadding > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "bar.bar_padding must be in (0, 1]")
	}
	if err := errors.ValidateOneOf("pattern.pattern_type", c.Pattern.PatternType, PatternStripes, PatternDots); err != nil {
		return err
	}
	return errors.ValidateOneOf("pattern.pattern_unit_size", c.Pattern.PatternUnitSize, SizeSmall, SizeMedium, SizeLarge)
}

func (c Config) validateLabels() error {
	positions := []string{LabelMid, LabelTop, LabelBottom, LabelNone}
	if err := errors.ValidateOneOf("target_series.bar_label_position", c.TargetSeries.BarLabelPosition, positions...); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("value_series.bar_label_position", c.ValueSeries.BarLabelPosition, positions...); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("growth_label.label_position", c.GrowthLabel.LabelPosition, LabelMid, LabelTop); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("legend.legend_position", c.Legend.LegendPosition, LegendTop, LegendBottom, LegendLeft); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("growth_bar.align_growth_rect", c.GrowthBar.AlignGrowthRect, AlignLeft, AlignRight); err != nil {
		return err
	}
	if w := c.GrowthBar.GrowthRectWidth; w <= 0 || w > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "growth_bar.growth_rect_width must be in (0, 1]")
	}
	if err := errors.ValidateOneOf("threshold.line_align", c.Threshold.LineAlign, AxisPrimary, AxisSecondary); err != nil {
		return err
	}
	if err := errors.ValidateOneOf("threshold.line_type", c.Threshold.LineType, LineSolid, LineDashed); err != nil {
		return err
	}
	return errors.ValidateOneOf("threshold.aggregate", c.Threshold.Aggregate, AggregateFirst, AggregateSum, AggregateSeries)
}

func (c Config) validateIndicators() error {
	for _, kind := range []IndicatorKind{IndicatorPrimary, IndicatorSecondary} {
		ind := c.Indicator(kind)
		prefix := kind.String()
		if err := errors.ValidateOneOf(prefix+"_growth.display_label", ind.Growth.DisplayLabel, DisplayTop, DisplaySide); err != nil {
			return err
		}
		if err := errors.ValidateOneOf(prefix+"_growth.display_side", ind.Growth.DisplaySide, SideLeft, SideRight); err != nil {
			return err
		}
		if err := errors.ValidateOneOf(prefix+"_line.display_arrow", ind.Line.DisplayArrow, ArrowNone, ArrowLeft, ArrowRight, ArrowBoth); err != nil {
			return err
		}
		if err := errors.ValidateOneOf(prefix+"_line.line_type", ind.Line.LineType, LineSolid, LineDashed); err != nil {
			return err
		}
		if ind.Label.LabelHeight < 0 || ind.Label.LabelMinWidth < 0 || ind.Line.ArrowSize < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s indicator sizes cannot be negative", prefix)
		}
	}
	if c.SecondaryGrowth.Lookback < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "secondary_growth.lookback must be at least 1")
	}
	return nil
}

func (c Config) validateColors() error {
	colors := []struct{ field, value string }{
		{"bar.bar_border_color", c.Bar.BarBorderColor},
		{"pattern.pattern_color", c.Pattern.PatternColor},
		{"x_axis.font.color", c.XAxis.Font.Color},
		{"y_axis.font.color", c.YAxis.Font.Color},
		{"secondary_y_axis.font.color", c.SecondaryYAxis.Font.Color},
		{"target_series.serie_color", c.TargetSeries.SerieColor},
		{"target_series.label_font_color", c.TargetSeries.LabelFontColor},
		{"target_series.label_background_color", c.TargetSeries.LabelBackgroundColor},
		{"value_series.serie_color", c.ValueSeries.SerieColor},
		{"value_series.label_font_color", c.ValueSeries.LabelFontColor},
		{"value_series.label_background_color", c.ValueSeries.LabelBackgroundColor},
		{"legend.font.color", c.Legend.Font.Color},
		{"growth_bar.positive_growth_color", c.GrowthBar.PositiveGrowthColor},
		{"growth_bar.negative_growth_color", c.GrowthBar.NegativeGrowthColor},
		{"growth_label.font.color", c.GrowthLabel.Font.Color},
		{"primary_label.label_background_color", c.PrimaryLabel.LabelBackgroundColor},
		{"primary_label.border_color", c.PrimaryLabel.BorderColor},
		{"primary_label.font.color", c.PrimaryLabel.Font.Color},
		{"secondary_label.label_background_color", c.SecondaryLabel.LabelBackgroundColor},
		{"secondary_label.border_color", c.SecondaryLabel.BorderColor},
		{"secondary_label.font.color", c.SecondaryLabel.Font.Color},
		{"primary_line.line_color", c.PrimaryLine.LineColor},
		{"secondary_line.line_color", c.SecondaryLine.LineColor},
		{"threshold.line_color", c.Threshold.LineColor},
	}
	for _, col := range colors {
		if err := errors.ValidateColor(col.field, col.value); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) validateUnits() error {
	for field, u := range map[string]string{
		"y_axis.display_units":           c.YAxis.DisplayUnits,
		"secondary_y_axis.display_units": c.SecondaryYAxis.DisplayUnits,
		"data_label.display_units":       c.DataLabel.DisplayUnits,
		"growth_label.display_units":     c.GrowthLabel.DisplayUnits,
	} {
		if _, err := units.ParseUnit(u); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", field)
		}
	}
	return nil
}
