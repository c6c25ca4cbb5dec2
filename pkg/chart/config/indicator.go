package config

// IndicatorKind selects a growth connector family.
type IndicatorKind int

const (
	// IndicatorPrimary compares the two series within each selected category.
	IndicatorPrimary IndicatorKind = iota
	// IndicatorSecondary compares the last series across two categories.
	IndicatorSecondary
)

// String returns the family name used in messages and metrics.
func (k IndicatorKind) String() string {
	switch k {
	case IndicatorPrimary:
		return "primary"
	case IndicatorSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Indicator bundles the option groups of one connector family.
type Indicator struct {
	Kind   IndicatorKind
	Growth Growth
	Label  GrowthMarker
	Line   Connector
}

// Indicator returns the option groups for kind.
func (c Config) Indicator(kind IndicatorKind) Indicator {
	switch kind {
	case IndicatorSecondary:
		return Indicator{Kind: kind, Growth: c.SecondaryGrowth, Label: c.SecondaryLabel, Line: c.SecondaryLine}
	default:
		return Indicator{Kind: IndicatorPrimary, Growth: c.PrimaryGrowth, Label: c.PrimaryLabel, Line: c.PrimaryLine}
	}
}

// SeriesStyle returns the style of the series at stack index i: the
// first series uses TargetSeries, every later one ValueSeries.
func (c Config) SeriesStyle(i int) Series {
	if i == 0 {
		return c.TargetSeries
	}
	return c.ValueSeries
}
