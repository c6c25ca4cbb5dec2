package config

// DefaultLookback is the number of periods between the two categories of
// the default secondary growth pair.
const DefaultLookback = 12

const (
	defaultFontFamily = "Calibri"
	axisColor         = "#666666"
	connectorColor    = "#808080"
)

// Default returns the stock configuration. Every call returns a fresh
// value, so callers may modify the result freely.
func Default() Config {
	return Config{
		Layout: Layout{
			ChartXMargin:       85,
			ChartTopMargin:     20,
			ChartBottomMargin:  50,
			XAxisBarWhiteSpace: 0.3,
			YScaleFactor:       1.3,
		},
		Bar: Bar{
			BarAlignment:      AlignCenter,
			BarPadding:        0.7,
			DisplayBarBorder:  BorderNone,
			BarBorderSize:     3,
			BarBorderColor:    axisColor,
			BarBorderLineType: LineSolid,
			Stacking:          "stacked",
		},
		Pattern: Pattern{
			PatternType:     PatternStripes,
			PatternUnitSize: SizeMedium,
			PatternColor:    "#a6a6a6",
		},
		XAxis: XAxis{
			Font: Font{Family: defaultFontFamily, Color: axisColor, Size: 10},
		},
		YAxis: YAxis{
			DisplayUnits:    "auto",
			TickCount:       3,
			ToggleGridLines: true,
			Font:            Font{Family: defaultFontFamily, Color: axisColor, Size: 10},
		},
		SecondaryYAxis: SecondaryYAxis{
			DisplayUnits: "auto",
			TickCount:    3,
			Font:         Font{Family: defaultFontFamily, Color: axisColor, Size: 10},
		},
		TargetSeries: Series{
			SerieColor:           "#a6a6a6",
			ShowSerie:            true,
			BarLabelToggle:       true,
			BarLabelPosition:     LabelMid,
			LabelFontColor:       "#000000",
			LabelBackgroundColor: "#ffffff",
		},
		ValueSeries: Series{
			SerieColor:           "#4472c4",
			ShowSerie:            true,
			BarLabelToggle:       true,
			BarLabelPosition:     LabelMid,
			LabelFontColor:       "#ffffff",
			LabelBackgroundColor: "#ffffff",
		},
		DataLabel: DataLabel{
			DisplayUnits:          "auto",
			DisplayDigits:         1,
			FontFamily:            defaultFontFamily,
			FontSize:              10,
			LabelDisplayTolerance: 15,
		},
		Legend: Legend{
			LegendToggle:   true,
			LegendPosition: LegendTop,
			Font:           Font{Family: defaultFontFamily, Color: "#000000", Size: 13},
		},
		GrowthBar: GrowthBar{
			PositiveGrowthColor: "#70ad47",
			NegativeGrowthColor: "#c00000",
			AlignGrowthRect:     AlignRight,
			GrowthRectWidth:     0.1,
		},
		GrowthLabel: GrowthLabel{
			LabelToggle:           true,
			LabelPosition:         LabelMid,
			DisplayUnits:          "auto",
			DisplayDigits:         1,
			Font:                  Font{Family: defaultFontFamily, Color: "#000000", Size: 10},
			LabelDisplayTolerance: 15,
		},
		PrimaryGrowth: Growth{
			DisplayLabel: DisplayTop,
			DisplaySide:  SideRight,
			LabelXOffset: 40,
		},
		SecondaryGrowth: Growth{
			Lookback:     DefaultLookback,
			DisplayLabel: DisplaySide,
			DisplaySide:  SideRight,
			LabelXOffset: 40,
		},
		PrimaryLabel:   defaultMarker(),
		SecondaryLabel: defaultMarker(),
		PrimaryLine: Connector{
			LineColor:        connectorColor,
			LineSize:         1,
			LineType:         LineSolid,
			ArrowSize:        20,
			DisplayArrow:     ArrowBoth,
			LineOffsetHeight: 25,
		},
		SecondaryLine: Connector{
			LineColor:    connectorColor,
			LineSize:     1,
			LineType:     LineDashed,
			ArrowSize:    20,
			DisplayArrow: ArrowNone,
		},
		Threshold: Threshold{
			LineColor:     "#000000",
			LineThickness: 1,
			LineType:      LineDashed,
			LineAlign:     AxisPrimary,
			Aggregate:     AggregateFirst,
		},
		Capabilities: Capabilities{
			ManualHeightAdjustment: true,
		},
	}
}

func defaultMarker() GrowthMarker {
	return GrowthMarker{
		LabelBackgroundColor: "#ffffff",
		Font:                 Font{Family: defaultFontFamily, Color: "#000000", Size: 11},
		BorderColor:          connectorColor,
		BorderSize:           1,
		LabelHeight:          10,
		LabelMinWidth:        20,
		ShowSign:             true,
		ToggleBgShape:        true,
	}
}
