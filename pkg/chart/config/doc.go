// Package config defines the chart option catalog.
//
// A [Config] is a tree of named option groups (axes, bars, series, labels,
// legend, growth indicators, threshold line). [Default] returns the stock
// values; [Load] overlays a TOML, YAML or JSON file onto those defaults and
// validates the result:
//
//	cfg, err := config.Load("chart.toml")
//	if err != nil {
//	    return err
//	}
//
// # Growth Indicator Families
//
// The primary and secondary growth connectors share one shape of options.
// [Config.Indicator] returns them as an [Indicator] tagged with its
// [IndicatorKind], so the layout engine switches on the kind instead of
// looking groups up by name.
//
// # Capabilities
//
// [Capabilities] turns on features that are otherwise inert: the secondary
// value axis, pattern fills for the first series and manual bar height
// adjustment.
package config
