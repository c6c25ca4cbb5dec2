// Package chart renders composite dual-series bar charts.
//
// A chart shows one or two numeric series per category as stacked (or
// overlaid) bars, optionally decorated with value labels, per-category
// delta bars, growth connectors comparing the two series or two
// categories, a threshold line and a legend.
//
// # Usage
//
//	c := chart.NewContainer(800, 400)
//	if err := chart.Render(c, cfg, table, chart.WithLogger(logger)); err != nil {
//	    // c.Scene shows the fatal message
//	}
//	svg := sink.RenderSVG(c.Scene)
//
// Render replaces the container content completely on every call and is
// idempotent: identical inputs produce an identical scene.
//
// # Failure handling
//
// Inputs that cannot be charted (no rows, malformed values, invalid
// configuration, a container too small for the plot) abort the render:
// the container shows only [layout.MsgFatal] and Render returns the
// error. Failures of decorative features are contained instead. The
// chart is drawn without the failed family and the family's message is
// shown as a banner; Render returns nil. Every failure is logged and
// reported to the registered observability hooks.
package chart
