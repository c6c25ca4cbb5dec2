// Package layout computes the geometry of a chart.
//
// [Build] is a pure function of a table, a configuration, a viewport and a
// text measurer. It returns a [Layout] holding every positioned element
// (axis ticks, bar segments, value labels, delta bars, growth connectors,
// legend entries, threshold line, tooltip panels) without drawing
// anything; package scene turns a Layout into drawable nodes.
//
// # Coordinates
//
// The plot area is described by [Layout.Plot] in container coordinates.
// Everything drawn inside the plot (bars, labels, indicators, ticks,
// threshold) uses plot-local coordinates with the origin at the plot's
// top-left corner and y growing downwards. Legend entries and tooltip
// panels use container coordinates.
//
// # Failures
//
// Build fails only when the input cannot be charted at all. Problems in
// decorative features are contained: an unresolved bar selector leaves
// the adjustment at zero, and an indicator family that cannot be laid out
// is dropped. Each contained problem is recorded in [Layout.Failures] with
// the message the container should display.
package layout
