// Package pkg provides the libraries behind stackbar, a renderer for
// stacked bar charts annotated with growth indicators.
//
// # Overview
//
// A chart is built from a small table (one row per category, one or two
// series) and a configuration describing styling and indicators. The pkg
// directory is organized by stage:
//
//  1. [dataset] - Loading tables from JSON, CSV and XLSX
//  2. [chart] - Layout engine, scene model and output sinks
//  3. [pipeline] - Orchestration (load → layout → render) with caching
//  4. [cache] - File, Redis and null cache backends
//  5. [observability] - Hooks for metrics and logging
//
// # Architecture
//
// The typical data flow through stackbar:
//
//	Data file + chart config
//	         ↓
//	    [dataset] package (parse and validate the table)
//	         ↓
//	    [chart/layout] package (scales, bars, indicators, labels)
//	         ↓
//	    [chart/scene] package (flat drawable primitives)
//	         ↓
//	    [chart/sink] package (SVG/PNG/PDF/JSON)
//
// Indicator failures never abort a chart. They are contained, recorded as
// scene messages, and the remaining chart is still drawn.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    DataPath:   "sales.csv",
//	    ConfigPath: "chart.toml",
//	    Formats:    []string{pipeline.FormatSVG},
//	})
//
// See the cmd/stackbar binary for the command-line and HTTP front ends.
package pkg
