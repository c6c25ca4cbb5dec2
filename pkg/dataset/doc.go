// Package dataset holds the tabular input of a chart and loads it from
// files.
//
// # Data Model
//
// A [Table] is an ordered list of [Row] values, each with a category
// label and one value per series, plus an optional list of threshold
// values. Tables are immutable once built and are passed by value into
// the layout engine; nothing in this package keeps global state.
//
// # Ingestion
//
// [FromColumns] builds a table from role-tagged columns, the shape most
// BI hosts hand over. The readers convert files into columns first:
//
//   - [ReadJSON]: {"categories": [...], "series": [{"name", "values"}], "thresholds": [...]}
//   - [ReadCSV]: header row, category column first by default
//   - [ReadXLSX]: first sheet (or a named one) laid out like the CSV form
//
// Rows with an empty category are dropped, missing series values read as
// zero and date categories are rendered as month-year labels ("Jul-21").
//
// # Selectors
//
// Options such as manual height adjustment or growth indicators name
// categories with a comma-separated selector. [Table.Resolve] maps a
// selector onto row indices and reports entries that match nothing.
package dataset
