package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/observability"
)

// Supported input formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ReadOptions selects columns from tabular files (CSV and XLSX).
type ReadOptions struct {
	// Category names the category column. Defaults to the first column.
	Category string
	// Series names the series columns in stack order. Defaults to the
	// columns following the category column, minus the threshold column,
	// capped at MaxSeries.
	Series []string
	// Threshold names an optional threshold column. Defaults to a column
	// called "threshold" (case-insensitive) if present.
	Threshold string
	// Sheet names the XLSX sheet. Defaults to the first sheet.
	Sheet string
}

// Load reads a data file, choosing the reader from the file extension.
func Load(ctx context.Context, path string, opts ReadOptions) (Table, error) {
	start := time.Now()
	format := FormatFromPath(path)

	t, err := load(path, format, opts)
	observability.Render().OnIngest(ctx, format, len(t.Rows), time.Since(start), err)
	return t, err
}

func load(path, format string, opts ReadOptions) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
		}
		return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	if !supported(format) {
		return Table{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported data file %q (want .json, .csv or .xlsx)", path)
	}
	return Read(f, format, opts)
}

// Read decodes a table in the given format from r.
func Read(r io.Reader, format string, opts ReadOptions) (Table, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatCSV:
		return ReadCSV(r, opts)
	case FormatXLSX:
		return ReadXLSX(r, opts)
	default:
		return Table{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported data format %q (want json, csv or xlsx)", format)
	}
}

func supported(format string) bool {
	return format == FormatJSON || format == FormatCSV || format == FormatXLSX
}

// FormatFromPath returns the input format implied by the file extension.
func FormatFromPath(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// jsonInput is the columnar JSON document accepted by ReadJSON.
type jsonInput struct {
	Categories []any `json:"categories"`
	Series     []struct {
		Name   string `json:"name"`
		Values []any  `json:"values"`
	} `json:"series"`
	Thresholds []float64 `json:"thresholds"`
}

// ReadJSON reads a columnar JSON document.
func ReadJSON(r io.Reader) (Table, error) {
	var in jsonInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON data")
	}

	cols := []Column{{Name: "category", Role: RoleCategory, Values: in.Categories}}
	for _, s := range in.Series {
		cols = append(cols, Column{Name: s.Name, Role: RoleSeries, Values: s.Values})
	}
	t, err := FromColumns(cols)
	if err != nil {
		return Table{}, err
	}
	// Top-level thresholds are not tied to rows.
	if len(in.Thresholds) > 0 {
		return New(t.Series, t.Rows, in.Thresholds)
	}
	return t, nil
}

// ReadCSV reads a CSV file with a header row.
func ReadCSV(r io.Reader, opts ReadOptions) (Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read CSV data")
	}
	return fromRecords(records, opts)
}

// ReadXLSX reads a worksheet whose first row is a header.
func ReadXLSX(r io.Reader, opts ReadOptions) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open workbook")
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, errors.New(errors.ErrCodeInvalidInput, "workbook has no sheets")
		}
		sheet = sheets[0]
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read sheet %q", sheet)
	}
	return fromRecords(records, opts)
}

// fromRecords converts a header plus string records into columns.
// Short records are padded with empty cells.
func fromRecords(records [][]string, opts ReadOptions) (Table, error) {
	if len(records) < 2 {
		return Table{}, errors.New(errors.ErrCodeInvalidInput, "expected a header row and at least one data row")
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	col := func(name string) (int, error) {
		for i, h := range header {
			if strings.EqualFold(h, name) {
				return i, nil
			}
		}
		return -1, errors.New(errors.ErrCodeInvalidInput, "column %q not found in header %v", name, header)
	}

	catIdx := 0
	if opts.Category != "" {
		i, err := col(opts.Category)
		if err != nil {
			return Table{}, err
		}
		catIdx = i
	}

	thIdx := -1
	if opts.Threshold != "" {
		i, err := col(opts.Threshold)
		if err != nil {
			return Table{}, err
		}
		thIdx = i
	} else if i, err := col("threshold"); err == nil {
		thIdx = i
	}

	var seriesIdx []int
	if len(opts.Series) > 0 {
		for _, s := range opts.Series {
			i, err := col(s)
			if err != nil {
				return Table{}, err
			}
			seriesIdx = append(seriesIdx, i)
		}
	} else {
		for i := range header {
			if i == catIdx || i == thIdx {
				continue
			}
			if len(seriesIdx) == MaxSeries {
				break
			}
			seriesIdx = append(seriesIdx, i)
		}
	}

	cell := func(rec []string, i int) any {
		if i < len(rec) {
			return rec[i]
		}
		return nil
	}
	build := func(name string, role Role, idx int) Column {
		c := Column{Name: name, Role: role, Values: make([]any, 0, len(records)-1)}
		for _, rec := range records[1:] {
			c.Values = append(c.Values, cell(rec, idx))
		}
		return c
	}

	cols := []Column{build(header[catIdx], RoleCategory, catIdx)}
	for _, i := range seriesIdx {
		cols = append(cols, build(header[i], RoleSeries, i))
	}
	if thIdx >= 0 {
		cols = append(cols, build(header[thIdx], RoleThreshold, thIdx))
	}
	return FromColumns(cols)
}
