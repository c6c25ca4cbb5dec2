package dataset

import (
	"sort"
	"strings"

	"github.com/matzehuels/stackbar/pkg/chart/units"
	"github.com/matzehuels/stackbar/pkg/errors"
)

// Row is one category and its series values.
type Row struct {
	Category string             `json:"category"`
	Values   map[string]float64 `json:"values"`
}

// Numeric summarizes the magnitude of a table.
type Numeric struct {
	Min        float64 `json:"min"`         // smallest single series value
	Max        float64 `json:"max"`         // largest per-category stacked sum
	TopRounded float64 `json:"top_rounded"` // units.TopRound(Max)
}

// Table is the immutable chart input.
type Table struct {
	Rows       []Row     `json:"rows"`
	Series     []string  `json:"series"`
	Thresholds []float64 `json:"thresholds,omitempty"`
	Numeric    Numeric   `json:"numeric"`
}

// MaxSeries is the number of series a chart can stack.
const MaxSeries = 2

// New builds a table from rows in order. Series names must be unique and
// there must be one or two of them. Rows with an empty category are
// dropped; a table left without rows is invalid.
func New(series []string, rows []Row, thresholds []float64) (Table, error) {
	if len(series) == 0 || len(series) > MaxSeries {
		return Table{}, errors.New(errors.ErrCodeInvalidInput,
			"expected 1 to %d series, got %d", MaxSeries, len(series))
	}
	seen := make(map[string]bool, len(series))
	for _, s := range series {
		if s == "" {
			return Table{}, errors.New(errors.ErrCodeInvalidInput, "series name cannot be empty")
		}
		if seen[s] {
			return Table{}, errors.New(errors.ErrCodeInvalidInput, "duplicate series %q", s)
		}
		seen[s] = true
	}

	kept := make([]Row, 0, len(rows))
	for _, r := range rows {
		r.Category = strings.TrimSpace(r.Category)
		if r.Category == "" {
			continue
		}
		if err := errors.ValidateCategory(r.Category); err != nil {
			return Table{}, err
		}
		vals := make(map[string]float64, len(series))
		for _, s := range series {
			vals[s] = r.Values[s]
		}
		kept = append(kept, Row{Category: r.Category, Values: vals})
	}
	if len(kept) == 0 {
		return Table{}, errors.New(errors.ErrCodeInvalidInput, "no data rows")
	}

	t := Table{
		Rows:       kept,
		Series:     append([]string(nil), series...),
		Thresholds: append([]float64(nil), thresholds...),
	}
	t.Numeric = summarize(t)
	return t, nil
}

func summarize(t Table) Numeric {
	var n Numeric
	for i, r := range t.Rows {
		sum := 0.0
		for j, s := range t.Series {
			v := r.Values[s]
			sum += v
			if (i == 0 && j == 0) || v < n.Min {
				n.Min = v
			}
		}
		if i == 0 || sum > n.Max {
			n.Max = sum
		}
	}
	n.TopRounded = units.TopRound(n.Max)
	return n
}

// Categories returns the category labels in row order.
func (t Table) Categories() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Category
	}
	return out
}

// Value returns the value of series in row i. Unknown series read as 0.
func (t Table) Value(i int, series string) float64 {
	if i < 0 || i >= len(t.Rows) {
		return 0
	}
	return t.Rows[i].Values[series]
}

// Resolve maps a comma-separated selector onto sorted, de-duplicated row
// indices. Entries are trimmed and matched exactly against category
// labels; every row carrying a matching label is selected. Entries that
// match nothing are reported in an ErrCodeUnresolvedSelector error while
// the indices of the remaining entries are still returned. An empty
// selector resolves to nothing.
func (t Table) Resolve(selector string) ([]int, error) {
	byLabel := make(map[string][]int, len(t.Rows))
	for i, r := range t.Rows {
		byLabel[r.Category] = append(byLabel[r.Category], i)
	}

	picked := make(map[int]bool)
	var unresolved []string
	for _, part := range strings.Split(selector, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		idx, ok := byLabel[name]
		if !ok {
			unresolved = append(unresolved, name)
			continue
		}
		for _, i := range idx {
			picked[i] = true
		}
	}

	out := make([]int, 0, len(picked))
	for i := range picked {
		out = append(out, i)
	}
	sort.Ints(out)

	if len(unresolved) > 0 {
		return out, errors.Wrap(errors.ErrCodeUnresolvedSelector,
			&errors.SelectorError{Selector: selector, Unresolved: unresolved}, "Invalid selector")
	}
	return out, nil
}
