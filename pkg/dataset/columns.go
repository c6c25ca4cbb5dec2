package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/stackbar/pkg/errors"
)

// Role tags what a column contributes to the chart.
type Role string

const (
	RoleCategory  Role = "category"
	RoleSeries    Role = "series"
	RoleThreshold Role = "threshold"
)

// Column is one input column. Values may hold strings, numbers,
// time.Time or nil.
type Column struct {
	Name   string
	Role   Role
	Values []any
}

// categoryDateLayout renders date categories as month and two-digit year.
const categoryDateLayout = "Jan-06"

// dateLayouts are tried, in order, on textual category values.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"01-02-06",
}

// FromColumns builds a table from role-tagged columns. Exactly one
// category column and one or two series columns are required; any
// threshold columns contribute their non-empty values in row order.
// All columns must have the same length.
func FromColumns(cols []Column) (Table, error) {
	var (
		category   *Column
		series     []Column
		thresholds []Column
	)
	for i := range cols {
		c := cols[i]
		switch c.Role {
		case RoleCategory:
			if category != nil {
				return Table{}, errors.New(errors.ErrCodeInvalidInput, "more than one category column")
			}
			category = &cols[i]
		case RoleSeries:
			series = append(series, c)
		case RoleThreshold:
			thresholds = append(thresholds, c)
		default:
			return Table{}, errors.New(errors.ErrCodeInvalidInput, "column %q has unknown role %q", c.Name, c.Role)
		}
	}
	if category == nil {
		return Table{}, errors.New(errors.ErrCodeInvalidInput, "missing category column")
	}

	n := len(category.Values)
	for _, c := range append(append([]Column(nil), series...), thresholds...) {
		if len(c.Values) != n {
			return Table{}, errors.New(errors.ErrCodeInvalidInput,
				"column %q has %d values, category column has %d", c.Name, len(c.Values), n)
		}
	}

	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
	}

	rows := make([]Row, 0, n)
	var limits []float64
	for i := 0; i < n; i++ {
		label := CategoryLabel(category.Values[i])
		if label == "" {
			continue
		}
		vals := make(map[string]float64, len(series))
		for _, s := range series {
			v, err := toFloat(s.Values[i])
			if err != nil {
				return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err,
					"column %q row %d", s.Name, i+1)
			}
			vals[s.Name] = v
		}
		for _, th := range thresholds {
			if isEmpty(th.Values[i]) {
				continue
			}
			v, err := toFloat(th.Values[i])
			if err != nil {
				return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err,
					"column %q row %d", th.Name, i+1)
			}
			limits = append(limits, v)
		}
		rows = append(rows, Row{Category: label, Values: vals})
	}

	return New(names, rows, limits)
}

// CategoryLabel converts a raw category value into its display label.
// Dates, whether typed or textual, become month-year labels.
func CategoryLabel(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.Format(categoryDateLayout)
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(categoryDateLayout)
			}
		}
		return s
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return ""
	}
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// toFloat reads a series value. Missing values are zero.
func toFloat(v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		if s == "" {
			return 0, nil
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.New(errors.ErrCodeInvalidInput, "not a number: %q", x)
		}
		f = p
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "unsupported value type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "value is not finite")
	}
	return f, nil
}
