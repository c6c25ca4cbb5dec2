package dataset

import (
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/stackbar/pkg/errors"
)

func TestFromColumns(t *testing.T) {
	tbl, err := FromColumns([]Column{
		{Name: "Month", Role: RoleCategory, Values: []any{
			time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC), "2021-08-01", nil, "Sep-21",
		}},
		{Name: "Target", Role: RoleSeries, Values: []any{10.0, "1,200", 99.0, nil}},
		{Name: "Value", Role: RoleSeries, Values: []any{5, "", 1.0, int64(7)}},
		{Name: "Line", Role: RoleThreshold, Values: []any{40.0, nil, 1.0, ""}},
	})
	if err != nil {
		t.Fatalf("FromColumns() error = %v", err)
	}

	if got := tbl.Categories(); !reflect.DeepEqual(got, []string{"Jul-21", "Aug-21", "Sep-21"}) {
		t.Errorf("Categories() = %v", got)
	}
	if !reflect.DeepEqual(tbl.Series, []string{"Target", "Value"}) {
		t.Errorf("Series = %v", tbl.Series)
	}
	want := []map[string]float64{
		{"Target": 10, "Value": 5},
		{"Target": 1200, "Value": 0},
		{"Target": 0, "Value": 7},
	}
	for i, w := range want {
		if !reflect.DeepEqual(tbl.Rows[i].Values, w) {
			t.Errorf("row %d = %v, want %v", i, tbl.Rows[i].Values, w)
		}
	}
	// The dropped row's threshold does not count.
	if !reflect.DeepEqual(tbl.Thresholds, []float64{40}) {
		t.Errorf("Thresholds = %v, want [40]", tbl.Thresholds)
	}
	if tbl.Numeric.Max != 1200 {
		t.Errorf("Numeric.Max = %v, want 1200", tbl.Numeric.Max)
	}
}

func TestFromColumnsErrors(t *testing.T) {
	cat := Column{Name: "c", Role: RoleCategory, Values: []any{"Jan"}}
	tests := []struct {
		name string
		cols []Column
	}{
		{"no category", []Column{{Name: "s", Role: RoleSeries, Values: []any{1.0}}}},
		{"two categories", []Column{cat, cat, {Name: "s", Role: RoleSeries, Values: []any{1.0}}}},
		{"length mismatch", []Column{cat, {Name: "s", Role: RoleSeries, Values: []any{1.0, 2.0}}}},
		{"not a number", []Column{cat, {Name: "s", Role: RoleSeries, Values: []any{"abc"}}}},
		{"unknown role", []Column{cat, {Name: "s", Role: "tooltip", Values: []any{1.0}}}},
		{"no series", []Column{cat}},
		{"bad type", []Column{cat, {Name: "s", Role: RoleSeries, Values: []any{true}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromColumns(tt.cols); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("FromColumns() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"  Jan ", "Jan"},
		{"2021-07-15", "Jul-21"},
		{"2022-01-01T00:00:00Z", "Jan-22"},
		{"7/1/2021", "Jul-21"},
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), "Dec-23"},
		{2024.0, "2024"},
		{3, "3"},
		{"Q1 2024", "Q1 2024"},
	}

	for _, tt := range tests {
		if got := CategoryLabel(tt.in); got != tt.want {
			t.Errorf("CategoryLabel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
