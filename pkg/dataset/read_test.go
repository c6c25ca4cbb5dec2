package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/stackbar/pkg/errors"
)

func TestReadJSON(t *testing.T) {
	doc := `{
		"categories": ["Jan", "Feb"],
		"series": [
			{"name": "Target", "values": [10, 15]},
			{"name": "Value", "values": [20, null]}
		],
		"thresholds": [25, 30]
	}`
	tbl, err := ReadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if !reflect.DeepEqual(tbl.Categories(), []string{"Jan", "Feb"}) {
		t.Errorf("Categories() = %v", tbl.Categories())
	}
	if tbl.Value(1, "Value") != 0 {
		t.Errorf("null value = %v, want 0", tbl.Value(1, "Value"))
	}
	if !reflect.DeepEqual(tbl.Thresholds, []float64{25, 30}) {
		t.Errorf("Thresholds = %v", tbl.Thresholds)
	}
}

func TestReadJSONMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ReadJSON() error = %v, want INVALID_INPUT", err)
	}
}

func TestReadCSV(t *testing.T) {
	data := "Month,Target,Value,Threshold\nJan,10,20,25\nFeb,15,5\n,1,1,1\n"

	tbl, err := ReadCSV(strings.NewReader(data), ReadOptions{})
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if !reflect.DeepEqual(tbl.Series, []string{"Target", "Value"}) {
		t.Errorf("Series = %v", tbl.Series)
	}
	if !reflect.DeepEqual(tbl.Categories(), []string{"Jan", "Feb"}) {
		t.Errorf("Categories() = %v", tbl.Categories())
	}
	if !reflect.DeepEqual(tbl.Thresholds, []float64{25}) {
		t.Errorf("Thresholds = %v", tbl.Thresholds)
	}
}

func TestReadCSVExplicitColumns(t *testing.T) {
	data := "Value,Month,Target\n20,Jan,10\n5,Feb,15\n"

	tbl, err := ReadCSV(strings.NewReader(data), ReadOptions{
		Category: "month",
		Series:   []string{"Target", "Value"},
	})
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if !reflect.DeepEqual(tbl.Series, []string{"Target", "Value"}) {
		t.Errorf("Series = %v", tbl.Series)
	}
	if tbl.Value(0, "Value") != 20 || tbl.Value(1, "Target") != 15 {
		t.Errorf("Rows = %+v", tbl.Rows)
	}

	_, err = ReadCSV(strings.NewReader(data), ReadOptions{Category: "Quarter"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing column error = %v, want INVALID_INPUT", err)
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("Month,Target\n"), ReadOptions{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ReadCSV() error = %v, want INVALID_INPUT", err)
	}
}

func writeWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Month", "Target", "Value"},
		{"Jan", 10, 20},
		{"Feb", 15, 5},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}
	return buf
}

func TestReadXLSX(t *testing.T) {
	tbl, err := ReadXLSX(writeWorkbook(t), ReadOptions{})
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}
	if !reflect.DeepEqual(tbl.Categories(), []string{"Jan", "Feb"}) {
		t.Errorf("Categories() = %v", tbl.Categories())
	}
	if tbl.Numeric.Max != 30 {
		t.Errorf("Numeric.Max = %v, want 30", tbl.Numeric.Max)
	}

	if _, err := ReadXLSX(writeWorkbook(t), ReadOptions{Sheet: "Missing"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing sheet error = %v, want INVALID_INPUT", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.csv")
	if err := os.WriteFile(path, []byte("Month,Target\nJan,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := Load(context.Background(), path, ReadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tbl.Rows) != 1 {
		t.Errorf("Rows = %d, want 1", len(tbl.Rows))
	}

	if _, err := Load(context.Background(), filepath.Join(dir, "nope.csv"), ReadOptions{}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	txt := filepath.Join(dir, "sales.txt")
	os.WriteFile(txt, []byte("x"), 0o644)
	if _, err := Load(context.Background(), txt, ReadOptions{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown extension error = %v, want INVALID_FORMAT", err)
	}
}
