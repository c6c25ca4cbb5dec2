package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and blanks", " svg , ,json", []string{"svg", "json"}},
		{"only commas", ",,", []string{"svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/sales.csv", "data/sales"},
		{"out/chart.svg", "sales.csv", "out/chart"},
		{"out/chart", "sales.csv", "out/chart"},
		{"out/chart.v2", "sales.csv", "out/chart.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		input    string
		format   string
		multiple bool
		want     string
	}{
		{"derived", "", "sales.csv", "svg", false, "sales.svg"},
		{"explicit single", "chart.out", "sales.csv", "svg", false, "chart.out"},
		{"explicit multiple", "chart.svg", "sales.csv", "png", true, "chart.png"},
		{"never overwrite input", "", "sales.json", "json", false, "sales.chart.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.format, tt.multiple); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sales.csv")
	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
	}

	paths, err := writeArtifacts(artifacts, []string{"svg", "json"}, input, filepath.Join(dir, "out", "chart"))
	if err != nil {
		t.Fatalf("writeArtifacts() error = %v", err)
	}
	want := []string{
		filepath.Join(dir, "out", "chart.svg"),
		filepath.Join(dir, "out", "chart.json"),
	}
	if len(paths) != len(want) {
		t.Fatalf("writeArtifacts() = %v, want %v", paths, want)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, p, want[i])
		}
	}
	data, err := os.ReadFile(want[0])
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("ReadFile(%q) = %q, %v", want[0], data, err)
	}
}

func TestReadOptions(t *testing.T) {
	got := readOptions("Month", "Target, Actual", "Goal", "Q1")
	if got.Category != "Month" || got.Threshold != "Goal" || got.Sheet != "Q1" {
		t.Errorf("readOptions() = %+v", got)
	}
	if len(got.Series) != 2 || got.Series[0] != "Target" || got.Series[1] != "Actual" {
		t.Errorf("Series = %v, want [Target Actual]", got.Series)
	}
}
