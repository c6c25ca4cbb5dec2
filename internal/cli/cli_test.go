package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/chart/units"
	"github.com/matzehuels/stackbar/pkg/dataset"
)

func testCLI(out *bytes.Buffer) *CLI {
	c := New(&bytes.Buffer{}, LogInfo)
	c.Out = out
	c.Err = &bytes.Buffer{}
	return c
}

func TestRootCommand(t *testing.T) {
	root := testCLI(&bytes.Buffer{}).RootCommand()
	if root.Use != appName {
		t.Errorf("Use = %q, want %q", root.Use, appName)
	}

	want := []string{"render", "serve", "inspect", "config", "cache", "completion"}
	have := map[string]bool{}
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestConfigDefaultCommand(t *testing.T) {
	var out bytes.Buffer
	root := testCLI(&out).RootCommand()
	root.SetArgs([]string{"config", "default", "--format", "yaml"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("config default error = %v", err)
	}
	if !strings.Contains(out.String(), "legend_position: top") {
		t.Errorf("config default output missing legend_position:\n%s", out.String())
	}
}

func TestConfigCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(good, []byte("[bar]\nflip_series = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("[bar]\nbar_alignment = \"diagonal\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	root := testCLI(&out).RootCommand()
	root.SetArgs([]string{"config", "check", "--print", good})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("config check good error = %v", err)
	}
	if !strings.Contains(out.String(), "flip_series = true") {
		t.Errorf("effective config missing override:\n%s", out.String())
	}

	root = testCLI(&bytes.Buffer{}).RootCommand()
	root.SetArgs([]string{"config", "check", bad})
	root.SetErr(&bytes.Buffer{})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("config check should reject an invalid alignment")
	}
}

func TestTableView(t *testing.T) {
	tbl, err := dataset.New([]string{"A", "B"}, []dataset.Row{
		{Category: "Jan", Values: map[string]float64{"A": 1500, "B": 2500}},
		{Category: "Feb", Values: map[string]float64{"A": 0, "B": 30}},
	}, []float64{3000})
	if err != nil {
		t.Fatal(err)
	}

	view := tableView(tbl, 1, units.Auto)
	for _, want := range []string{"Category", "Total", "Threshold", "Jan", "1.5K", "4.0K", "3.0K"} {
		if !strings.Contains(view, want) {
			t.Errorf("tableView() missing %q:\n%s", want, view)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := testCLI(&out).RootCommand()
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s error = %v", shell, err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("completion %s output does not mention %q", shell, appName)
			}
		})
	}
}

func TestCacheStatsTable(t *testing.T) {
	out := cacheStatsTable(map[string]cache.Usage{
		cache.KindScene:    {Entries: 2, Bytes: 1500},
		cache.KindArtifact: {Entries: 5, Bytes: 2_000_000, Expired: 1},
	})
	for _, want := range []string{"Type", "scene", "artifact", "1.5K", "2.0M"} {
		if !strings.Contains(out, want) {
			t.Errorf("cacheStatsTable() missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "artifact") > strings.Index(out, "scene") {
		t.Error("rows should be sorted by key type")
	}
}

func TestPrintMessages(t *testing.T) {
	var out bytes.Buffer
	c := testCLI(&out)

	c.printMessages([]string{"Invalid selector"}, false)
	c.printMessages([]string{"Fatal error"}, true)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("printMessages() wrote %d lines, want 2:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], iconWarning) || !strings.Contains(lines[0], "Invalid selector") {
		t.Errorf("warning line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], iconError) || !strings.Contains(lines[1], "Fatal error") {
		t.Errorf("error line = %q", lines[1])
	}
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		cached bool
		want   string
	}{
		{false, "3 categories · 2 series · fresh"},
		{true, "3 categories · 2 series · cached"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		testCLI(&out).printStats(3, 2, tt.cached)
		if got := strings.TrimSpace(out.String()); got != tt.want {
			t.Errorf("printStats(cached=%v) = %q, want %q", tt.cached, got, tt.want)
		}
	}
}
