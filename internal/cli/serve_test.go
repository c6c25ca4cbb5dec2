package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackbar/pkg/buildinfo"
	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/chart/layout"
	"github.com/matzehuels/stackbar/pkg/pipeline"
)

const sampleTable = `{
  "categories": ["Jan", "Feb"],
  "series": [
    {"name": "A", "values": [10, 0]},
    {"name": "B", "values": [20, 30]}
  ]
}`

func testServer() http.Handler {
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	return newServer(runner, logger, 0).routes()
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeRender(t *testing.T) {
	rec := post(t, testServer(), `{"data": `+sampleTable+`, "width": 600, "height": 400}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Errorf("body = %.40q, want svg", rec.Body.String())
	}
	if h := rec.Header().Get(messagesHeader); h != "" {
		t.Errorf("%s = %q, want empty", messagesHeader, h)
	}
}

func TestServeRenderCSV(t *testing.T) {
	csv, _ := json.Marshal("month,A,B\nJan,10,20\nFeb,0,30\n")
	rec := post(t, testServer(), `{"data": `+string(csv)+`, "data_format": "csv", "format": "json"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestServeRenderSelectorBanner(t *testing.T) {
	body := `{"data": ` + sampleTable + `, "config": {"target_series": {"bar_select": "Mar", "bar_height_adjustment": 5}}}`
	rec := post(t, testServer(), body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if h := rec.Header().Get(messagesHeader); h != layout.MsgInvalidSelector {
		t.Errorf("%s = %q, want %q", messagesHeader, h, layout.MsgInvalidSelector)
	}
}

func TestServeRenderFatal(t *testing.T) {
	rec := post(t, testServer(), `{"data": `+sampleTable+`, "width": 50}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Fatal error") {
		t.Error("fatal response should carry the fatal scene")
	}
}

func TestServeRenderBadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"data":`},
		{"unknown field", `{"data": ` + sampleTable + `, "colour": "red"}`},
		{"missing data", `{}`},
		{"bad format", `{"data": ` + sampleTable + `, "format": "gif"}`},
		{"bad data format", `{"data": ` + sampleTable + `, "data_format": "xml"}`},
		{"csv not a string", `{"data": {}, "data_format": "csv"}`},
		{"invalid config", `{"data": ` + sampleTable + `, "config": {"layout": {"y_scale_factor": -1}}}`},
	}
	h := testServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
				t.Errorf("error body = %q, want JSON error", rec.Body.String())
			}
		})
	}
}

func TestServeDefaultConfig(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/config/default", nil)
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var cfg map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := cfg["legend"]; !ok {
		t.Error("default config should contain the legend group")
	}
}

func TestServeVersion(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got buildinfo.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got != buildinfo.Get() {
		t.Errorf("version = %+v, want %+v", got, buildinfo.Get())
	}
}

func TestServeHealthAndMetrics(t *testing.T) {
	h := testServer()
	for _, path := range []string{"/healthz", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
		if got := rec.Header().Get("Server"); got != buildinfo.UserAgent() {
			t.Errorf("GET %s Server = %q, want %q", path, got, buildinfo.UserAgent())
		}
	}
}

func TestDisplayAddr(t *testing.T) {
	if got := displayAddr(":8080"); got != "localhost:8080" {
		t.Errorf("displayAddr(:8080) = %q", got)
	}
	if got := displayAddr("0.0.0.0:9000"); got != "0.0.0.0:9000" {
		t.Errorf("displayAddr(0.0.0.0:9000) = %q", got)
	}
}
