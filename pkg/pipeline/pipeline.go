// Package pipeline provides the load → layout → render pipeline for stackbar.
//
// The CLI and the render server both go through a [Runner], so caching,
// logging and validation behave the same at every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read the data table (JSON, CSV or XLSX) and the chart
//     configuration (TOML, YAML or JSON)
//  2. Layout: run [chart.Render] into a container of the requested size
//  3. Render: serialize the scene into each requested format
//
// Scenes and artifacts are cached by content hash. A repeated request for
// the same table, configuration and size skips the layout stage, and any
// format already rendered for that scene skips serialization.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    DataPath:   "sales.csv",
//	    ConfigPath: "chart.toml",
//	    Formats:    []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/chart"
	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/scene"
	"github.com/matzehuels/stackbar/pkg/chart/sink"
	"github.com/matzehuels/stackbar/pkg/dataset"
	"github.com/matzehuels/stackbar/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default container width in pixels.
	DefaultWidth = 600.0

	// DefaultHeight is the default container height in pixels.
	DefaultHeight = 400.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// MaxDimension bounds the container size accepted from callers.
	MaxDimension = 10000.0
)

// Format constants for output formats.
const (
	FormatSVG  = sink.FormatSVG
	FormatPNG  = sink.FormatPNG
	FormatPDF  = sink.FormatPDF
	FormatJSON = sink.FormatJSON
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options. Data with DataFormat takes precedence over DataPath.
	DataPath   string              `json:"data_path,omitempty"`
	Data       []byte              `json:"-"`
	DataFormat string              `json:"data_format,omitempty"`
	Read       dataset.ReadOptions `json:"-"`

	// Config overrides ConfigData, which overrides ConfigPath. With none
	// set the stock configuration is used.
	ConfigPath   string         `json:"config_path,omitempty"`
	ConfigData   []byte         `json:"-"`
	ConfigFormat string         `json:"config_format,omitempty"`
	Config       *config.Config `json:"-"`

	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Static  bool     `json:"static,omitempty"` // SVG without tooltip script
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Table is the loaded data.
	Table dataset.Table

	// TableHash is the content hash of the table.
	TableHash string

	// Scene is the drawable chart. It carries the container messages.
	Scene *scene.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Messages returns the messages shown in the chart container.
func (r *Result) Messages() []string {
	if r.Scene == nil {
		return nil
	}
	return r.Scene.Messages
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Series     int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDimension checks a container dimension.
func ValidateDimension(name string, v float64) error {
	if v <= 0 || v > MaxDimension {
		return errors.New(errors.ErrCodeInvalidInput, "%s must be in (0, %g], got %g", name, MaxDimension, v)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Data) == 0 && o.DataPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "data file is required")
	}
	if len(o.Data) > 0 && o.DataFormat == "" {
		return errors.New(errors.ErrCodeInvalidInput, "data_format is required with inline data")
	}
	if len(o.ConfigData) > 0 && o.ConfigFormat == "" {
		return errors.New(errors.ErrCodeInvalidInput, "config_format is required with inline config")
	}
	o.SetRenderDefaults()
	if err := ValidateDimension("width", o.Width); err != nil {
		return err
	}
	if err := ValidateDimension("height", o.Height); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for layout and rendering.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SceneKeyOpts returns cache key options for the layout stage.
func (o *Options) SceneKeyOpts(configHash string) cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		ConfigHash: configHash,
		Width:      o.Width,
		Height:     o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatSVG:
		opts.Static = o.Static
	}
	return opts
}

// chartOptions returns the chart options for a render driven by o.
func (o *Options) chartOptions() []chart.Option {
	return []chart.Option{chart.WithLogger(o.Logger)}
}
