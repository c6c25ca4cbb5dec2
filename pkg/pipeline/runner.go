package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/chart"
	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/scene"
	"github.com/matzehuels/stackbar/pkg/dataset"
	"github.com/matzehuels/stackbar/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The cache is wrapped so hits and misses reach the observability hooks.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  cache.NewInstrumented(c),
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
//
// When the chart itself cannot be drawn, Execute returns the error together
// with a Result whose scene shows the fatal message, rendered in every
// requested format. Load and option errors return a nil Result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Load
	loadStart := time.Now()
	t, err := r.LoadTable(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	cfg, err := r.LoadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	result.Table = t
	result.TableHash = cache.HashJSON(t)
	result.Stats.Rows = len(t.Rows)
	result.Stats.Series = len(t.Series)
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded table",
		"rows", len(t.Rows),
		"series", len(t.Series),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	sceneKey := r.Keyer.SceneKey(result.TableHash, opts.SceneKeyOpts(cache.HashJSON(cfg)))
	s, sceneHit, renderErr := r.LayoutWithCacheInfo(ctx, sceneKey, cfg, t, opts)
	if s == nil {
		return nil, fmt.Errorf("layout: %w", renderErr)
	}
	result.Scene = s
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.SceneHit = sceneHit

	r.Logger.Info("computed layout",
		"categories", len(t.Rows),
		"messages", len(s.Messages),
		"cached", sceneHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sceneKey, s, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	if renderErr != nil {
		return result, fmt.Errorf("layout: %w", renderErr)
	}
	return result, nil
}

// LoadTable reads the data table named by opts.
func (r *Runner) LoadTable(ctx context.Context, opts Options) (dataset.Table, error) {
	if len(opts.Data) > 0 {
		start := time.Now()
		t, err := dataset.Read(bytes.NewReader(opts.Data), opts.DataFormat, opts.Read)
		observability.Render().OnIngest(ctx, opts.DataFormat, len(t.Rows), time.Since(start), err)
		return t, err
	}
	return dataset.Load(ctx, opts.DataPath, opts.Read)
}

// LoadConfig resolves the chart configuration named by opts.
func (r *Runner) LoadConfig(opts Options) (config.Config, error) {
	switch {
	case opts.Config != nil:
		return *opts.Config, opts.Config.Validate()
	case len(opts.ConfigData) > 0:
		return config.Parse(opts.ConfigData, opts.ConfigFormat)
	case opts.ConfigPath != "":
		return config.Load(opts.ConfigPath)
	default:
		return config.Default(), nil
	}
}

// LayoutWithCacheInfo returns the scene for t drawn with cfg, from cache
// when possible. A fatal chart error is returned along with the scene
// showing the fatal message; fatal scenes are never cached.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, key string, cfg config.Config, t dataset.Table, opts Options) (*scene.Scene, bool, error) {
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var s scene.Scene
			if err := json.Unmarshal(data, &s); err == nil && s.Root != nil {
				return &s, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
	}

	c := chart.NewContainer(opts.Width, opts.Height)
	chartOpts := append(opts.chartOptions(), chart.WithContext(ctx))
	if err := chart.Render(c, cfg, t, chartOpts...); err != nil {
		return c.Scene, false, err
	}

	if data, err := json.Marshal(c.Scene); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.SceneTTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		}
	}
	return c.Scene, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
