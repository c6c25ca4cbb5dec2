package pipeline

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/chart/scene"
	"github.com/matzehuels/stackbar/pkg/chart/sink"
	"github.com/matzehuels/stackbar/pkg/observability"
)

// maxParallelRenders bounds concurrent format encoders; PNG and PDF each
// spawn an rsvg-convert process.
const maxParallelRenders = 4

// Render serializes s into every format in opts.Formats.
func Render(ctx context.Context, s *scene.Scene, opts Options) (map[string][]byte, error) {
	return renderFormats(ctx, s, opts.Formats, opts)
}

// RenderFormat serializes s into a single format.
func RenderFormat(s *scene.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.Static {
			svgOpts = append(svgOpts, sink.WithStatic())
		}
		return sink.RenderSVG(s, svgOpts...), nil
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = DefaultScale
		}
		return sink.RenderPNG(s, sink.WithScale(scale))
	default:
		return sink.Render(s, format)
	}
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// every artifact came from cache. Formats missing from the cache are
// rendered concurrently.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sceneKey string, s *scene.Scene, opts Options) (map[string][]byte, bool, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	sceneHash := cache.Hash([]byte(sceneKey))
	cacheable := !s.Fatal

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if cacheable && !opts.Refresh {
			key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := renderFormats(ctx, s, missing, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if !cacheable {
			continue
		}
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
		}
	}
	return artifacts, false, nil
}

func renderFormats(ctx context.Context, s *scene.Scene, formats []string, opts Options) (map[string][]byte, error) {
	start := time.Now()
	out := make(map[string][]byte, len(formats))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRenders)
	for _, format := range formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := RenderFormat(s, format, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			out[format] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	observability.Render().OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
