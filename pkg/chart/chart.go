package chart

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/layout"
	"github.com/matzehuels/stackbar/pkg/chart/scene"
	"github.com/matzehuels/stackbar/pkg/chart/textmeasure"
	"github.com/matzehuels/stackbar/pkg/dataset"
	"github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/observability"
)

// Container is the drawing target of a chart. It is owned by a single
// caller; Render replaces Layout and Scene on every call.
type Container struct {
	Width  float64
	Height float64

	Layout *layout.Layout // nil after a fatal render
	Scene  *scene.Scene
}

// NewContainer returns an empty container of the given size in pixels.
func NewContainer(width, height float64) *Container {
	return &Container{Width: width, Height: height}
}

// Messages returns the messages currently shown in the container.
func (c *Container) Messages() []string {
	if c.Scene == nil {
		return nil
	}
	return c.Scene.Messages
}

// Option configures a render.
type Option func(*renderer)

type renderer struct {
	ctx      context.Context
	logger   *log.Logger
	measurer textmeasure.Measurer
}

// WithLogger sets the logger that receives render diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(r *renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMeasurer overrides the text measurer used for label fitting.
func WithMeasurer(m textmeasure.Measurer) Option {
	return func(r *renderer) {
		if m != nil {
			r.measurer = m
		}
	}
}

// WithContext passes ctx to observability hooks.
func WithContext(ctx context.Context) Option {
	return func(r *renderer) {
		if ctx != nil {
			r.ctx = ctx
		}
	}
}

// Render draws table t into c using cfg. It returns an error only for
// fatal problems, in which case c shows the fatal message.
func Render(c *Container, cfg config.Config, t dataset.Table, opts ...Option) error {
	r := renderer{ctx: context.Background(), logger: log.Default()}
	for _, opt := range opts {
		opt(&r)
	}
	if r.measurer == nil {
		r.measurer = DefaultMeasurer()
	}

	if err := cfg.Validate(); err != nil {
		return r.fatal(c, err)
	}

	start := time.Now()
	l, err := layout.Build(cfg, t, layout.Viewport{Width: c.Width, Height: c.Height}, r.measurer)
	observability.Render().OnLayoutComplete(r.ctx, len(t.Rows), time.Since(start), err)
	if err != nil {
		return r.fatal(c, err)
	}

	for _, f := range l.Failures {
		switch {
		case errors.Unresolved(f.Err) != nil:
			r.logger.Warn(f.Message, "family", f.Family, "unresolved", errors.Unresolved(f.Err))
		case errors.Contained(f.Err):
			r.logger.Warn(f.Message, "family", f.Family, "err", f.Err)
		default:
			r.logger.Error(f.Message, "family", f.Family, "err", f.Err)
		}
		observability.Render().OnIndicatorFailure(r.ctx, f.Family, f.Err)
	}
	for _, w := range l.Warnings {
		r.logger.Warn("layout degraded", "err", w)
	}

	c.Layout = l
	c.Scene = scene.Build(l, cfg)
	r.logger.Debug("rendered chart",
		"categories", len(l.Categories),
		"series", len(l.Order),
		"failures", len(l.Failures),
		"duration", time.Since(start))
	return nil
}

func (r renderer) fatal(c *Container, err error) error {
	r.logger.Error("unable to process the data", "err", err)
	c.Layout = nil
	c.Scene = scene.Fatal(c.Width, c.Height, layout.MsgFatal)
	return err
}

var (
	defaultOnce     sync.Once
	defaultMeasurer textmeasure.Measurer
)

// DefaultMeasurer returns a shared, cached measurer backed by the
// embedded Go fonts. It falls back to a width estimate when the fonts
// cannot be loaded.
func DefaultMeasurer() textmeasure.Measurer {
	defaultOnce.Do(func() {
		defaultMeasurer = textmeasure.Approx{}
		fm, err := textmeasure.NewFontMeasurer()
		if err != nil {
			log.Warn("falling back to estimated text widths", "err", err)
			return
		}
		cached, err := textmeasure.NewCached(fm, textmeasure.DefaultCacheSize)
		if err != nil {
			defaultMeasurer = fm
			return
		}
		defaultMeasurer = cached
	})
	return defaultMeasurer
}
