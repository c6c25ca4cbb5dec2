package sink

import "github.com/matzehuels/stackbar/pkg/chart/scene"

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the scene as PNG via SVG conversion.
func RenderPNG(s *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	return toPNG(RenderSVG(s, WithStatic()), r.scale)
}

// RenderPDF renders the scene as PDF via SVG conversion.
func RenderPDF(s *scene.Scene) ([]byte, error) {
	return toPDF(RenderSVG(s, WithStatic()))
}
