// Package sink serializes a [scene.Scene] into output formats.
//
//   - SVG: standalone document with embedded tooltip behaviour
//   - JSON: the scene tree, for downstream tooling
//   - PNG and PDF: rasterized/printed through rsvg-convert
//
// Basic usage:
//
//	svg := sink.RenderSVG(s)
//	png, err := sink.RenderPNG(s, sink.WithScale(2))
//
// PNG and PDF output requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [Render] dispatches on a format name and is what the CLI and the HTTP
// server call.
//
// [scene.Scene]: github.com/matzehuels/stackbar/pkg/chart/scene.Scene
package sink
