// Package scene converts a computed layout into a tree of drawable nodes.
//
// A [Scene] is format-neutral: it holds groups, rectangles, text, paths,
// ellipses and lines with ordered attributes, plus pattern definitions
// and tooltip panels. Package sink serializes a Scene to SVG, JSON, PNG
// or PDF.
//
// Building a scene is deterministic. Element ids are scoped by a
// name-based UUID derived from the chart content, so two charts embedded
// in one page never share pattern or panel ids while re-rendering the
// same chart yields byte-identical output.
package scene
