// Package render draws SBGN process description diagrams.
//
// # Overview
//
// The renderer walks a parsed diagram and emits drawing operations onto a
// [surface.Surface], so the same pass produces raster (PNG) and vector
// (SVG) output. It provides:
//
//   - Per-class node drawing for the SBGN glyph vocabulary
//   - Arc rendering with class-specific end decorations
//   - Overlays: clone markers, state variables, units of information
//
// # Usage
//
// Create a renderer, size a surface from the diagram bounds, and render:
//
//	r := render.New(render.WithScale(2), render.WithPadding(10))
//	w, h := r.PixelSize(bounds)
//	dst := surface.NewRaster(w, h, fonts)
//	r.Render(dst, d, bounds)
//
// Compartments are drawn first, then entity pool nodes in document order,
// then arcs, so arcs always sit above the shapes they connect.
//
// # Subpackages
//
// Drawing is split across focused subpackages:
//   - [shape]: path construction for SBGN shapes
//   - [style]: colors, stroke widths, and per-class style resolution
//   - [surface]: raster and SVG output surfaces
//   - [text]: label measurement and font discovery
//   - [overview]: Graphviz connectivity summaries
//
// [shape]: github.com/sbgnviz/sbgnviz/pkg/render/shape
// [style]: github.com/sbgnviz/sbgnviz/pkg/render/style
// [surface]: github.com/sbgnviz/sbgnviz/pkg/render/surface
// [text]: github.com/sbgnviz/sbgnviz/pkg/render/text
// [overview]: github.com/sbgnviz/sbgnviz/pkg/render/overview
package render
