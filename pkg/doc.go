// Package pkg provides the core libraries for SBGN-ML diagram rendering.
//
// # Overview
//
// sbgnviz turns SBGN-ML process description documents into styled images.
// The pkg directory is organized into five main areas:
//
//  1. [sbgn] - Document model and SBGN-ML parsing
//  2. [render] - Drawing (shapes, styles, surfaces, text metrics)
//  3. [pipeline] - Orchestration (parse → render, overview flow, caching)
//  4. [cache] - Artifact and response caching backends
//  5. [observability] - Hook points for metrics and tracing
//
// # Architecture
//
// The typical data flow:
//
//	SBGN-ML document
//	         ↓
//	    [sbgn] package (parse into glyph tree + arcs, compute bounds)
//	         ↓
//	    [render] package (diagram → drawing ops on a surface)
//	         ↓
//	    PNG/SVG output
//
// The [pipeline] package drives this flow for both the CLI and the HTTP
// server, caching rendered artifacts through [cache].
//
// # Quick Start
//
// Parse and render a document:
//
//	import (
//	    "os"
//	    "github.com/sbgnviz/sbgnviz/pkg/render"
//	    "github.com/sbgnviz/sbgnviz/pkg/render/surface"
//	    "github.com/sbgnviz/sbgnviz/pkg/sbgn"
//	)
//
//	// 1. Parse the document
//	f, _ := os.Open("pathway.sbgn")
//	d, bounds, _ := sbgn.Parse(f)
//
//	// 2. Create a renderer
//	r := render.New(render.WithScale(2))
//
//	// 3. Draw onto a surface
//	w, h := r.PixelSize(bounds)
//	dst := surface.NewRaster(w, h, nil)
//	r.Render(dst, d, bounds)
//	dst.EncodePNG(os.Stdout)
//
// Or use the pipeline, which adds fonts, caching, and hooks:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{Path: "pathway.sbgn"})
//
// # Main Packages
//
// ## Document Model
//
// [sbgn] - The diagram model (glyphs, arcs, ports, state variables) and the
// SBGN-ML parser. Glyphs form a containment tree; arcs connect glyphs or
// ports. Parsing also computes the drawing bounds.
//
// [geom] - Points, bounds, and the geometric helpers the renderer shares.
//
// ## Rendering
//
// [render] - The renderer itself: per-class node drawing, arc decoration,
// overlays such as clone markers and state variables.
//
// [render/shape] - Path construction for the SBGN shape vocabulary
// (stadiums, cut corners, circles, concave arcs).
//
// [render/style] - Colors, stroke widths, font sizes, and per-class style
// resolution.
//
// [render/surface] - Output surfaces: an anti-aliased raster (PNG) and an
// SVG writer, behind one drawing interface.
//
// [render/text] - Label measurement backed by TrueType fonts discovered on
// the host, with a fixed-advance fallback.
//
// [render/overview] - Graphviz connectivity summaries (DOT, SVG, PNG).
//
// ## Orchestration
//
// [pipeline] - The parse → render flow shared by CLI and server, including
// validation, font resolution, artifact caching, and observability hooks.
//
// ## Infrastructure
//
// [cache] - Cache backends: filesystem for the CLI, Redis and MongoDB for
// server deployments, and a null cache for uncached runs.
//
// [errors] - Structured error codes shared by the CLI and the HTTP API.
//
// [observability] - Pluggable hooks invoked around parsing, rendering, and
// cache access.
//
// [buildinfo] - Version metadata injected at build time.
//
// [sbgn]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/sbgn
// [geom]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/geom
// [render]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/render
// [render/shape]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/render/shape
// [render/style]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/render/style
// [render/surface]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/render/surface
// [render/text]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/render/text
// [render/overview]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/render/overview
// [pipeline]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/cache
// [errors]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/sbgnviz/sbgnviz/pkg/buildinfo
package pkg
