// Package surface abstracts the 2D drawing target behind the renderer.
//
// All coordinates handed to a Surface are already in output pixels: the
// renderer maps data space to device space itself, so backends never see a
// transform. Paths follow the usual immediate-mode model: build a path with
// MoveTo/LineTo/QuadTo/Arc, then consume it with Fill, Stroke, or Clip.
package surface

import (
	"fmt"
	"math"
)

// Color is an opaque RGB color with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// RGB builds a Color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Gray builds a Color with all three channels set to v.
func Gray(v float64) Color { return Color{R: v, G: v, B: v} }

// Hex renders the color as a #rrggbb string.
func (c Color) Hex() string {
	clamp := func(v float64) uint8 {
		return uint8(math.Round(math.Min(math.Max(v, 0), 1) * 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}

// White is the page background and the text halo color.
var White = Color{R: 1, G: 1, B: 1}

// Surface is a drawing target. Implementations are not safe for concurrent
// use; a renderer owns exactly one surface for the duration of a frame.
type Surface interface {
	// SetColor sets the paint used by the next Fill or Stroke.
	SetColor(c Color)
	// SetLineWidth sets the stroke width in pixels.
	SetLineWidth(w float64)

	// NewPath discards the current path.
	NewPath()
	// MoveTo starts a new subpath at (x, y).
	MoveTo(x, y float64)
	// LineTo appends a line segment to (x, y).
	LineTo(x, y float64)
	// QuadTo appends a quadratic Bezier segment to (x, y) with control
	// point (cx, cy).
	QuadTo(cx, cy, x, y float64)
	// Arc appends a circular arc around (cx, cy) with radius r from angle
	// a0 to a1 (radians, increasing clockwise in device space). If the
	// path already has a current point, the arc start is joined to it
	// with a line.
	Arc(cx, cy, r, a0, a1 float64)
	// Circle appends a full circle as its own closed subpath.
	Circle(cx, cy, r float64)
	// Ellipse appends a full axis-aligned ellipse as its own closed
	// subpath.
	Ellipse(cx, cy, rx, ry float64)
	// ClosePath closes the current subpath.
	ClosePath()

	// Fill fills the current path and clears it.
	Fill()
	// FillPreserve fills the current path and keeps it.
	FillPreserve()
	// Stroke strokes the current path and clears it.
	Stroke()
	// StrokePreserve strokes the current path and keeps it.
	StrokePreserve()
	// Clip intersects the clip region with the current path and clears
	// the path.
	Clip()

	// Save pushes the drawing state (color, line width, clip).
	Save()
	// Restore pops the state saved by the matching Save.
	Restore()

	// Text draws s centered on (x, y) at the given pixel size, filled
	// with the current behavior's fill color and outlined with a thin
	// white halo so labels stay readable over fills. Multi-line strings
	// are split on '\n' and stacked around the center.
	Text(s string, x, y, size float64, fill Color)
}

// HaloWidth is the white outline stroked behind every label.
const HaloWidth = 0.75

// LineHeight is the vertical advance between stacked label lines as a
// multiple of the font pixel size.
const LineHeight = 1.2
