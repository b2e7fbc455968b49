// Package geom provides the coordinate mapping between diagram data space
// and output pixel space.
//
// Diagrams carry absolute positions in arbitrary real units. A Transform is
// fitted once per render pass from the padded bounding box of all content and
// maps points, sizes, and scalar magnitudes (stroke widths, arrow sizes) into
// pixels. The x and y axes scale independently; scalar magnitudes use the
// smaller of the two factors so decorations never stretch.
package geom

import "fmt"

// Point is a location in either data or pixel space.
type Point struct {
	X, Y float64
}

// Rect is a normalized pixel-space rectangle: W and H are never negative.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Bounds is the data-space extent of a diagram.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Pad expands the bounds symmetrically by p data units on every side.
func (b Bounds) Pad(p float64) Bounds {
	return Bounds{
		MinX: b.MinX - p,
		MinY: b.MinY - p,
		MaxX: b.MaxX + p,
		MaxY: b.MaxY + p,
	}
}

// Width returns the horizontal span, clamped to a minimum of 1.0 so a
// degenerate diagram still produces a valid transform.
func (b Bounds) Width() float64 { return clampSpan(b.MaxX - b.MinX) }

// Height returns the vertical span, clamped like Width.
func (b Bounds) Height() float64 { return clampSpan(b.MaxY - b.MinY) }

func (b Bounds) String() string {
	return fmt.Sprintf("[%g,%g %g,%g]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

func clampSpan(v float64) float64 {
	if v < 0 {
		v = -v
	}
	if v < 1.0 {
		return 1.0
	}
	return v
}

// Transform maps data-space coordinates to pixel space with independent
// per-axis scale factors and a common translation.
type Transform struct {
	minX, minY     float64
	scaleX, scaleY float64
}

// NewTransform fits a transform so that the data range [minX,maxX]×[minY,maxY]
// fills an output of outW×outH pixels. Zero-width or zero-height ranges are
// clamped to one data unit.
func NewTransform(minX, minY, maxX, maxY, outW, outH float64) Transform {
	return Transform{
		minX:   minX,
		minY:   minY,
		scaleX: outW / clampSpan(maxX-minX),
		scaleY: outH / clampSpan(maxY-minY),
	}
}

// Fit computes the transform and output canvas size for bounds padded by pad
// data units, at scale output pixels per data unit. A scale of 1 reproduces
// the data-space geometry exactly.
func Fit(b Bounds, pad, scale float64) (Transform, float64, float64) {
	if scale <= 0 {
		scale = 1
	}
	padded := b.Pad(pad)
	w := padded.Width() * scale
	h := padded.Height() * scale
	return NewTransform(padded.MinX, padded.MinY, padded.MaxX, padded.MaxY, w, h), w, h
}

// MapPoint maps a data-space point into pixel space.
func (t Transform) MapPoint(x, y float64) Point {
	return Point{
		X: (x - t.minX) * t.scaleX,
		Y: (y - t.minY) * t.scaleY,
	}
}

// Unmap maps a pixel-space point back to data space.
func (t Transform) Unmap(p Point) (float64, float64) {
	return p.X/t.scaleX + t.minX, p.Y/t.scaleY + t.minY
}

// MapSize scales a data-space size into pixel space without translation.
func (t Transform) MapSize(w, h float64) (float64, float64) {
	return w * t.scaleX, h * t.scaleY
}

// ScaleScalar scales a magnitude by the smaller of the two axis factors.
// Used for stroke widths, arrowheads, and connector lengths, which must not
// distort when the axes scale unevenly.
func (t Transform) ScaleScalar(v float64) float64 {
	s := t.scaleX
	if t.scaleY < s {
		s = t.scaleY
	}
	return v * s
}

// MapRect maps a data-space box into a normalized pixel rectangle. The input
// box may have negative width or height; the result never does.
func (t Transform) MapRect(x, y, w, h float64) Rect {
	p0 := t.MapPoint(x, y)
	p1 := t.MapPoint(x+w, y+h)
	left, right := p0.X, p1.X
	if right < left {
		left, right = right, left
	}
	top, bottom := p0.Y, p1.Y
	if bottom < top {
		top, bottom = bottom, top
	}
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}
