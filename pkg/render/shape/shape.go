// Package shape builds glyph outline paths on a surface. Functions only
// append path segments; filling, stroking, and clipping stay with the
// caller so the same outline can back a fill, a border, and a clone-marker
// clip without being rebuilt differently each time.
package shape

import (
	"math"

	"github.com/sbgnviz/sbgnviz/pkg/geom"
	"github.com/sbgnviz/sbgnviz/pkg/render/surface"
)

// Fn is a path builder for a pixel rectangle.
type Fn func(s surface.Surface, r geom.Rect)

// Rect paths a plain rectangle.
func Rect(s surface.Surface, r geom.Rect) {
	s.NewPath()
	s.MoveTo(r.X, r.Y)
	s.LineTo(r.Right(), r.Y)
	s.LineTo(r.Right(), r.Bottom())
	s.LineTo(r.X, r.Bottom())
	s.ClosePath()
}

// Ellipse paths an ellipse inscribed in the rectangle. Radii are clamped to
// at least one pixel so degenerate boxes still draw.
func Ellipse(s surface.Surface, r geom.Rect) {
	rx := math.Max(r.W/2, 1)
	ry := math.Max(r.H/2, 1)
	c := r.Center()
	s.NewPath()
	s.Ellipse(c.X, c.Y, rx, ry)
}

// RoundRect paths a rectangle with four rounded corners. The radius is
// clamped so opposite corners never overlap.
func RoundRect(s surface.Surface, r geom.Rect, radius float64) {
	radius = math.Min(radius, math.Min(r.W/2, r.H/2))
	right := r.Right()
	bottom := r.Bottom()
	s.NewPath()
	s.MoveTo(r.X+radius, r.Y)
	s.LineTo(right-radius, r.Y)
	s.Arc(right-radius, r.Y+radius, radius, -math.Pi/2, 0)
	s.LineTo(right, bottom-radius)
	s.Arc(right-radius, bottom-radius, radius, 0, math.Pi/2)
	s.LineTo(r.X+radius, bottom)
	s.Arc(r.X+radius, bottom-radius, radius, math.Pi/2, math.Pi)
	s.LineTo(r.X, r.Y+radius)
	s.Arc(r.X+radius, r.Y+radius, radius, math.Pi, math.Pi*3/2)
	s.ClosePath()
}

// RoundBottomRect paths a rectangle with square top corners and rounded
// bottom corners, the nucleic acid feature outline.
func RoundBottomRect(s surface.Surface, r geom.Rect, radius float64) {
	radius = math.Min(radius, math.Min(r.W/2, r.H/2))
	right := r.Right()
	bottom := r.Bottom()
	s.NewPath()
	s.MoveTo(r.X, r.Y)
	s.LineTo(right, r.Y)
	s.LineTo(right, bottom-radius)
	s.Arc(right-radius, bottom-radius, radius, 0, math.Pi/2)
	s.LineTo(r.X+radius, bottom)
	s.Arc(r.X+radius, bottom-radius, radius, math.Pi/2, math.Pi)
	s.ClosePath()
}

// CutCornerRect paths a rectangle with all four corners cut at 45 degrees,
// the complex outline.
func CutCornerRect(s surface.Surface, r geom.Rect, corner float64) {
	right := r.Right()
	bottom := r.Bottom()
	s.NewPath()
	s.MoveTo(r.X, r.Y+corner)
	s.LineTo(r.X+corner, r.Y)
	s.LineTo(right-corner, r.Y)
	s.LineTo(right, r.Y+corner)
	s.LineTo(right, bottom-corner)
	s.LineTo(right-corner, bottom)
	s.LineTo(r.X+corner, bottom)
	s.LineTo(r.X, bottom-corner)
	s.ClosePath()
}

// Hexagon paths the phenotype outline: points at mid-height left and right,
// flat top and bottom spanning the middle half of the width.
func Hexagon(s surface.Surface, r geom.Rect) {
	s.NewPath()
	s.MoveTo(r.X, r.Y+0.5*r.H)
	s.LineTo(r.X+0.25*r.W, r.Y)
	s.LineTo(r.X+0.75*r.W, r.Y)
	s.LineTo(r.Right(), r.Y+0.5*r.H)
	s.LineTo(r.X+0.75*r.W, r.Bottom())
	s.LineTo(r.X+0.25*r.W, r.Bottom())
	s.ClosePath()
}

// ConcaveHexagon paths the perturbing agent outline: a rectangle whose left
// and right edges fold inward to mid-height points.
func ConcaveHexagon(s surface.Surface, r geom.Rect) {
	s.NewPath()
	s.MoveTo(r.X, r.Y)
	s.LineTo(r.Right(), r.Y)
	s.LineTo(r.X+0.85*r.W, r.Y+0.5*r.H)
	s.LineTo(r.Right(), r.Bottom())
	s.LineTo(r.X, r.Bottom())
	s.LineTo(r.X+0.15*r.W, r.Y+0.5*r.H)
	s.ClosePath()
}

// Barrel paths the compartment outline: a rectangle with gently bulged top
// and bottom edges joined by quadratic curves.
func Barrel(s surface.Surface, r geom.Rect) {
	x := r.X
	y := r.Y
	w := r.W
	h := r.H
	topY := y + 0.03*h
	bottomY := y + 0.97*h

	s.NewPath()
	s.MoveTo(x, topY)
	s.LineTo(x, bottomY)
	s.QuadTo(x+0.06*w, y+h, x+0.25*w, y+h)
	s.LineTo(x+0.75*w, y+h)
	s.QuadTo(x+0.95*w, y+h, x+w, y+0.95*h)
	s.LineTo(x+w, y+0.05*h)
	s.QuadTo(x+w, y, x+0.75*w, y)
	s.LineTo(x+0.25*w, y)
	s.QuadTo(x+0.06*w, y, x, topY)
	s.ClosePath()
}

// Tag paths the tag outline: a rectangle whose left edge is replaced by an
// arrow notch pointing left.
func Tag(s surface.Surface, r geom.Rect, notch float64) {
	right := r.Right()
	bottom := r.Bottom()
	midY := (r.Y + bottom) / 2
	s.NewPath()
	s.MoveTo(r.X+notch, r.Y)
	s.LineTo(right, r.Y)
	s.LineTo(right, bottom)
	s.LineTo(r.X+notch, bottom)
	s.LineTo(r.X, midY)
	s.ClosePath()
}
