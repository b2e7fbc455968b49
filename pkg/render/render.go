// Package render turns a parsed diagram into draw calls on a surface.
//
// A render is three passes over the diagram: the glyph forest from the
// roots down, then auxiliary glyphs that carry their own absolute boxes,
// then the arcs with their terminal decorations. All geometry is mapped
// from data space to pixels up front through a single transform, so the
// same renderer drives both the raster and the SVG surface identically.
package render

import (
	"math"

	"github.com/sbgnviz/sbgnviz/pkg/geom"
	"github.com/sbgnviz/sbgnviz/pkg/render/shape"
	"github.com/sbgnviz/sbgnviz/pkg/render/style"
	"github.com/sbgnviz/sbgnviz/pkg/render/surface"
	"github.com/sbgnviz/sbgnviz/pkg/render/text"
	"github.com/sbgnviz/sbgnviz/pkg/sbgn"
)

// Renderer draws diagrams with fixed settings. It is stateless across
// renders and safe to reuse.
type Renderer struct {
	padding      float64
	scale        float64
	cloneMarkers bool
	measure      text.Measurer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPadding sets the margin around the diagram in data units.
func WithPadding(p float64) Option {
	return func(r *Renderer) { r.padding = p }
}

// WithScale sets the output resolution in pixels per data unit.
func WithScale(s float64) Option {
	return func(r *Renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithCloneMarkers toggles the clone marker bands on duplicated glyphs.
func WithCloneMarkers(on bool) Option {
	return func(r *Renderer) { r.cloneMarkers = on }
}

// WithMeasurer sets the text measurer used for label-dependent layout.
func WithMeasurer(m text.Measurer) Option {
	return func(r *Renderer) {
		if m != nil {
			r.measure = m
		}
	}
}

// New returns a Renderer with the given options applied over the defaults:
// ten units of padding, 1:1 scale, clone markers on, fixed-advance text
// metrics.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		padding:      style.DefaultPadding,
		scale:        1,
		cloneMarkers: true,
		measure:      text.Fixed{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Size returns the output canvas size in pixels for the given data bounds.
func (r *Renderer) Size(b geom.Bounds) (w, h float64) {
	_, w, h = geom.Fit(b, r.padding, r.scale)
	return w, h
}

// PixelSize returns Size rounded up to whole pixels.
func (r *Renderer) PixelSize(b geom.Bounds) (int, int) {
	w, h := r.Size(b)
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// Render draws the diagram onto dst. The surface must have been created
// with the dimensions reported by Size for the same bounds.
func (r *Renderer) Render(dst surface.Surface, d *sbgn.Diagram, b geom.Bounds) {
	t, w, h := geom.Fit(b, r.padding, r.scale)

	dst.SetColor(surface.White)
	shape.Rect(dst, geom.Rect{W: w, H: h})
	dst.Fill()
	dst.SetColor(style.Border)
	dst.SetLineWidth(style.DefaultLineWidth)

	for _, i := range d.Roots() {
		r.drawGlyph(dst, t, d, i)
	}

	// Auxiliary glyphs with their own boxes are positioned absolutely,
	// outside the parent recursion.
	for i := range d.Glyphs {
		g := &d.Glyphs[i]
		if g.ParentID == "" || !g.IsAuxiliary() || g.BBox == nil {
			continue
		}
		rect := t.MapRect(g.BBox.X, g.BBox.Y, g.BBox.W, g.BBox.H)
		font := style.FontSize(g.Class)
		clone := r.cloneMarkers && g.Clone
		switch g.Class {
		case sbgn.ClassUnitOfInformation:
			r.drawRoundRectNode(dst, rect, g.Label, font, clone)
		case sbgn.ClassStateVariable:
			r.drawStadiumNode(dst, rect, g.StateLabel(), font, clone)
		}
	}

	arrow := t.ScaleScalar(style.ArrowSize * style.ArrowScale)
	barLen := t.ScaleScalar(style.BarLength * style.ArrowScale)
	barOff := t.ScaleScalar(style.BarOffset * style.ArrowScale)
	for _, a := range d.Arcs {
		pts := make([]geom.Point, len(a.Points))
		for j, p := range a.Points {
			pts[j] = t.MapPoint(p.X, p.Y)
		}
		r.drawArc(dst, pts, a.Class, arrow, barLen, barOff)
	}
}

// drawShapeWithClone runs the shared fill/stroke/clone/label sequence for a
// glyph outline and resets the stroke width afterwards.
func (r *Renderer) drawShapeWithClone(
	dst surface.Surface,
	rect geom.Rect,
	label string,
	font float64,
	clone bool,
	lineWidth float64,
	fill *surface.Color,
	path shape.Fn,
) {
	dst.SetLineWidth(math.Max(lineWidth, 0.5))
	path(dst, rect)
	if fill != nil {
		dst.SetColor(*fill)
		dst.FillPreserve()
	}
	dst.SetColor(style.Border)
	dst.Stroke()
	if clone {
		r.drawCloneMarker(dst, rect, path)
		path(dst, rect)
		dst.SetColor(style.Border)
		dst.Stroke()
	}
	r.drawTextCentered(dst, rect.Center(), label, font)
	dst.SetLineWidth(style.DefaultLineWidth)
}

// drawCloneMarker fills the bottom band of the outline, clipped to it so
// the band follows curved borders.
func (r *Renderer) drawCloneMarker(dst surface.Surface, rect geom.Rect, path shape.Fn) {
	markerH := math.Max(rect.H*style.CloneHeightRatio, 1)

	dst.Save()
	path(dst, rect)
	dst.Clip()
	dst.NewPath()
	shape.Rect(dst, geom.Rect{
		X: rect.X,
		Y: rect.Bottom() - markerH,
		W: rect.W,
		H: markerH,
	})
	dst.SetColor(style.CloneFill)
	dst.FillPreserve()
	dst.SetColor(style.AuxLine)
	dst.SetLineWidth(math.Max(style.CloneStrokeWidth, 1))
	dst.Stroke()
	dst.Restore()

	dst.SetColor(style.Border)
	dst.SetLineWidth(style.DefaultLineWidth)
}

func (r *Renderer) drawTextCentered(dst surface.Surface, c geom.Point, label string, font float64) {
	if isBlank(label) {
		return
	}
	dst.Text(label, c.X, c.Y, font, style.Border)
}

// drawTextBottomCentered places the label inside the bottom edge of the
// rectangle, used by complexes and compartments so the label clears the
// member glyphs.
func (r *Renderer) drawTextBottomCentered(dst surface.Surface, rect geom.Rect, label string, font float64) {
	if isBlank(label) {
		return
	}
	h := r.measure.Height(font) * float64(lineCount(label))
	c := rect.Center()
	y := rect.Bottom() - h - 2
	dst.Text(label, c.X, y+h/2, font, style.Border)
}
