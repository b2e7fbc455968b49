package surface

import (
	"image"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/sbgnviz/sbgnviz/pkg/render/text"
)

// Raster draws into an in-memory RGBA image and encodes it as PNG.
type Raster struct {
	dc    *gg.Context
	fonts *text.Source
}

// NewRaster allocates a w x h pixel raster surface. fonts may be nil, in
// which case labels fall back to the context's built-in bitmap face.
func NewRaster(w, h int, fonts *text.Source) *Raster {
	dc := gg.NewContext(w, h)
	dc.SetLineCapSquare()
	return &Raster{dc: dc, fonts: fonts}
}

// Image returns the backing image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the rendered image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

func (r *Raster) SetColor(c Color)       { r.dc.SetRGB(c.R, c.G, c.B) }
func (r *Raster) SetLineWidth(w float64) { r.dc.SetLineWidth(w) }

func (r *Raster) NewPath()                    { r.dc.ClearPath() }
func (r *Raster) MoveTo(x, y float64)         { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64)         { r.dc.LineTo(x, y) }
func (r *Raster) QuadTo(cx, cy, x, y float64) { r.dc.QuadraticTo(cx, cy, x, y) }
func (r *Raster) Arc(cx, cy, rad, a0, a1 float64) {
	r.dc.DrawArc(cx, cy, rad, a0, a1)
}
func (r *Raster) Circle(cx, cy, rad float64) { r.dc.DrawCircle(cx, cy, rad) }
func (r *Raster) Ellipse(cx, cy, rx, ry float64) {
	r.dc.DrawEllipse(cx, cy, rx, ry)
}
func (r *Raster) ClosePath()                 { r.dc.ClosePath() }

func (r *Raster) Fill()           { r.dc.Fill() }
func (r *Raster) FillPreserve()   { r.dc.FillPreserve() }
func (r *Raster) Stroke()         { r.dc.Stroke() }
func (r *Raster) StrokePreserve() { r.dc.StrokePreserve() }
func (r *Raster) Clip()           { r.dc.Clip() }

func (r *Raster) Save() { r.dc.Push() }

// Restore pops the saved state and drops any clip installed since Save.
// Clips never nest here, so resetting is equivalent to restoring.
func (r *Raster) Restore() {
	r.dc.Pop()
	r.dc.ResetClip()
}

// Text draws s centered on (x, y). The halo is approximated by stamping the
// string in white at eight offsets around the fill position.
func (r *Raster) Text(s string, x, y, size float64, fill Color) {
	if r.fonts != nil {
		r.dc.SetFontFace(r.fonts.Face(size))
	}
	lines := strings.Split(s, "\n")
	advance := size * LineHeight
	top := y - advance*float64(len(lines)-1)/2
	for i, line := range lines {
		ly := top + advance*float64(i)
		r.dc.SetRGB(1, 1, 1)
		for k := 0; k < 8; k++ {
			a := float64(k) * math.Pi / 4
			r.dc.DrawStringAnchored(line, x+HaloWidth*math.Cos(a), ly+HaloWidth*math.Sin(a), 0.5, 0.5)
		}
		r.dc.SetRGB(fill.R, fill.G, fill.B)
		r.dc.DrawStringAnchored(line, x, ly, 0.5, 0.5)
	}
}
