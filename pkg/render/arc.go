package render

import (
	"math"

	"github.com/sbgnviz/sbgnviz/pkg/geom"
	"github.com/sbgnviz/sbgnviz/pkg/render/style"
	"github.com/sbgnviz/sbgnviz/pkg/render/surface"
)

// drawArc strokes the connector polyline and then the terminal decoration
// the arc class calls for. Points are already in pixel space.
func (r *Renderer) drawArc(dst surface.Surface, points []geom.Point, class string, arrowSize, barLength, barOffset float64) {
	if len(points) < 2 {
		return
	}

	dst.SetColor(style.Border)
	dst.SetLineWidth(style.DefaultLineWidth)
	for i := 0; i+1 < len(points); i++ {
		dst.NewPath()
		dst.MoveTo(points[i].X, points[i].Y)
		dst.LineTo(points[i+1].X, points[i+1].Y)
		dst.Stroke()
	}

	end := points[len(points)-1]
	prev := points[len(points)-2]

	switch class {
	case "assignment", "unknown influence":
		r.drawOpenTriangle(dst, end, prev, arrowSize)
	case "positive influence", "stimulation":
		r.drawOpaqueTriangle(dst, end, prev, arrowSize)
	case "production":
		r.drawFilledTriangle(dst, end, prev, arrowSize)
	case "negative influence", "inhibition":
		r.drawBar(dst, end, prev, barLength, 0)
	case "absolute inhibition":
		r.drawBar(dst, end, prev, barLength, 0)
		r.drawBar(dst, end, prev, barLength, barOffset)
	case "necessary stimulation":
		r.drawBar(dst, end, prev, barLength, barOffset)
		r.drawOpaqueTriangle(dst, end, prev, arrowSize)
	case "catalysis":
		r.drawCatalysisCircle(dst, end, prev, arrowSize*0.4)
	case "equivalence arc":
		r.drawOpenCircle(dst, end, arrowSize*0.4)
	}
}

// trianglePoints computes the two base corners of an arrowhead whose tip
// sits on end, pointing along the final segment. A zero-length segment has
// no direction, so no arrowhead is drawn.
func trianglePoints(end, prev geom.Point, size float64) (p1, p2 geom.Point, ok bool) {
	dx := end.X - prev.X
	dy := end.Y - prev.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return geom.Point{}, geom.Point{}, false
	}
	ux := dx / length
	uy := dy / length
	baseX := end.X - ux*size
	baseY := end.Y - uy*size
	perpX := -uy
	perpY := ux
	halfWidth := size * 0.6
	p1 = geom.Point{X: baseX + perpX*halfWidth, Y: baseY + perpY*halfWidth}
	p2 = geom.Point{X: baseX - perpX*halfWidth, Y: baseY - perpY*halfWidth}
	return p1, p2, true
}

func (r *Renderer) drawOpenTriangle(dst surface.Surface, end, prev geom.Point, size float64) {
	p1, p2, ok := trianglePoints(end, prev, size)
	if !ok {
		return
	}
	dst.NewPath()
	dst.MoveTo(p1.X, p1.Y)
	dst.LineTo(p2.X, p2.Y)
	dst.LineTo(end.X, end.Y)
	dst.ClosePath()
	dst.Stroke()
}

func (r *Renderer) drawOpaqueTriangle(dst surface.Surface, end, prev geom.Point, size float64) {
	p1, p2, ok := trianglePoints(end, prev, size)
	if !ok {
		return
	}
	dst.NewPath()
	dst.MoveTo(p1.X, p1.Y)
	dst.LineTo(p2.X, p2.Y)
	dst.LineTo(end.X, end.Y)
	dst.ClosePath()
	dst.SetColor(surface.White)
	dst.FillPreserve()
	dst.SetColor(style.Border)
	dst.Stroke()
}

func (r *Renderer) drawFilledTriangle(dst surface.Surface, end, prev geom.Point, size float64) {
	p1, p2, ok := trianglePoints(end, prev, size)
	if !ok {
		return
	}
	dst.NewPath()
	dst.MoveTo(p1.X, p1.Y)
	dst.LineTo(p2.X, p2.Y)
	dst.LineTo(end.X, end.Y)
	dst.ClosePath()
	dst.Fill()
}

// drawBar strokes a perpendicular bar centered on the arc line, offset back
// from the endpoint along the final segment.
func (r *Renderer) drawBar(dst surface.Surface, end, prev geom.Point, length, offset float64) {
	dx := end.X - prev.X
	dy := end.Y - prev.Y
	segLen := math.Hypot(dx, dy)
	if segLen == 0 {
		return
	}
	ux := dx / segLen
	uy := dy / segLen
	cx := end.X - ux*offset
	cy := end.Y - uy*offset
	perpX := -uy
	perpY := ux
	half := length / 2
	dst.NewPath()
	dst.MoveTo(cx-perpX*half, cy-perpY*half)
	dst.LineTo(cx+perpX*half, cy+perpY*half)
	dst.Stroke()
}

// drawCatalysisCircle draws the catalysis circle pulled back along the
// final segment so it overlaps the endpoint by the configured ratio.
func (r *Renderer) drawCatalysisCircle(dst surface.Surface, end, prev geom.Point, radius float64) {
	dx := end.X - prev.X
	dy := end.Y - prev.Y
	length := math.Hypot(dx, dy)
	center := end
	if length > 0 {
		overlap := math.Max(radius*style.CatalysisOverlap, 0)
		offset := math.Max(radius-overlap, 0)
		center = geom.Point{
			X: end.X - dx/length*offset,
			Y: end.Y - dy/length*offset,
		}
	}
	dst.NewPath()
	dst.Circle(center.X, center.Y, math.Max(radius, 1))
	dst.SetColor(surface.White)
	dst.FillPreserve()
	dst.SetColor(style.Border)
	dst.Stroke()
}

func (r *Renderer) drawOpenCircle(dst surface.Surface, center geom.Point, radius float64) {
	dst.NewPath()
	dst.Circle(center.X, center.Y, math.Max(radius, 1))
	dst.Stroke()
}
