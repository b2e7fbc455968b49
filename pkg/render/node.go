package render

import (
	"math"
	"strings"

	"github.com/sbgnviz/sbgnviz/pkg/geom"
	"github.com/sbgnviz/sbgnviz/pkg/render/shape"
	"github.com/sbgnviz/sbgnviz/pkg/render/style"
	"github.com/sbgnviz/sbgnviz/pkg/render/surface"
	"github.com/sbgnviz/sbgnviz/pkg/sbgn"
)

// drawGlyph renders one glyph and recurses into its structural children.
// Auxiliary children are consumed here as overlay labels instead.
func (r *Renderer) drawGlyph(dst surface.Surface, t geom.Transform, d *sbgn.Diagram, idx int) {
	g := &d.Glyphs[idx]
	if g.BBox == nil {
		return
	}

	class := g.Class
	base, multimer := style.SplitMultimer(class)
	label := g.Label
	if o, ok := style.LabelOverride(class); ok {
		label = o
	}
	if class == sbgn.ClassStateVariable && isBlank(label) {
		label = g.StateLabel()
	}
	font := style.FontSize(class)
	clone := r.cloneMarkers && g.Clone

	children := d.Children(idx)
	uinfo := r.overlayLabel(d, children, sbgn.ClassUnitOfInformation)
	svar := r.overlayLabel(d, children, sbgn.ClassStateVariable)

	placeLabelBottom := base == "complex" || class == "compartment"
	shapeLabel := label
	if placeLabelBottom {
		shapeLabel = ""
	}

	rect := t.MapRect(g.BBox.X, g.BBox.Y, g.BBox.W, g.BBox.H)

	switch class {
	case "phenotype", "outcome":
		r.drawShapeWithClone(dst, rect, shapeLabel, font, false,
			style.DefaultLineWidth, &style.Fill, shape.Hexagon)
	case "perturbing agent", "simple chemical", "simple chemical multimer":
		r.drawEntityPool(dst, rect, shapeLabel, font, base, multimer, clone, uinfo, nil)
	case "unspecified entity",
		"macromolecule", "macromolecule multimer",
		"nucleic acid feature", "nucleic acid feature multimer",
		"complex", "complex multimer":
		r.drawEntityPool(dst, rect, shapeLabel, font, base, multimer, clone, uinfo, svar)
	case "source and sink":
		r.drawSourceSink(dst, rect, clone)
	case "compartment":
		r.drawShapeWithClone(dst, rect, shapeLabel, font, clone, 4, &style.Fill, shape.Barrel)
	case "tag":
		r.drawShapeWithClone(dst, rect, shapeLabel, font, clone,
			style.DefaultLineWidth, &style.Fill,
			func(s surface.Surface, rc geom.Rect) {
				shape.Tag(s, rc, math.Max(rc.H*0.3, 2))
			})
	case "association":
		r.drawFilledEllipse(dst, rect, shapeLabel, font, style.AssociationFill)
	case "dissociation":
		r.drawDoubleCircle(dst, rect, shapeLabel, font)
	case "process", "omitted process", "uncertain process":
		r.drawProcessSquare(dst, t, g.BBox, shapeLabel, font)
	case sbgn.ClassUnitOfInformation:
		r.drawRoundRectNode(dst, rect, shapeLabel, font, false)
	case sbgn.ClassStateVariable:
		r.drawStadiumNode(dst, rect, shapeLabel, font, false)
	case "and", "or", "not":
		r.drawLogicalCircle(dst, t, g.BBox, shapeLabel, font)
	default:
		r.drawShapeWithClone(dst, rect, shapeLabel, font, false,
			style.DefaultLineWidth, &style.Fill, shape.Rect)
	}

	orientation := g.Orientation
	if orientation == "" {
		orientation, _ = style.DefaultOrientation(class)
	}
	if orientation != "" {
		r.drawOrientationTicks(dst, rect, orientation, t.ScaleScalar(style.ConnectorLength(class)))
	}

	if placeLabelBottom {
		r.drawTextBottomCentered(dst, rect, label, font)
	}

	for _, c := range children {
		if d.Glyphs[c].IsAuxiliary() {
			continue
		}
		r.drawGlyph(dst, t, d, c)
	}
}

// overlayLabel returns the label a child of the given class contributes as
// an overlay. Any child of that class with its own box renders in the
// absolute pass instead and suppresses the overlay entirely, regardless of
// where it sits among its siblings.
func (r *Renderer) overlayLabel(d *sbgn.Diagram, children []int, class string) *string {
	for _, c := range children {
		g := &d.Glyphs[c]
		if g.Class == class && g.BBox != nil {
			return nil
		}
	}
	for _, c := range children {
		g := &d.Glyphs[c]
		if g.Class != class {
			continue
		}
		label := g.Label
		if class == sbgn.ClassStateVariable {
			label = g.StateLabel()
		}
		if isBlank(label) {
			return nil
		}
		return &label
	}
	return nil
}

// drawEntityPool draws an entity pool node: the optional multimer ghost,
// the base outline, then the overlay lines and boxes scaled from the
// class's reference dimensions.
func (r *Renderer) drawEntityPool(
	dst surface.Surface,
	rect geom.Rect,
	label string,
	font float64,
	base string,
	multimer bool,
	clone bool,
	uinfo, svar *string,
) {
	refW, refH, ok := style.RefDims(base)
	if !ok {
		refW, refH = rect.W, rect.H
	}
	scaleX := rect.W / refW
	scaleY := rect.H / refH

	if multimer {
		if dx, dy, ok := style.GhostOffset(base); ok {
			ghost := geom.Rect{
				X: rect.X + dx*scaleX,
				Y: rect.Y + dy*scaleY,
				W: rect.W,
				H: rect.H,
			}
			r.drawShapeWithClone(dst, ghost, "", style.FontSmall, false,
				style.EntityBorderWidth(base), &style.Fill, entityOutline(base))
		}
	}

	r.drawShapeWithClone(dst, rect, label, font, clone,
		style.EntityBorderWidth(base), &style.Fill, entityOutline(base))

	r.drawOverlays(dst, rect, base, uinfo, svar)
}

// entityOutline returns the outline path builder for an entity pool class.
func entityOutline(base string) shape.Fn {
	switch base {
	case "simple chemical", "unspecified entity":
		return shape.Ellipse
	case "macromolecule":
		return func(s surface.Surface, rc geom.Rect) {
			shape.RoundRect(s, rc, math.Max(math.Min(rc.W, rc.H)*0.1, 1))
		}
	case "nucleic acid feature":
		return func(s surface.Surface, rc geom.Rect) {
			shape.RoundBottomRect(s, rc, math.Max(rc.H*0.3, 1))
		}
	case "complex":
		return func(s surface.Surface, rc geom.Rect) {
			shape.CutCornerRect(s, rc, math.Max(math.Min(rc.W, rc.H)*0.2, 1))
		}
	case "perturbing agent":
		return shape.ConcaveHexagon
	}
	return shape.Rect
}

// drawSourceSink draws the empty set: an ellipse struck through from
// bottom-left to top-right. No label is ever drawn.
func (r *Renderer) drawSourceSink(dst surface.Surface, rect geom.Rect, clone bool) {
	shape.Ellipse(dst, rect)
	dst.SetLineWidth(style.DefaultLineWidth)
	dst.SetColor(style.Fill)
	dst.FillPreserve()
	dst.SetColor(style.Border)
	dst.Stroke()
	if clone {
		r.drawCloneMarker(dst, rect, shape.Ellipse)
		shape.Ellipse(dst, rect)
		dst.SetColor(style.Border)
		dst.Stroke()
	}
	dst.NewPath()
	dst.MoveTo(rect.X, rect.Bottom())
	dst.LineTo(rect.Right(), rect.Y)
	dst.Stroke()
}

func (r *Renderer) drawFilledEllipse(dst surface.Surface, rect geom.Rect, label string, font float64, fill surface.Color) {
	shape.Ellipse(dst, rect)
	dst.SetLineWidth(style.DefaultLineWidth)
	dst.SetColor(fill)
	dst.FillPreserve()
	dst.SetColor(style.Border)
	dst.Stroke()
	r.drawTextCentered(dst, rect.Center(), label, font)
}

func (r *Renderer) drawDoubleCircle(dst surface.Surface, rect geom.Rect, label string, font float64) {
	c := rect.Center()
	radius := math.Max(math.Min(rect.W, rect.H)/2, 1)
	dst.NewPath()
	dst.SetLineWidth(style.DefaultLineWidth)
	dst.Circle(c.X, c.Y, radius)
	dst.SetColor(style.Fill)
	dst.FillPreserve()
	dst.SetColor(style.Border)
	dst.Stroke()
	dst.NewPath()
	dst.Circle(c.X, c.Y, math.Max(radius*0.6, 1))
	dst.SetColor(style.Border)
	dst.Stroke()
	r.drawTextCentered(dst, c, label, font)
}

// drawProcessSquare draws the process family glyph as a square centered in
// its box. The side is the box's smaller dimension in data units, mapped
// through the horizontal scale.
func (r *Renderer) drawProcessSquare(dst surface.Surface, t geom.Transform, box *sbgn.BBox, label string, font float64) {
	side := math.Min(box.W, box.H)
	c := t.MapPoint(box.X+box.W/2, box.Y+box.H/2)
	sidePx, _ := t.MapSize(side, side)
	rect := geom.Rect{
		X: c.X - sidePx/2,
		Y: c.Y - sidePx/2,
		W: sidePx,
		H: sidePx,
	}
	r.drawShapeWithClone(dst, rect, label, font, false,
		style.DefaultLineWidth, &style.Fill, shape.Rect)
}

func (r *Renderer) drawLogicalCircle(dst surface.Surface, t geom.Transform, box *sbgn.BBox, label string, font float64) {
	c := t.MapPoint(box.X+box.W/2, box.Y+box.H/2)
	radius := t.ScaleScalar(math.Min(box.W, box.H) / 2)
	dst.Circle(c.X, c.Y, radius)
	dst.SetColor(style.Fill)
	dst.FillPreserve()
	dst.SetColor(style.Border)
	dst.Stroke()
	r.drawTextCentered(dst, c, label, font)
}

func (r *Renderer) drawRoundRectNode(dst surface.Surface, rect geom.Rect, label string, font float64, clone bool) {
	r.drawShapeWithClone(dst, rect, label, font, clone,
		style.DefaultLineWidth, &style.Fill,
		func(s surface.Surface, rc geom.Rect) {
			shape.RoundRect(s, rc, math.Max(math.Min(rc.W, rc.H)*0.1, 1))
		})
}

func (r *Renderer) drawStadiumNode(dst surface.Surface, rect geom.Rect, label string, font float64, clone bool) {
	r.drawShapeWithClone(dst, rect, label, font, clone,
		style.DefaultLineWidth, &style.Fill,
		func(s surface.Surface, rc geom.Rect) {
			shape.RoundRect(s, rc, 0.24*math.Max(rc.W, rc.H))
		})
}

// drawOrientationTicks draws the short port connector stubs on the sides a
// glyph's orientation names. Tick lengths are fixed pixel values.
func (r *Renderer) drawOrientationTicks(dst surface.Surface, rect geom.Rect, orientation string, length float64) {
	dst.SetColor(style.Border)
	dst.SetLineWidth(style.DefaultLineWidth)
	c := rect.Center()
	switch orientation {
	case "vertical":
		dst.NewPath()
		dst.MoveTo(c.X, rect.Y-length)
		dst.LineTo(c.X, rect.Y)
		dst.MoveTo(c.X, rect.Bottom())
		dst.LineTo(c.X, rect.Bottom()+length)
		dst.Stroke()
	case "horizontal":
		dst.NewPath()
		dst.MoveTo(rect.X-length, c.Y)
		dst.LineTo(rect.X, c.Y)
		dst.MoveTo(rect.Right(), c.Y)
		dst.LineTo(rect.Right()+length, c.Y)
		dst.Stroke()
	case "left":
		dst.NewPath()
		dst.MoveTo(rect.X-length, c.Y)
		dst.LineTo(rect.X, c.Y)
		dst.Stroke()
	case "right":
		dst.NewPath()
		dst.MoveTo(rect.Right(), c.Y)
		dst.LineTo(rect.Right()+length, c.Y)
		dst.Stroke()
	case "up":
		dst.NewPath()
		dst.MoveTo(c.X, rect.Y-length)
		dst.LineTo(c.X, rect.Y)
		dst.Stroke()
	case "down":
		dst.NewPath()
		dst.MoveTo(c.X, rect.Bottom())
		dst.LineTo(c.X, rect.Bottom()+length)
		dst.Stroke()
	}
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func lineCount(s string) int { return strings.Count(s, "\n") + 1 }
