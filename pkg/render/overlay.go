package render

import (
	"math"

	"github.com/sbgnviz/sbgnviz/pkg/geom"
	"github.com/sbgnviz/sbgnviz/pkg/render/shape"
	"github.com/sbgnviz/sbgnviz/pkg/render/style"
	"github.com/sbgnviz/sbgnviz/pkg/render/surface"
)

// drawOverlays draws the separator lines and the unit-of-information and
// state-variable boxes riding on an entity pool node. The stylesheet
// positions these in the class's reference space, so every coordinate is
// scaled by the node's actual box over its reference dimensions.
func (r *Renderer) drawOverlays(dst surface.Surface, rect geom.Rect, base string, uinfo, svar *string) {
	refW, refH, ok := style.RefDims(base)
	if !ok {
		refW, refH = rect.W, rect.H
	}
	scaleX := rect.W / refW
	scaleY := rect.H / refH
	scale := (scaleX + scaleY) / 2

	boxH := 20*scaleY - 3*scaleY
	borderW := 2 * scale
	font := 10 * scale

	lineY := func(v float64) float64 { return rect.Y + v*scaleY }
	boxX := func(v float64) float64 { return rect.X + v*scaleX }

	switch base {
	case "simple chemical":
		if uinfo != nil {
			r.drawOverlayLine(dst, rect, lineY(8), 1*scale, style.AuxLine)
			r.drawOverlayLine(dst, rect, lineY(52), 1*scale, style.AuxLine)
			r.drawUnitInfoBox(dst, boxX(12), lineY(0), boxH, *uinfo, borderW, font, 5*scale)
		}
	case "unspecified entity", "macromolecule":
		if uinfo != nil || svar != nil {
			r.drawOverlayLine(dst, rect, lineY(8), 1*scale, style.AuxLine)
		}
		if uinfo != nil {
			r.drawOverlayLine(dst, rect, lineY(52), 1*scale, style.AuxLine)
			r.drawUnitInfoBox(dst, boxX(20), lineY(44), boxH, *uinfo, borderW, font, 5*scale)
		}
		if svar != nil {
			r.drawStateVarBox(dst, boxX(40), rect.Y, boxH, *svar, borderW, font, 10*scale, 30*scale)
		}
	case "nucleic acid feature":
		// Only a state variable pulls in the top separator here; the
		// bottom one still follows the unit of information.
		if svar != nil {
			r.drawOverlayLine(dst, rect, lineY(8), 1*scale, style.AuxLine)
		}
		if uinfo != nil {
			r.drawOverlayLine(dst, rect, lineY(52), 1*scale, style.AuxLine)
			r.drawUnitInfoBox(dst, boxX(20), lineY(44), boxH, *uinfo, borderW, font, 5*scale)
		}
		if svar != nil {
			r.drawStateVarBox(dst, boxX(40), rect.Y, boxH, *svar, borderW, font, 10*scale, 30*scale)
		}
	case "complex":
		complexH := 24*scaleY - 3*scaleY
		if uinfo != nil || svar != nil {
			r.drawOverlayLine(dst, rect, lineY(11), 6*scale, style.Border)
		}
		if uinfo != nil {
			r.drawUnitInfoBox(dst, rect.X+rect.W*0.25, rect.Y, complexH, *uinfo, borderW, font, 5*scale)
		}
		if svar != nil {
			r.drawStateVarBox(dst, rect.X+rect.W*0.88, rect.Y, complexH, *svar, borderW, font, 10*scale, 30*scale)
		}
	case "perturbing agent":
		if uinfo != nil {
			r.drawOverlayLine(dst, rect, lineY(8), 1*scale, style.AuxLine)
			r.drawOverlayLine(dst, rect, lineY(56), 1*scale, style.AuxLine)
			r.drawUnitInfoBox(dst, boxX(20), rect.Y, boxH, *uinfo, borderW, font, 5*scale)
		}
	}
}

// drawOverlayLine strokes a horizontal separator across the node.
func (r *Renderer) drawOverlayLine(dst surface.Surface, rect geom.Rect, y, width float64, color surface.Color) {
	dst.SetLineWidth(math.Max(width, 1))
	dst.SetColor(color)
	dst.NewPath()
	dst.MoveTo(rect.X, y)
	dst.LineTo(rect.Right(), y)
	dst.Stroke()
	dst.SetColor(style.Border)
	dst.SetLineWidth(style.DefaultLineWidth)
}

// drawUnitInfoBox draws a white rounded box sized to the label width.
func (r *Renderer) drawUnitInfoBox(dst surface.Surface, x, y, h float64, label string, borderW, font, padding float64) {
	width := math.Max(r.measure.Width(label, font)+padding, 10)
	rect := geom.Rect{X: x, Y: y, W: width, H: h}
	dst.SetLineWidth(math.Max(borderW, 1))
	shape.RoundRect(dst, rect, rect.W*0.04)
	dst.SetColor(surface.White)
	dst.FillPreserve()
	dst.SetColor(style.Border)
	dst.Stroke()
	r.drawTextCentered(dst, rect.Center(), label, font)
	dst.SetLineWidth(style.DefaultLineWidth)
}

// drawStateVarBox draws a white stadium sized to the label width, no
// narrower than minWidth.
func (r *Renderer) drawStateVarBox(dst surface.Surface, x, y, h float64, label string, borderW, font, padding, minWidth float64) {
	width := math.Max(r.measure.Width(label, font)+padding, minWidth)
	rect := geom.Rect{X: x, Y: y, W: width, H: h}
	dst.SetLineWidth(math.Max(borderW, 1))
	shape.RoundRect(dst, rect, 0.24*math.Max(rect.W, rect.H))
	dst.SetColor(surface.White)
	dst.FillPreserve()
	dst.SetColor(style.Border)
	dst.Stroke()
	r.drawTextCentered(dst, rect.Center(), label, font)
	dst.SetLineWidth(style.DefaultLineWidth)
}
