package surface

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// SVG builds an SVG document from the same draw calls the raster surface
// receives. Paths are emitted as absolute path data; circular arcs are
// flattened to cubic Bezier segments so both backends rasterize the same
// geometry.
type SVG struct {
	width, height float64

	color     Color
	lineWidth float64

	path  strings.Builder
	curX  float64
	curY  float64
	hasPt bool

	defs    bytes.Buffer
	body    bytes.Buffer
	clipSeq int

	stack  []svgState
	groups int // clip groups opened outside any Save frame
}

type svgState struct {
	color     Color
	lineWidth float64
	groups    int
}

// NewSVG creates an SVG surface with the given pixel dimensions.
func NewSVG(w, h float64) *SVG {
	return &SVG{width: w, height: h, lineWidth: 1}
}

func (s *SVG) SetColor(c Color)       { s.color = c }
func (s *SVG) SetLineWidth(w float64) { s.lineWidth = w }

func (s *SVG) NewPath() {
	s.path.Reset()
	s.hasPt = false
}

func (s *SVG) MoveTo(x, y float64) {
	fmt.Fprintf(&s.path, "M%s %s", num(x), num(y))
	s.curX, s.curY, s.hasPt = x, y, true
}

func (s *SVG) LineTo(x, y float64) {
	if !s.hasPt {
		s.MoveTo(x, y)
		return
	}
	fmt.Fprintf(&s.path, "L%s %s", num(x), num(y))
	s.curX, s.curY = x, y
}

func (s *SVG) QuadTo(cx, cy, x, y float64) {
	if !s.hasPt {
		s.MoveTo(cx, cy)
	}
	fmt.Fprintf(&s.path, "Q%s %s %s %s", num(cx), num(cy), num(x), num(y))
	s.curX, s.curY = x, y
}

// Arc appends a circular arc, joined to the current point with a line when
// one exists. The arc is split into segments no wider than a quarter turn
// and each segment approximated by one cubic.
func (s *SVG) Arc(cx, cy, r, a0, a1 float64) {
	sx := cx + r*math.Cos(a0)
	sy := cy + r*math.Sin(a0)
	if s.hasPt {
		s.LineTo(sx, sy)
	} else {
		s.MoveTo(sx, sy)
	}
	n := int(math.Ceil(math.Abs(a1-a0) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := (a1 - a0) / float64(n)
	for i := 0; i < n; i++ {
		b0 := a0 + step*float64(i)
		b1 := b0 + step
		k := 4.0 / 3.0 * math.Tan((b1-b0)/4)
		c1x := cx + r*(math.Cos(b0)-k*math.Sin(b0))
		c1y := cy + r*(math.Sin(b0)+k*math.Cos(b0))
		c2x := cx + r*(math.Cos(b1)+k*math.Sin(b1))
		c2y := cy + r*(math.Sin(b1)-k*math.Cos(b1))
		ex := cx + r*math.Cos(b1)
		ey := cy + r*math.Sin(b1)
		fmt.Fprintf(&s.path, "C%s %s %s %s %s %s",
			num(c1x), num(c1y), num(c2x), num(c2y), num(ex), num(ey))
		s.curX, s.curY = ex, ey
	}
}

// Circle opens a fresh subpath so the circle never joins an earlier point.
func (s *SVG) Circle(cx, cy, r float64) {
	s.Ellipse(cx, cy, r, r)
}

func (s *SVG) Ellipse(cx, cy, rx, ry float64) {
	s.hasPt = false
	sx := cx + rx
	sy := cy
	s.MoveTo(sx, sy)
	n := 4
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		b0 := step * float64(i)
		b1 := b0 + step
		k := 4.0 / 3.0 * math.Tan((b1-b0)/4)
		c1x := cx + rx*(math.Cos(b0)-k*math.Sin(b0))
		c1y := cy + ry*(math.Sin(b0)+k*math.Cos(b0))
		c2x := cx + rx*(math.Cos(b1)+k*math.Sin(b1))
		c2y := cy + ry*(math.Sin(b1)-k*math.Cos(b1))
		ex := cx + rx*math.Cos(b1)
		ey := cy + ry*math.Sin(b1)
		fmt.Fprintf(&s.path, "C%s %s %s %s %s %s",
			num(c1x), num(c1y), num(c2x), num(c2y), num(ex), num(ey))
		s.curX, s.curY = ex, ey
	}
	s.ClosePath()
}

func (s *SVG) ClosePath() {
	if s.hasPt {
		s.path.WriteString("Z")
	}
}

func (s *SVG) Fill() {
	s.emitPath(s.color.Hex(), "none", 0)
	s.NewPath()
}

func (s *SVG) FillPreserve() {
	s.emitPath(s.color.Hex(), "none", 0)
}

func (s *SVG) Stroke() {
	s.emitPath("none", s.color.Hex(), s.lineWidth)
	s.NewPath()
}

func (s *SVG) StrokePreserve() {
	s.emitPath("none", s.color.Hex(), s.lineWidth)
}

func (s *SVG) emitPath(fill, stroke string, width float64) {
	if s.path.Len() == 0 {
		return
	}
	fmt.Fprintf(&s.body, `<path d="%s" fill="%s" stroke="%s"`, s.path.String(), fill, stroke)
	if stroke != "none" {
		fmt.Fprintf(&s.body, ` stroke-width="%s" stroke-linecap="square"`, num(width))
	}
	s.body.WriteString("/>\n")
}

func (s *SVG) Clip() {
	if s.path.Len() == 0 {
		return
	}
	id := fmt.Sprintf("clip%d", s.clipSeq)
	s.clipSeq++
	fmt.Fprintf(&s.defs, `<clipPath id="%s"><path d="%s"/></clipPath>`+"\n", id, s.path.String())
	fmt.Fprintf(&s.body, `<g clip-path="url(#%s)">`+"\n", id)
	if len(s.stack) > 0 {
		s.stack[len(s.stack)-1].groups++
	} else {
		s.groups++
	}
	s.NewPath()
}

func (s *SVG) Save() {
	s.stack = append(s.stack, svgState{color: s.color, lineWidth: s.lineWidth})
}

func (s *SVG) Restore() {
	if len(s.stack) == 0 {
		return
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	for i := 0; i < top.groups; i++ {
		s.body.WriteString("</g>\n")
	}
	s.color = top.color
	s.lineWidth = top.lineWidth
}

func (s *SVG) Text(str string, x, y, size float64, fill Color) {
	lines := strings.Split(str, "\n")
	advance := size * LineHeight
	top := y - advance*float64(len(lines)-1)/2
	for i, line := range lines {
		ly := top + advance*float64(i)
		fmt.Fprintf(&s.body,
			`<text x="%s" y="%s" font-family="Helvetica, Arial, sans-serif" font-size="%s"`+
				` text-anchor="middle" dominant-baseline="central" paint-order="stroke"`+
				` stroke="#ffffff" stroke-width="%s" stroke-linejoin="round" fill="%s">`,
			num(x), num(ly), num(size), num(HaloWidth), fill.Hex())
		xml.EscapeText(&s.body, []byte(line))
		s.body.WriteString("</text>\n")
	}
}

// WriteTo emits the complete document. Groups left open by unbalanced
// Save/Clip calls are closed so the output always parses.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var out bytes.Buffer
	fmt.Fprintf(&out, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(&out,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(s.width), num(s.height), num(s.width), num(s.height))
	if s.defs.Len() > 0 {
		out.WriteString("<defs>\n")
		out.Write(s.defs.Bytes())
		out.WriteString("</defs>\n")
	}
	out.Write(s.body.Bytes())
	open := s.groups
	for _, st := range s.stack {
		open += st.groups
	}
	for i := 0; i < open; i++ {
		out.WriteString("</g>\n")
	}
	out.WriteString("</svg>\n")
	return out.WriteTo(w)
}

// num formats a coordinate with up to three decimals and no trailing zeros.
func num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
