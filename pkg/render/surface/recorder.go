package surface

import "fmt"

// Op is one recorded surface call.
type Op struct {
	Name string
	Args []float64
	Str  string
}

// String renders the op in a compact form convenient for test diffs.
func (o Op) String() string {
	s := o.Name
	for _, a := range o.Args {
		s += fmt.Sprintf(" %.3f", a)
	}
	if o.Str != "" {
		s += " " + o.Str
	}
	return s
}

// Recorder captures every surface call without drawing anything. Tests use
// it to assert on the exact sequence of operations a renderer emits.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) record(name string, str string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args, Str: str})
}

// Count returns how many recorded ops have the given name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Find returns the index of the first op with the given name starting at
// from, or -1.
func (r *Recorder) Find(name string, from int) int {
	for i := from; i < len(r.Ops); i++ {
		if r.Ops[i].Name == name {
			return i
		}
	}
	return -1
}

func (r *Recorder) SetColor(c Color)       { r.record("SetColor", "", c.R, c.G, c.B) }
func (r *Recorder) SetLineWidth(w float64) { r.record("SetLineWidth", "", w) }

func (r *Recorder) NewPath()                    { r.record("NewPath", "") }
func (r *Recorder) MoveTo(x, y float64)         { r.record("MoveTo", "", x, y) }
func (r *Recorder) LineTo(x, y float64)         { r.record("LineTo", "", x, y) }
func (r *Recorder) QuadTo(cx, cy, x, y float64) { r.record("QuadTo", "", cx, cy, x, y) }
func (r *Recorder) Arc(cx, cy, rad, a0, a1 float64) {
	r.record("Arc", "", cx, cy, rad, a0, a1)
}
func (r *Recorder) Circle(cx, cy, rad float64) { r.record("Circle", "", cx, cy, rad) }
func (r *Recorder) Ellipse(cx, cy, rx, ry float64) {
	r.record("Ellipse", "", cx, cy, rx, ry)
}
func (r *Recorder) ClosePath()                 { r.record("ClosePath", "") }

func (r *Recorder) Fill()           { r.record("Fill", "") }
func (r *Recorder) FillPreserve()   { r.record("FillPreserve", "") }
func (r *Recorder) Stroke()         { r.record("Stroke", "") }
func (r *Recorder) StrokePreserve() { r.record("StrokePreserve", "") }
func (r *Recorder) Clip()           { r.record("Clip", "") }

func (r *Recorder) Save()    { r.record("Save", "") }
func (r *Recorder) Restore() { r.record("Restore", "") }

func (r *Recorder) Text(s string, x, y, size float64, fill Color) {
	r.record("Text", s, x, y, size, fill.R, fill.G, fill.B)
}
