// Package sbgn holds the parsed representation of an SBGN-ML diagram.
//
// A diagram is a forest of glyphs (nodes with absolute bounding boxes) plus a
// flat list of arcs (connectors with explicit point sequences). Glyphs and
// arcs are immutable once parsed: the renderer only reads them.
//
// Glyphs live in a flat arena addressed by index. The parent/child relation
// is kept as a side table from parent index to ordered child indices, so the
// recursive render pass never holds references into a collection it is also
// traversing.
package sbgn

import (
	"errors"
	"math"
	"strings"

	"github.com/sbgnviz/sbgnviz/pkg/geom"
)

// Well-known glyph class names referenced outside the style tables.
const (
	ClassUnitOfInformation = "unit of information"
	ClassStateVariable     = "state variable"
)

// BBox is an absolute axis-aligned box in data-space units. Coordinates are
// never relative to a parent glyph.
type BBox struct {
	X, Y, W, H float64
}

// Port is a named connection anchor on a glyph. Arcs may reference a port
// ID instead of the owning glyph's ID.
type Port struct {
	ID string
	geom.Point
}

// Glyph is one diagram node. All fields are set at parse time.
type Glyph struct {
	ID          string
	ParentID    string // empty for root glyphs
	Class       string
	BBox        *BBox // nil for purely logical glyphs
	Label       string
	Ports       []Port
	Clone       bool
	StateValue  string
	StateVar    string
	Orientation string // horizontal, vertical, left, right, up, down, or empty
}

// IsAuxiliary reports whether the glyph is an overlay annotation (unit of
// information or state variable) rather than an independent node.
func (g *Glyph) IsAuxiliary() bool {
	return g.Class == ClassUnitOfInformation || g.Class == ClassStateVariable
}

// StateLabel returns the glyph's label, synthesizing "value@variable" for
// state variables whose label is blank.
func (g *Glyph) StateLabel() string {
	if strings.TrimSpace(g.Label) != "" {
		return g.Label
	}
	return SynthesizeStateLabel(g.StateValue, g.StateVar)
}

// SynthesizeStateLabel builds a state-variable label from its value and
// variable parts: "value@variable" when both are present, otherwise
// whichever is non-empty.
func SynthesizeStateLabel(value, variable string) string {
	switch {
	case value != "" && variable != "":
		return value + "@" + variable
	case value != "":
		return value
	case variable != "":
		return variable
	default:
		return ""
	}
}

// Arc is a connector rendered as a polyline plus one terminal decoration.
// Points always holds at least two entries: start, waypoints, end. Source
// and Target reference glyph or port IDs and carry the logical
// connectivity; drawing uses only the points.
type Arc struct {
	Class  string
	Source string
	Target string
	Points []geom.Point
}

// Diagram is the parsed tree: a glyph arena, the parent/child side table,
// and the arc list.
type Diagram struct {
	Glyphs []Glyph
	Arcs   []Arc

	roots    []int
	children map[int][]int
	byRef    map[string]int
}

// NewDiagram builds the arena index structures for a set of glyphs and arcs.
// Glyphs referencing an unknown parent are treated as roots.
func NewDiagram(glyphs []Glyph, arcs []Arc) *Diagram {
	d := &Diagram{
		Glyphs:   glyphs,
		Arcs:     arcs,
		children: make(map[int][]int),
		byRef:    make(map[string]int, len(glyphs)),
	}
	for i := range glyphs {
		d.byRef[glyphs[i].ID] = i
	}
	// Port IDs resolve to the owning glyph; glyph IDs take precedence on
	// collision.
	for i := range glyphs {
		for _, p := range glyphs[i].Ports {
			if p.ID == "" {
				continue
			}
			if _, taken := d.byRef[p.ID]; !taken {
				d.byRef[p.ID] = i
			}
		}
	}
	for i := range glyphs {
		pid := glyphs[i].ParentID
		if pid == "" {
			d.roots = append(d.roots, i)
			continue
		}
		if p, ok := d.byRef[pid]; ok {
			d.children[p] = append(d.children[p], i)
		} else {
			d.roots = append(d.roots, i)
		}
	}
	return d
}

// Resolve maps a glyph or port ID to the index of the glyph it belongs to.
func (d *Diagram) Resolve(ref string) (int, bool) {
	i, ok := d.byRef[ref]
	return i, ok
}

// Roots returns the indices of top-level glyphs in document order.
func (d *Diagram) Roots() []int { return d.roots }

// Children returns the indices of structural children of glyph i in
// document order.
func (d *Diagram) Children(i int) []int { return d.children[i] }

// ErrNoCoordinates is returned when a diagram has no bounding boxes or port
// points at all, leaving nothing to fit a transform to.
var ErrNoCoordinates = errors.New("sbgn: no coordinates in diagram")

// ComputeBounds returns the data-space extent of every glyph box and port
// point. Arc points do not contribute, matching the reference renderer.
func (d *Diagram) ComputeBounds() (geom.Bounds, error) {
	b := geom.Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	seen := false
	add := func(x, y float64) {
		seen = true
		b.MinX = math.Min(b.MinX, x)
		b.MaxX = math.Max(b.MaxX, x)
		b.MinY = math.Min(b.MinY, y)
		b.MaxY = math.Max(b.MaxY, y)
	}
	for i := range d.Glyphs {
		g := &d.Glyphs[i]
		if g.BBox != nil {
			add(g.BBox.X, g.BBox.Y)
			add(g.BBox.X+g.BBox.W, g.BBox.Y+g.BBox.H)
		}
		for _, p := range g.Ports {
			add(p.X, p.Y)
		}
	}
	if !seen {
		return geom.Bounds{}, ErrNoCoordinates
	}
	return b, nil
}
