package sbgn

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/sbgnviz/sbgnviz/pkg/geom"
)

// xmlSBGN mirrors the SBGN-ML document structure. Arcs may appear either
// under <map> or nested deeper depending on the producing tool, so the map
// collects both its own arcs and those of nested submaps.
type xmlSBGN struct {
	XMLName xml.Name `xml:"sbgn"`
	Maps    []xmlMap `xml:"map"`
}

type xmlMap struct {
	Glyphs []xmlGlyph `xml:"glyph"`
	Arcs   []xmlArc   `xml:"arc"`
}

type xmlGlyph struct {
	ID          string     `xml:"id,attr"`
	Class       string     `xml:"class,attr"`
	Orientation string     `xml:"orientation,attr"`
	Label       *xmlLabel  `xml:"label"`
	State       *xmlState  `xml:"state"`
	Clone       *xmlClone  `xml:"clone"`
	BBox        *xmlBBox   `xml:"bbox"`
	Ports       []xmlPort  `xml:"port"`
	Glyphs      []xmlGlyph `xml:"glyph"`
}

type xmlPort struct {
	ID string  `xml:"id,attr"`
	X  float64 `xml:"x,attr"`
	Y  float64 `xml:"y,attr"`
}

type xmlLabel struct {
	Text string `xml:"text,attr"`
}

type xmlState struct {
	Value    string `xml:"value,attr"`
	Variable string `xml:"variable,attr"`
}

type xmlClone struct{}

type xmlBBox struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
	W float64 `xml:"w,attr"`
	H float64 `xml:"h,attr"`
}

type xmlPoint struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
}

type xmlArc struct {
	Class  string     `xml:"class,attr"`
	Source string     `xml:"source,attr"`
	Target string     `xml:"target,attr"`
	Start  *xmlPoint  `xml:"start"`
	Next   []xmlPoint `xml:"next"`
	End    *xmlPoint  `xml:"end"`
	Arcs   []xmlArc   `xml:"arc"` // arc groups nest in some dialects
}

// Parse reads an SBGN-ML document and returns the diagram with its computed
// data-space bounds. Structural problems (no <map>, an arc without a start
// or end point, no coordinates anywhere) are fatal; there is no partial
// parse.
func Parse(r io.Reader) (*Diagram, geom.Bounds, error) {
	var doc xmlSBGN
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, geom.Bounds{}, fmt.Errorf("sbgn: parse xml: %w", err)
	}
	if len(doc.Maps) == 0 {
		return nil, geom.Bounds{}, fmt.Errorf("sbgn: document has no map element")
	}

	var glyphs []Glyph
	var arcs []Arc
	for _, m := range doc.Maps {
		for _, xg := range m.Glyphs {
			collectGlyphs(xg, "", &glyphs)
		}
		if err := collectArcs(m.Arcs, &arcs); err != nil {
			return nil, geom.Bounds{}, err
		}
	}

	d := NewDiagram(glyphs, arcs)
	bounds, err := d.ComputeBounds()
	if err != nil {
		// The diagram is still returned with ErrNoCoordinates so that
		// callers needing only connectivity can proceed.
		return d, geom.Bounds{}, err
	}
	return d, bounds, nil
}

// collectGlyphs flattens the recursive glyph nesting into the arena slice,
// preserving document order and recording the ownership edge.
func collectGlyphs(xg xmlGlyph, parentID string, out *[]Glyph) {
	g := Glyph{
		ID:          xg.ID,
		ParentID:    parentID,
		Class:       xg.Class,
		Orientation: xg.Orientation,
		Clone:       xg.Clone != nil,
	}
	if xg.Label != nil {
		g.Label = strings.ReplaceAll(xg.Label.Text, "\r", "")
	}
	if xg.State != nil {
		g.StateValue = xg.State.Value
		g.StateVar = xg.State.Variable
	}
	if xg.BBox != nil {
		g.BBox = &BBox{X: xg.BBox.X, Y: xg.BBox.Y, W: xg.BBox.W, H: xg.BBox.H}
	}
	for _, p := range xg.Ports {
		g.Ports = append(g.Ports, Port{ID: p.ID, Point: geom.Point{X: p.X, Y: p.Y}})
	}
	*out = append(*out, g)

	for _, child := range xg.Glyphs {
		collectGlyphs(child, xg.ID, out)
	}
}

func collectArcs(xarcs []xmlArc, out *[]Arc) error {
	for _, xa := range xarcs {
		if xa.Start == nil {
			return fmt.Errorf("sbgn: arc %q missing start point", xa.Class)
		}
		if xa.End == nil {
			return fmt.Errorf("sbgn: arc %q missing end point", xa.Class)
		}
		points := make([]geom.Point, 0, len(xa.Next)+2)
		points = append(points, geom.Point{X: xa.Start.X, Y: xa.Start.Y})
		for _, n := range xa.Next {
			points = append(points, geom.Point{X: n.X, Y: n.Y})
		}
		points = append(points, geom.Point{X: xa.End.X, Y: xa.End.Y})
		*out = append(*out, Arc{
			Class:  xa.Class,
			Source: xa.Source,
			Target: xa.Target,
			Points: points,
		})

		if err := collectArcs(xa.Arcs, out); err != nil {
			return err
		}
	}
	return nil
}
