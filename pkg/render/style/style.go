// Package style holds the visual constants keyed by SBGN glyph class:
// palette, font sizes, reference dimensions, multimer ghost offsets, and
// arc decoration sizing. The values reproduce the sbgnStyle stylesheet so
// output matches the common web renderers pixel for pixel.
package style

import (
	"strings"

	"github.com/sbgnviz/sbgnviz/pkg/render/surface"
)

// Palette shared by every glyph and arc.
var (
	Border          = surface.RGB(0x55, 0x55, 0x55)
	Fill            = surface.RGB(0xF6, 0xF6, 0xF6)
	AuxLine         = surface.RGB(0x6A, 0x6A, 0x6A)
	AssociationFill = surface.RGB(0x6B, 0x6B, 0x6B)
	CloneFill       = surface.Gray(0.82)
)

const (
	// DefaultPadding is the pixel margin added around the diagram bounds.
	DefaultPadding = 10.0
	// DefaultLineWidth is the stroke width for arcs and most glyph borders.
	DefaultLineWidth = 1.5

	FontMain  = 20.0
	FontSmall = 12.0

	ArrowSize        = 8.0
	ArrowScale       = 1.75
	BarLength        = 12.0
	BarOffset        = 14.0
	CatalysisOverlap = 0.5

	ConnectorLen        = 11.0
	LogicalConnectorLen = 20.0

	CloneHeightRatio = 0.30
	CloneStrokeWidth = 1.5
)

// SplitMultimer strips the " multimer" suffix from a class name and reports
// whether it was present.
func SplitMultimer(class string) (string, bool) {
	base := strings.TrimSuffix(class, " multimer")
	return base, base != class
}

// FontSize returns the label pixel size for a class. Auxiliary glyphs and
// tags use the small size.
func FontSize(class string) float64 {
	switch class {
	case "state variable", "unit of information", "cardinality",
		"variable value", "tag", "terminal":
		return FontSmall
	}
	return FontMain
}

// LabelOverride returns the fixed label some classes always carry,
// replacing whatever the document says.
func LabelOverride(class string) (string, bool) {
	switch class {
	case "and":
		return "AND", true
	case "or":
		return "OR", true
	case "not":
		return "NOT", true
	case "omitted process":
		return `\\`, true
	case "uncertain process":
		return "?", true
	}
	return "", false
}

// RefDims returns the stylesheet's default width and height for a class.
// Overlay positions and ghost offsets are expressed in this reference
// space and scaled to the glyph's actual box.
func RefDims(class string) (w, h float64, ok bool) {
	switch class {
	case "unspecified entity":
		return 32, 32, true
	case "simple chemical", "simple chemical multimer":
		return 48, 48, true
	case "macromolecule", "macromolecule multimer":
		return 96, 48, true
	case "nucleic acid feature":
		return 88, 56, true
	case "nucleic acid feature multimer":
		return 88, 52, true
	case "complex", "complex multimer":
		return 10, 10, true
	case "source and sink":
		return 60, 60, true
	case "perturbing agent":
		return 140, 60, true
	case "phenotype":
		return 140, 60, true
	case "process", "uncertain process", "omitted process":
		return 25, 25, true
	case "association", "dissociation":
		return 25, 25, true
	case "compartment":
		return 50, 50, true
	case "tag":
		return 100, 65, true
	case "and", "or", "not":
		return 40, 40, true
	}
	return 0, 0, false
}

// GhostOffset returns the offset of the multimer ghost copy in reference
// units. Classes without an entry draw no ghost even when marked multimer.
func GhostOffset(base string) (dx, dy float64, ok bool) {
	switch base {
	case "simple chemical":
		return 5, 5, true
	case "macromolecule", "nucleic acid feature":
		return 12, 12, true
	case "complex":
		return 16, 16, true
	}
	return 0, 0, false
}

// EntityBorderWidth returns the border stroke width for entity pool nodes.
func EntityBorderWidth(base string) float64 {
	if base == "complex" {
		return 4
	}
	return 2
}

// ConnectorLength returns the port tick length for a class in pixels.
// Logical operators use longer ticks.
func ConnectorLength(class string) float64 {
	switch class {
	case "and", "or", "not":
		return LogicalConnectorLen
	}
	return ConnectorLen
}

// DefaultOrientation returns the orientation assumed for classes that draw
// port ticks even without an orientation attribute.
func DefaultOrientation(class string) (string, bool) {
	switch class {
	case "process", "omitted process", "uncertain process",
		"association", "dissociation":
		return "horizontal", true
	}
	return "", false
}
