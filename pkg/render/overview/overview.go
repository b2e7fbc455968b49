// Package overview renders the logical connectivity of a diagram as a
// Graphviz node-link graph, ignoring the document's own layout. It is a
// quick way to inspect what connects to what in a large map without
// squinting at the faithful render.
package overview

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/sbgnviz/sbgnviz/pkg/sbgn"
)

// Options configures overview rendering.
type Options struct {
	// Detailed adds glyph classes to node labels and arc classes to
	// edge labels. When false only labels and IDs are shown.
	Detailed bool
}

// ToDOT converts a diagram's connectivity to Graphviz DOT. Auxiliary
// glyphs never appear; arcs without resolvable endpoints are dropped.
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(d *sbgn.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range d.Glyphs {
		g := &d.Glyphs[i]
		if g.IsAuxiliary() {
			continue
		}
		label := fmtLabel(g, opts.Detailed)
		attrs := fmtAttrs(g, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", g.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, a := range d.Arcs {
		from, ok := d.Resolve(a.Source)
		if !ok {
			continue
		}
		to, ok := d.Resolve(a.Target)
		if !ok {
			continue
		}
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=10];\n",
				d.Glyphs[from].ID, d.Glyphs[to].ID, a.Class)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", d.Glyphs[from].ID, d.Glyphs[to].ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *sbgn.Glyph, detailed bool) string {
	label := g.Label
	if strings.TrimSpace(label) == "" {
		label = g.ID
	}
	if detailed {
		return label + "\n" + g.Class
	}
	return label
}

func fmtAttrs(g *sbgn.Glyph, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch g.Class {
	case "process", "omitted process", "uncertain process", "association", "dissociation":
		attrs = append(attrs, "shape=square", "style=filled", "fillcolor=lightgrey")
	case "and", "or", "not":
		attrs = append(attrs, "shape=circle", "style=filled", "fillcolor=lightgrey")
	case "compartment":
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz SVG header so the viewBox starts
// at the origin and the element carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
