package render

import (
	"reflect"
	"testing"

	"github.com/sbgnviz/sbgnviz/pkg/geom"
	"github.com/sbgnviz/sbgnviz/pkg/render/surface"
	"github.com/sbgnviz/sbgnviz/pkg/render/text"
	"github.com/sbgnviz/sbgnviz/pkg/sbgn"
)

func box(x, y, w, h float64) *sbgn.BBox {
	return &sbgn.BBox{X: x, Y: y, W: w, H: h}
}

func mustBounds(t *testing.T, d *sbgn.Diagram) geom.Bounds {
	t.Helper()
	b, err := d.ComputeBounds()
	if err != nil {
		t.Fatalf("ComputeBounds: %v", err)
	}
	return b
}

func TestRenderPaintsBackgroundFirst(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "m", Class: "macromolecule", Label: "ERK", BBox: box(0, 0, 96, 48)},
	}, nil)
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	if rec.Ops[0].Name != "SetColor" || rec.Ops[0].Args[0] != 1 {
		t.Fatalf("first op should set white, got %v", rec.Ops[0])
	}
	fill := rec.Find("Fill", 0)
	stroke := rec.Find("Stroke", 0)
	if fill < 0 || (stroke >= 0 && stroke < fill) {
		t.Error("background fill should precede any stroke")
	}
}

func TestRendererSize(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "m", Class: "macromolecule", BBox: box(10, 10, 96, 48)},
	}, nil)
	b := mustBounds(t, d)

	w, h := New().Size(b)
	if w != 116 || h != 68 {
		t.Errorf("size = %gx%g, want 116x68", w, h)
	}
	pw, ph := New(WithScale(2)).PixelSize(b)
	if pw != 232 || ph != 136 {
		t.Errorf("pixel size at 2x = %dx%d, want 232x136", pw, ph)
	}
}

func TestMultimerGhostDrawnUnderBody(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "m", Class: "macromolecule multimer", Label: "R", BBox: box(0, 0, 96, 48)},
	}, nil)
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	// At 1:1 scale with 10 units of padding the body sits at (10,10) and
	// the ghost at (22,22). The round rect outline starts at x+radius.
	ghostStart, bodyStart := -1, -1
	for i, op := range rec.Ops {
		if op.Name != "MoveTo" {
			continue
		}
		if op.Args[0] == 26.8 && op.Args[1] == 22 && ghostStart < 0 {
			ghostStart = i
		}
		if op.Args[0] == 14.8 && op.Args[1] == 10 && bodyStart < 0 {
			bodyStart = i
		}
	}
	if ghostStart < 0 {
		t.Fatal("ghost outline missing")
	}
	if bodyStart < 0 {
		t.Fatal("body outline missing")
	}
	if ghostStart > bodyStart {
		t.Error("ghost must be drawn before the body")
	}
	// Only the body carries the label.
	if got := rec.Count("Text"); got != 1 {
		t.Errorf("got %d labels, want 1", got)
	}
}

func TestUnspecifiedEntityMultimerHasNoGhost(t *testing.T) {
	plain := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "u", Class: "unspecified entity", BBox: box(0, 0, 32, 32)},
	}, nil)
	recPlain := &surface.Recorder{}
	New().Render(recPlain, plain, mustBounds(t, plain))

	multi := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "u", Class: "unspecified entity multimer", BBox: box(0, 0, 32, 32)},
	}, nil)
	recMulti := &surface.Recorder{}
	New().Render(recMulti, multi, mustBounds(t, multi))

	if recPlain.Count("Ellipse") != recMulti.Count("Ellipse") {
		t.Error("multimer without a ghost offset should draw a single outline")
	}
}

func TestCloneMarkerClipsToOutline(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "c", Class: "simple chemical", Label: "ATP", Clone: true, BBox: box(0, 0, 48, 48)},
	}, nil)
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	save := rec.Find("Save", 0)
	if save < 0 {
		t.Fatal("clone marker should save state")
	}
	clip := rec.Find("Clip", save)
	restore := rec.Find("Restore", save)
	if clip < 0 || restore < 0 || clip > restore {
		t.Fatal("clone marker should clip inside save/restore")
	}
	// The band fill uses the clone gray inside the clipped region.
	grayFill := false
	for i := clip; i < restore; i++ {
		op := rec.Ops[i]
		if op.Name == "SetColor" && op.Args[0] == 0.82 {
			grayFill = true
		}
	}
	if !grayFill {
		t.Error("clone band fill color missing")
	}
	// The outline is re-stroked over the band.
	if rec.Find("Stroke", restore) < 0 {
		t.Error("outline should be stroked again after the clone band")
	}
}

func TestCloneMarkersCanBeDisabled(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "c", Class: "simple chemical", Clone: true, BBox: box(0, 0, 48, 48)},
	}, nil)
	rec := &surface.Recorder{}
	New(WithCloneMarkers(false)).Render(rec, d, mustBounds(t, d))
	if rec.Count("Clip") != 0 {
		t.Error("disabled clone markers should not clip")
	}
}

func TestProcessLabelOverrides(t *testing.T) {
	cases := []struct {
		class string
		want  string
	}{
		{"omitted process", `\\`},
		{"uncertain process", "?"},
		{"and", "AND"},
	}
	for _, c := range cases {
		d := sbgn.NewDiagram([]sbgn.Glyph{
			{ID: "p", Class: c.class, Label: "ignored", BBox: box(0, 0, 25, 25)},
		}, nil)
		rec := &surface.Recorder{}
		New().Render(rec, d, mustBounds(t, d))
		found := false
		for _, op := range rec.Ops {
			if op.Name == "Text" && op.Str == c.want {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: label %q not drawn", c.class, c.want)
		}
	}
}

func TestProcessDrawsHorizontalTicksByDefault(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "p", Class: "process", BBox: box(0, 0, 25, 25)},
	}, nil)
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	// Box maps to (10,10,25,25); ticks extend 11px on both sides.
	left, right := false, false
	for _, op := range rec.Ops {
		if op.Name == "MoveTo" && op.Args[1] == 22.5 {
			switch op.Args[0] {
			case -1:
				left = true
			case 35:
				right = true
			}
		}
	}
	if !left || !right {
		t.Errorf("horizontal ticks missing (left=%v right=%v)", left, right)
	}
}

func TestLogicalOperatorUsesLongTicks(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "a", Class: "and", Orientation: "vertical", BBox: box(0, 0, 40, 40)},
	}, nil)
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	top := false
	for _, op := range rec.Ops {
		// Box maps to (10,10,40,40); the top tick starts 20px above.
		if op.Name == "MoveTo" && op.Args[0] == 30 && op.Args[1] == -10 {
			top = true
		}
	}
	if !top {
		t.Error("logical top tick of length 20 missing")
	}
}

func TestComplexLabelSitsAtBottom(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "x", Class: "complex", Label: "C1", BBox: box(0, 0, 200, 120)},
	}, nil)
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	i := rec.Find("Text", 0)
	if i < 0 {
		t.Fatal("label missing")
	}
	op := rec.Ops[i]
	if op.Str != "C1" {
		t.Fatalf("label = %q", op.Str)
	}
	// Rect is (10,10,200,120): centered horizontally, anchored 2px above
	// the bottom edge with a 20px line height.
	if op.Args[0] != 110 || op.Args[1] != 118 {
		t.Errorf("label anchor = (%g, %g), want (110, 118)", op.Args[0], op.Args[1])
	}
}

func TestStateVariableChildWithBoxRendersAbsolutely(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "m", Class: "macromolecule", Label: "ERK", BBox: box(0, 0, 96, 48)},
		{ID: "sv", ParentID: "m", Class: "state variable", StateValue: "P", StateVar: "T202", BBox: box(30, -6, 40, 14)},
	}, nil)
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	count := 0
	for _, op := range rec.Ops {
		if op.Name == "Text" && op.Str == "P@T202" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("state label drawn %d times, want once (absolute pass only)", count)
	}
}

func TestStateVariableChildWithoutBoxBecomesOverlay(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "m", Class: "macromolecule", Label: "ERK", BBox: box(0, 0, 96, 48)},
		{ID: "sv", ParentID: "m", Class: "state variable", StateValue: "P"},
	}, nil)
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	found := false
	for _, op := range rec.Ops {
		if op.Name == "Text" && op.Str == "P" {
			found = true
		}
	}
	if !found {
		t.Fatal("overlay state label missing")
	}
	// The overlay pulls in the top separator line across the node.
	sep := false
	for i, op := range rec.Ops {
		if op.Name == "MoveTo" && op.Args[0] == 10 && op.Args[1] == 18 {
			if j := rec.Find("LineTo", i+1); j == i+1 && rec.Ops[j].Args[0] == 106 {
				sep = true
			}
		}
	}
	if !sep {
		t.Error("separator line at reference y=8 missing")
	}
}

func TestNucleicAcidSeparatorFollowsStateVariableOnly(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "n", Class: "nucleic acid feature", Label: "gene", BBox: box(0, 0, 88, 56)},
		{ID: "ui", ParentID: "n", Class: "unit of information", Label: "ct:gene"},
	}, nil)
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	// A unit of information alone draws only the bottom separator (y=52
	// in reference space, 62 on canvas), never the top one at y=18.
	topSep, bottomSep := false, false
	for _, op := range rec.Ops {
		if op.Name == "MoveTo" && op.Args[0] == 10 {
			switch op.Args[1] {
			case 18:
				topSep = true
			case 62:
				bottomSep = true
			}
		}
	}
	if topSep {
		t.Error("top separator should need a state variable")
	}
	if !bottomSep {
		t.Error("bottom separator missing")
	}
}

func TestSourceSinkStrikethrough(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "s", Class: "source and sink", Label: "ignored", BBox: box(0, 0, 60, 60)},
	}, nil)
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	if rec.Count("Text") != 0 {
		t.Error("source and sink never draws a label")
	}
	// Strike from bottom-left (10,70) to top-right (70,10).
	strike := false
	for i, op := range rec.Ops {
		if op.Name == "MoveTo" && op.Args[0] == 10 && op.Args[1] == 70 {
			if j := i + 1; j < len(rec.Ops) && rec.Ops[j].Name == "LineTo" &&
				rec.Ops[j].Args[0] == 70 && rec.Ops[j].Args[1] == 10 {
				strike = true
			}
		}
	}
	if !strike {
		t.Error("strikethrough missing")
	}
}

func TestDissociationDoubleCircle(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "x", Class: "dissociation", BBox: box(0, 0, 25, 25)},
	}, nil)
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	var radii []float64
	for _, op := range rec.Ops {
		if op.Name == "Circle" {
			radii = append(radii, op.Args[2])
		}
	}
	if len(radii) != 2 {
		t.Fatalf("got %d circles, want 2", len(radii))
	}
	if radii[0] != 12.5 || radii[1] != 7.5 {
		t.Errorf("radii = %v, want [12.5 7.5]", radii)
	}
}

func TestNecessaryStimulationDecoration(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "m", Class: "macromolecule", BBox: box(0, 0, 96, 48)},
	}, []sbgn.Arc{
		{Class: "necessary stimulation", Points: []geom.Point{{X: 0, Y: 24}, {X: 96, Y: 24}}},
	})
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	// The offset bar: endpoint (106,34), bar 14*1.75=24.5 back at x=81.5,
	// half-length 10.5.
	bar := false
	for _, op := range rec.Ops {
		if op.Name == "MoveTo" && op.Args[0] == 81.5 && op.Args[1] == 23.5 {
			bar = true
		}
	}
	if !bar {
		t.Error("offset bar missing")
	}
	// The arrowhead is the last FillPreserve, filled white.
	last := -1
	for i, op := range rec.Ops {
		if op.Name == "FillPreserve" {
			last = i
		}
	}
	if last < 1 {
		t.Fatal("arrowhead fill missing")
	}
	if prev := rec.Ops[last-1]; prev.Name != "SetColor" || prev.Args[0] != 1 {
		t.Errorf("arrowhead should fill white, got %v", prev)
	}
}

func TestZeroLengthFinalSegmentSkipsDecoration(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "m", Class: "macromolecule", BBox: box(0, 0, 96, 48)},
	}, []sbgn.Arc{
		{Class: "production", Points: []geom.Point{{X: 0, Y: 24}, {X: 96, Y: 24}, {X: 96, Y: 24}}},
	})
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	// Background is the only plain fill; the arrowhead's Fill is skipped.
	if got := rec.Count("Fill"); got != 1 {
		t.Errorf("got %d fills, want background only", got)
	}
}

func TestEquivalenceArcOpenCircle(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "m", Class: "macromolecule", BBox: box(0, 0, 96, 48)},
	}, []sbgn.Arc{
		{Class: "equivalence arc", Points: []geom.Point{{X: 0, Y: 0}, {X: 50, Y: 0}}},
	})
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	found := false
	for _, op := range rec.Ops {
		if op.Name == "Circle" && op.Args[0] == 60 && op.Args[1] == 10 {
			if op.Args[2] != 8*1.75*0.4 {
				t.Errorf("circle radius = %g", op.Args[2])
			}
			found = true
		}
	}
	if !found {
		t.Error("equivalence circle missing")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "m", Class: "macromolecule multimer", Label: "R", Clone: true, BBox: box(0, 0, 96, 48)},
		{ID: "sv", ParentID: "m", Class: "state variable", StateValue: "P"},
		{ID: "p", Class: "process", BBox: box(120, 12, 25, 25)},
	}, []sbgn.Arc{
		{Class: "production", Points: []geom.Point{{X: 96, Y: 24}, {X: 120, Y: 24}}},
	})
	b := mustBounds(t, d)

	r := New()
	first := &surface.Recorder{}
	r.Render(first, d, b)
	second := &surface.Recorder{}
	r.Render(second, d, b)

	if !reflect.DeepEqual(first.Ops, second.Ops) {
		t.Error("two renders of the same diagram differ")
	}
}

func TestOverlayBoxSizing(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "m", Class: "macromolecule", Label: "ERK", BBox: box(0, 0, 96, 48)},
		{ID: "ui", ParentID: "m", Class: "unit of information", Label: "mt:prot"},
		{ID: "sv", ParentID: "m", Class: "state variable", StateValue: "P"},
	}, nil)
	rec := &surface.Recorder{}
	New(WithMeasurer(text.Fixed{Advance: 0.5})).Render(rec, d, mustBounds(t, d))

	// The unit-of-info box anchors at reference (20,44) and sizes to the
	// measured label plus padding: 7 runes at 5px each plus 5 gives a
	// 40-wide box, so the centered label lands at x=30+20.
	uinfo := false
	for _, op := range rec.Ops {
		if op.Name == "Text" && op.Str == "mt:prot" {
			uinfo = true
			if op.Args[0] != 50 || op.Args[1] != 62.5 {
				t.Errorf("unit-of-info label at (%g,%g), want (50,62.5)", op.Args[0], op.Args[1])
			}
		}
	}
	if !uinfo {
		t.Fatal("unit-of-info label missing")
	}

	// The state-variable stadium clamps to its 30px minimum width for a
	// one-rune label, anchored at reference x=40.
	svar := false
	for _, op := range rec.Ops {
		if op.Name == "Text" && op.Str == "P" {
			svar = true
			if op.Args[0] != 65 || op.Args[1] != 18.5 {
				t.Errorf("state label at (%g,%g), want (65,18.5)", op.Args[0], op.Args[1])
			}
		}
	}
	if !svar {
		t.Fatal("state label missing")
	}
}

func TestOrientationTicksScaleWithOutput(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "p", Class: "process", BBox: box(0, 0, 25, 25)},
	}, nil)
	rec := &surface.Recorder{}
	New(WithScale(2)).Render(rec, d, mustBounds(t, d))

	// Box maps to (20,20,50,50); at 2x the 11px tick doubles along with
	// the shape, so the left tick starts at 20-22 and the right one ends
	// at 70+22.
	left, right := false, false
	for i, op := range rec.Ops {
		if op.Name != "MoveTo" || op.Args[1] != 45 {
			continue
		}
		switch op.Args[0] {
		case -2:
			left = true
		case 70:
			if j := rec.Find("LineTo", i+1); j == i+1 && rec.Ops[j].Args[0] == 92 {
				right = true
			}
		}
	}
	if !left || !right {
		t.Errorf("scaled ticks missing (left=%v right=%v)", left, right)
	}
}

func TestBoxedSiblingSuppressesOverlay(t *testing.T) {
	d := sbgn.NewDiagram([]sbgn.Glyph{
		{ID: "m", Class: "macromolecule", Label: "ERK", BBox: box(0, 0, 96, 48)},
		{ID: "sv1", ParentID: "m", Class: "state variable", StateValue: "P"},
		{ID: "sv2", ParentID: "m", Class: "state variable", StateValue: "Q", BBox: box(30, -6, 40, 14)},
	}, nil)
	rec := &surface.Recorder{}
	New().Render(rec, d, mustBounds(t, d))

	// A boxed state variable anywhere among the children turns the whole
	// class over to the absolute pass: no overlay box for sv1 and no top
	// separator line at reference y=8.
	for _, op := range rec.Ops {
		if op.Name == "Text" && op.Str == "P" {
			t.Error("boxless state variable drew an overlay next to a boxed sibling")
		}
	}
	boxed := 0
	for _, op := range rec.Ops {
		if op.Name == "Text" && op.Str == "Q" {
			boxed++
		}
	}
	if boxed != 1 {
		t.Errorf("boxed state variable drawn %d times, want once", boxed)
	}
	for _, op := range rec.Ops {
		if op.Name == "MoveTo" && op.Args[0] == 10 && op.Args[1] == 18 {
			t.Error("separator line should follow the suppressed overlay")
		}
	}
}
