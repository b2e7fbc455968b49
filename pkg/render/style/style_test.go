package style

import "testing"

func TestSplitMultimer(t *testing.T) {
	cases := []struct {
		class    string
		base     string
		multimer bool
	}{
		{"macromolecule multimer", "macromolecule", true},
		{"macromolecule", "macromolecule", false},
		{"simple chemical multimer", "simple chemical", true},
		{"process", "process", false},
	}
	for _, c := range cases {
		base, m := SplitMultimer(c.class)
		if base != c.base || m != c.multimer {
			t.Errorf("SplitMultimer(%q) = (%q, %v), want (%q, %v)",
				c.class, base, m, c.base, c.multimer)
		}
	}
}

func TestFontSize(t *testing.T) {
	if got := FontSize("state variable"); got != FontSmall {
		t.Errorf("state variable font = %g", got)
	}
	if got := FontSize("tag"); got != FontSmall {
		t.Errorf("tag font = %g", got)
	}
	if got := FontSize("macromolecule"); got != FontMain {
		t.Errorf("macromolecule font = %g", got)
	}
}

func TestLabelOverride(t *testing.T) {
	cases := []struct {
		class string
		want  string
		ok    bool
	}{
		{"and", "AND", true},
		{"or", "OR", true},
		{"not", "NOT", true},
		{"omitted process", `\\`, true},
		{"uncertain process", "?", true},
		{"process", "", false},
	}
	for _, c := range cases {
		got, ok := LabelOverride(c.class)
		if got != c.want || ok != c.ok {
			t.Errorf("LabelOverride(%q) = (%q, %v), want (%q, %v)",
				c.class, got, ok, c.want, c.ok)
		}
	}
}

func TestRefDims(t *testing.T) {
	w, h, ok := RefDims("macromolecule")
	if !ok || w != 96 || h != 48 {
		t.Errorf("macromolecule ref dims = %g x %g, %v", w, h, ok)
	}
	// The multimer variant keeps its own entry to mirror the stylesheet.
	w, h, ok = RefDims("nucleic acid feature multimer")
	if !ok || w != 88 || h != 52 {
		t.Errorf("nucleic acid feature multimer ref dims = %g x %g, %v", w, h, ok)
	}
	if _, _, ok := RefDims("mystery"); ok {
		t.Error("unknown class should have no ref dims")
	}
}

func TestGhostOffset(t *testing.T) {
	dx, dy, ok := GhostOffset("complex")
	if !ok || dx != 16 || dy != 16 {
		t.Errorf("complex ghost = (%g, %g, %v)", dx, dy, ok)
	}
	if _, _, ok := GhostOffset("unspecified entity"); ok {
		t.Error("unspecified entity should have no ghost offset")
	}
}

func TestEntityBorderWidth(t *testing.T) {
	if got := EntityBorderWidth("complex"); got != 4 {
		t.Errorf("complex border = %g", got)
	}
	if got := EntityBorderWidth("macromolecule"); got != 2 {
		t.Errorf("macromolecule border = %g", got)
	}
}

func TestConnectorLength(t *testing.T) {
	if got := ConnectorLength("and"); got != LogicalConnectorLen {
		t.Errorf("and connector = %g", got)
	}
	if got := ConnectorLength("process"); got != ConnectorLen {
		t.Errorf("process connector = %g", got)
	}
}

func TestDefaultOrientation(t *testing.T) {
	for _, class := range []string{"process", "omitted process", "uncertain process", "association", "dissociation"} {
		if o, ok := DefaultOrientation(class); !ok || o != "horizontal" {
			t.Errorf("DefaultOrientation(%q) = (%q, %v)", class, o, ok)
		}
	}
	if _, ok := DefaultOrientation("macromolecule"); ok {
		t.Error("macromolecule should have no default orientation")
	}
}
