package geom

import (
	"math"
	"testing"
)

func TestTransformRoundTrip(t *testing.T) {
	tr := NewTransform(-50, 10, 350, 290, 800, 560)

	points := [][2]float64{
		{-50, 10}, {350, 290}, {0, 0}, {123.456, -7.89}, {350, 10},
	}
	for _, p := range points {
		mapped := tr.MapPoint(p[0], p[1])
		x, y := tr.Unmap(mapped)
		if math.Abs(x-p[0]) > 1e-9 || math.Abs(y-p[1]) > 1e-9 {
			t.Errorf("round trip of (%g,%g) gave (%g,%g)", p[0], p[1], x, y)
		}
	}
}

func TestTransformDegenerateSpan(t *testing.T) {
	// Zero-width data range clamps to one unit instead of dividing by zero.
	tr := NewTransform(5, 5, 5, 105, 100, 100)
	p := tr.MapPoint(5, 5)
	if math.IsInf(p.X, 0) || math.IsNaN(p.X) {
		t.Fatalf("degenerate span produced %v", p)
	}
	w, _ := tr.MapSize(1, 1)
	if w != 100 {
		t.Errorf("x scale = %g, want 100 (span clamped to 1)", w)
	}
}

func TestFitPaddedCanvasSize(t *testing.T) {
	// A single 96x48 box at the origin with padding 10 renders on a 116x68
	// canvas, with the box occupying (10,10)-(106,58).
	b := Bounds{MinX: 0, MinY: 0, MaxX: 96, MaxY: 48}
	tr, w, h := Fit(b, 10, 1)
	if w != 116 || h != 68 {
		t.Fatalf("canvas = %gx%g, want 116x68", w, h)
	}
	r := tr.MapRect(0, 0, 96, 48)
	want := Rect{X: 10, Y: 10, W: 96, H: 48}
	if r != want {
		t.Errorf("mapped rect = %+v, want %+v", r, want)
	}
}

func TestFitScale(t *testing.T) {
	b := Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50}
	tr, w, h := Fit(b, 10, 2)
	if w != 240 || h != 140 {
		t.Fatalf("canvas = %gx%g, want 240x140", w, h)
	}
	if got := tr.ScaleScalar(8); got != 16 {
		t.Errorf("ScaleScalar(8) = %g, want 16", got)
	}
}

func TestScaleScalarUsesSmallerAxis(t *testing.T) {
	tr := NewTransform(0, 0, 100, 100, 200, 400) // x scale 2, y scale 4
	if got := tr.ScaleScalar(10); got != 20 {
		t.Errorf("ScaleScalar(10) = %g, want 20", got)
	}
}

func TestMapRectNormalizes(t *testing.T) {
	tr := NewTransform(0, 0, 100, 100, 100, 100)
	r := tr.MapRect(50, 60, -20, -30)
	if r.W < 0 || r.H < 0 {
		t.Fatalf("rect not normalized: %+v", r)
	}
	if r.X != 30 || r.Y != 30 || r.W != 20 || r.H != 30 {
		t.Errorf("rect = %+v, want {30 30 20 30}", r)
	}
}

func TestRectCenter(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}
	c := r.Center()
	if c.X != 25 || c.Y != 40 {
		t.Errorf("center = %+v, want (25,40)", c)
	}
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("edges = (%g,%g), want (40,60)", r.Right(), r.Bottom())
	}
}
