package text

import "testing"

func TestFixedWidth(t *testing.T) {
	tests := []struct {
		name string
		m    Fixed
		s    string
		size float64
		want float64
	}{
		{"default advance", Fixed{}, "abcd", 10, 24},
		{"custom advance", Fixed{Advance: 0.5}, "abcd", 10, 20},
		{"empty string", Fixed{}, "", 10, 0},
		{"widest line wins", Fixed{Advance: 0.5}, "ab\nabcdef\ncd", 10, 30},
		{"runes not bytes", Fixed{Advance: 0.5}, "αβ", 10, 10},
	}
	for _, tt := range tests {
		if got := tt.m.Width(tt.s, tt.size); got != tt.want {
			t.Errorf("%s: Width(%q, %g) = %g, want %g", tt.name, tt.s, tt.size, got, tt.want)
		}
	}
}

func TestFixedHeight(t *testing.T) {
	if got := (Fixed{}).Height(12); got != 12 {
		t.Errorf("Height(12) = %g, want 12", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/font.ttf"); err == nil {
		t.Error("Load of a missing file should fail")
	}
}
