// Package text loads a system font for label drawing and exposes string
// measurement for layout decisions made before anything is drawn.
package text

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Measurer reports the rendered extent of label text at a pixel size. The
// renderer uses it for bottom-anchored labels and overlay box sizing; both
// surfaces must share one Measurer so the two output formats agree.
type Measurer interface {
	// Width returns the advance width of s in pixels. Multi-line strings
	// measure as their widest line.
	Width(s string, size float64) float64
	// Height returns the line height (ascent plus descent) in pixels.
	Height(size float64) float64
}

// DefaultCandidates are font file names tried in order when no explicit
// font path is given.
var DefaultCandidates = []string{
	"DejaVuSans.ttf",
	"LiberationSans-Regular.ttf",
	"Arial.ttf",
	"Helvetica.ttf",
}

// Source wraps a parsed TrueType font and caches faces per pixel size.
type Source struct {
	font *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// Load parses the TrueType font at path.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font %s: %w", path, err)
	}
	return &Source{font: f, faces: make(map[float64]font.Face)}, nil
}

// Find locates a usable system font. Candidates are searched in order with
// the platform font directories; the first hit wins.
func Find(candidates ...string) (*Source, error) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	var firstErr error
	for _, name := range candidates {
		path, err := findfont.Find(name)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		src, err := Load(path)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return src, nil
	}
	return nil, fmt.Errorf("text: no usable font among %v: %w", candidates, firstErr)
}

// Face returns a font.Face at the given pixel size, cached per size.
func (s *Source) Face(size float64) font.Face {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(s.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	s.faces[size] = f
	return f
}

// Width implements Measurer.
func (s *Source) Width(str string, size float64) float64 {
	face := s.Face(size)
	var max fixed.Int26_6
	for _, line := range strings.Split(str, "\n") {
		if w := font.MeasureString(face, line); w > max {
			max = w
		}
	}
	return float64(max) / 64
}

// Height implements Measurer.
func (s *Source) Height(size float64) float64 {
	m := s.Face(size).Metrics()
	return float64(m.Ascent+m.Descent) / 64
}

// Fixed is a Measurer with a constant advance per rune, used when no system
// font can be found and in tests where exact glyph metrics do not matter.
type Fixed struct {
	// Advance is the per-rune width as a fraction of the pixel size.
	Advance float64
}

// Width implements Measurer.
func (f Fixed) Width(s string, size float64) float64 {
	adv := f.Advance
	if adv == 0 {
		adv = 0.6
	}
	var max int
	for _, line := range strings.Split(s, "\n") {
		if n := len([]rune(line)); n > max {
			max = n
		}
	}
	return float64(max) * adv * size
}

// Height implements Measurer.
func (f Fixed) Height(size float64) float64 { return size }
