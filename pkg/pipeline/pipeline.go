// Package pipeline provides the core rendering pipeline.
//
// This package implements the complete parse → render flow that is shared
// by the CLI and the HTTP server. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Parse: Read an SBGN-ML document into a diagram
//  2. Render: Draw the diagram into output formats (PNG, SVG)
//
// A separate overview flow turns the diagram's connectivity into a
// Graphviz rendering (DOT, SVG, PNG).
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Path:    "pathway.sbgn",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sbgnviz/sbgnviz/pkg/cache"
	apperrors "github.com/sbgnviz/sbgnviz/pkg/errors"
	"github.com/sbgnviz/sbgnviz/pkg/geom"
	"github.com/sbgnviz/sbgnviz/pkg/render/style"
	"github.com/sbgnviz/sbgnviz/pkg/sbgn"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the output resolution in pixels per diagram unit.
	DefaultScale = 1.0

	// DefaultPadding is the margin around the diagram in diagram units.
	DefaultPadding = style.DefaultPadding
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported render output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// ValidOverviewFormats is the set of supported overview output formats.
var ValidOverviewFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatDOT: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Exactly one of Path or Data must be set; when both
	// are set, Data wins and Path only names the source in logs.
	Path string `json:"path,omitempty"`
	Data []byte `json:"data,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	// Padding is the margin around the diagram in diagram units. Nil means
	// DefaultPadding; an explicit zero is honored.
	Padding        *float64 `json:"padding,omitempty"`
	NoCloneMarkers bool     `json:"no_clone_markers,omitempty"`
	FontPath       string   `json:"font_path,omitempty"`

	// Overview options
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses the cache and recomputes all artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the parsed document.
	Diagram *sbgn.Diagram

	// Bounds is the diagram extent in diagram units.
	Bounds geom.Bounds

	// DocHash is the content hash of the input document.
	DocHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	GlyphCount int
	ArcCount   int
	ParseTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a render format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all render formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOverviewFormats checks that all overview formats are valid.
func ValidateOverviewFormats(formats []string) error {
	for _, f := range formats {
		if !ValidOverviewFormats[f] {
			return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid overview format: %q (must be one of: svg, png, dot)", f)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// render pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateInput(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForOverview checks required fields and applies defaults for the
// overview flow.
func (o *Options) ValidateForOverview() error {
	if err := o.ValidateInput(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return ValidateOverviewFormats(o.Formats)
}

// ValidateInput checks that an input source is configured.
func (o *Options) ValidateInput() error {
	if o.Path == "" && len(o.Data) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "path or data is required")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Padding == nil {
		p := DefaultPadding
		o.Padding = &p
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Source names the input for logs and hooks.
func (o *Options) Source() string {
	if o.Path != "" {
		return o.Path
	}
	return "inline"
}

// padding returns the effective padding, which is DefaultPadding until
// SetRenderDefaults has pinned an explicit value.
func (o *Options) padding() float64 {
	if o.Padding == nil {
		return DefaultPadding
	}
	return *o.Padding
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		Scale:        o.Scale,
		Padding:      o.padding(),
		Font:         o.FontPath,
		CloneMarkers: !o.NoCloneMarkers,
	}
}

// OverviewKeyOpts returns cache key options for overview rendering.
func (o *Options) OverviewKeyOpts(format string) cache.OverviewKeyOpts {
	return cache.OverviewKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
