package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sbgnviz/sbgnviz/pkg/cache"
	apperrors "github.com/sbgnviz/sbgnviz/pkg/errors"
	"github.com/sbgnviz/sbgnviz/pkg/geom"
	"github.com/sbgnviz/sbgnviz/pkg/observability"
	"github.com/sbgnviz/sbgnviz/pkg/sbgn"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	data, err := loadInput(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		DocHash: cache.Hash(data),
	}

	// Stage 1: Parse. Parsing is cheap relative to rendering and the
	// diagram arena has no serialized form, so this stage is never cached.
	parseStart := time.Now()
	d, bounds, err := Parse(ctx, data, opts.Source())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "parse %s", opts.Source())
	}
	result.Diagram = d
	result.Bounds = bounds
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.GlyphCount = len(d.Glyphs)
	result.Stats.ArcCount = len(d.Arcs)

	r.Logger.Info("parsed document",
		"glyphs", len(d.Glyphs),
		"arcs", len(d.Arcs),
		"duration", result.Stats.ParseTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, d, bounds, result.DocHash, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeRender, err, "render %s", opts.Source())
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *sbgn.Diagram, bounds geom.Bounds, docHash string, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache (unless refresh requested)
	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		allCached := true

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	rendered, err := Render(ctx, d, bounds, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d *sbgn.Diagram, bounds geom.Bounds, docHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, bounds, docHash, opts)
	return artifacts, err
}

// Overview runs the parse → overview flow with caching and returns the
// artifacts plus whether they all came from cache.
func (r *Runner) Overview(ctx context.Context, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForOverview(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	data, err := loadInput(opts)
	if err != nil {
		return nil, false, err
	}
	docHash := cache.Hash(data)

	// Try to get all formats from cache (unless refresh requested)
	if !opts.Refresh {
		artifacts := make(map[string][]byte)
		allCached := true

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.OverviewKey(docHash, opts.OverviewKeyOpts(format))
			if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "overview")
				artifacts[format] = cached
			} else {
				observability.Cache().OnCacheMiss(ctx, "overview")
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	// Overviews only need connectivity, so a document without
	// coordinates still works.
	d, _, err := Parse(ctx, data, opts.Source())
	if err != nil && !errors.Is(err, sbgn.ErrNoCoordinates) {
		return nil, false, apperrors.Wrap(apperrors.ErrCodeParse, err, "parse %s", opts.Source())
	}

	artifacts, err := Overview(ctx, d, opts)
	if err != nil {
		return nil, false, err
	}

	for format, rendered := range artifacts {
		cacheKey := r.Keyer.OverviewKey(docHash, opts.OverviewKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, rendered, cache.TTLOverview); err == nil {
			observability.Cache().OnCacheSet(ctx, "overview", len(rendered))
		}
	}

	r.Logger.Info("rendered overview",
		"formats", opts.Formats,
		"glyphs", len(d.Glyphs))

	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
