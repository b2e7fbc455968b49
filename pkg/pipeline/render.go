package pipeline

import (
	"bytes"
	"context"
	"time"

	apperrors "github.com/sbgnviz/sbgnviz/pkg/errors"
	"github.com/sbgnviz/sbgnviz/pkg/geom"
	"github.com/sbgnviz/sbgnviz/pkg/observability"
	"github.com/sbgnviz/sbgnviz/pkg/render"
	"github.com/sbgnviz/sbgnviz/pkg/render/surface"
	"github.com/sbgnviz/sbgnviz/pkg/render/text"
	"github.com/sbgnviz/sbgnviz/pkg/sbgn"
)

// Render draws the diagram in the requested formats and reports the result
// through the pipeline hooks.
func Render(ctx context.Context, d *sbgn.Diagram, bounds geom.Bounds, opts Options) (map[string][]byte, error) {
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(d, bounds, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(d *sbgn.Diagram, bounds geom.Bounds, opts Options) (map[string][]byte, error) {
	fonts, measurer := loadFonts(opts)

	r := render.New(
		render.WithPadding(opts.padding()),
		render.WithScale(opts.Scale),
		render.WithCloneMarkers(!opts.NoCloneMarkers),
		render.WithMeasurer(measurer),
	)

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var buf bytes.Buffer

		switch format {
		case FormatPNG:
			w, h := r.PixelSize(bounds)
			dst := surface.NewRaster(w, h, fonts)
			r.Render(dst, d, bounds)
			if err := dst.EncodePNG(&buf); err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeRender, err, "encode png")
			}
		case FormatSVG:
			w, h := r.Size(bounds)
			dst := surface.NewSVG(w, h)
			r.Render(dst, d, bounds)
			if _, err := dst.WriteTo(&buf); err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeRender, err, "write svg")
			}
		default:
			return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		artifacts[format] = buf.Bytes()
	}

	return artifacts, nil
}

// loadFonts resolves the label font. An explicit path that fails to load is
// only logged, like a failed system lookup: label metrics then fall back to
// fixed advances and the raster surface to its built-in face.
func loadFonts(opts Options) (*text.Source, text.Measurer) {
	var (
		fonts *text.Source
		err   error
	)
	if opts.FontPath != "" {
		fonts, err = text.Load(opts.FontPath)
	} else {
		fonts, err = text.Find()
	}
	if err != nil {
		opts.Logger.Warn("no usable label font", "err", err)
		return nil, text.Fixed{}
	}
	return fonts, fonts
}
