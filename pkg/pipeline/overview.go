package pipeline

import (
	"context"
	"time"

	apperrors "github.com/sbgnviz/sbgnviz/pkg/errors"
	"github.com/sbgnviz/sbgnviz/pkg/observability"
	"github.com/sbgnviz/sbgnviz/pkg/render/overview"
	"github.com/sbgnviz/sbgnviz/pkg/sbgn"
)

// Overview renders the diagram's connectivity graph in the requested
// formats. The DOT source is generated once and shared by every format.
func Overview(ctx context.Context, d *sbgn.Diagram, opts Options) (map[string][]byte, error) {
	dot := overview.ToDOT(d, overview.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		observability.Pipeline().OnOverviewStart(ctx, format)
		start := time.Now()

		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = overview.RenderSVG(dot)
		case FormatPNG:
			data, err = overview.RenderPNG(dot)
		default:
			err = apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported overview format: %s", format)
		}

		observability.Pipeline().OnOverviewComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeOverview, err, "overview %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
