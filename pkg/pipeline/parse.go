package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	apperrors "github.com/sbgnviz/sbgnviz/pkg/errors"
	"github.com/sbgnviz/sbgnviz/pkg/geom"
	"github.com/sbgnviz/sbgnviz/pkg/observability"
	"github.com/sbgnviz/sbgnviz/pkg/sbgn"
)

// Parse reads an SBGN-ML document into a diagram and reports the result
// through the pipeline hooks. source only names the input for hooks. Like
// sbgn.Parse, the diagram is returned alongside sbgn.ErrNoCoordinates.
func Parse(ctx context.Context, data []byte, source string) (*sbgn.Diagram, geom.Bounds, error) {
	observability.Pipeline().OnParseStart(ctx, source)
	start := time.Now()

	d, bounds, err := sbgn.Parse(bytes.NewReader(data))
	glyphs, arcs := 0, 0
	if d != nil {
		glyphs, arcs = len(d.Glyphs), len(d.Arcs)
	}
	observability.Pipeline().OnParseComplete(ctx, source, glyphs, arcs, time.Since(start), err)
	return d, bounds, err
}

// loadInput returns the document bytes for opts, reading from disk when
// only a path is given.
func loadInput(opts Options) ([]byte, error) {
	if len(opts.Data) > 0 {
		return opts.Data, nil
	}
	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read input")
	}
	return data, nil
}
