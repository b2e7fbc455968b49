package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbgnviz/sbgnviz/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command. Unset
// flags inherit their values from the config file.
type renderFlags struct {
	output         string  // output file (single format) or base path (multiple)
	formats        string  // comma-separated output formats
	scale          float64 // raster scale factor
	padding        float64 // canvas padding in map units
	noCloneMarkers bool    // suppress clone marker rendering
	font           string  // path to a TTF font for labels
	noCache        bool    // bypass the artifact cache entirely
	refresh        bool    // recompute even when a cached artifact exists
}

// renderCommand creates the render command for turning SBGN-ML documents
// into PNG and SVG images.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an SBGN-ML document to PNG or SVG",
		Long: `Render an SBGN-ML process description document to one or more image files.

When no file is given, an interactive picker lists the .sbgn and .xml
documents in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := resolveInput(args)
			if err != nil {
				return err
			}

			opts := c.pipelineOptions()
			opts.Path = input
			// Without --format or a config entry, render both formats.
			fallback := opts.Formats
			if len(fallback) == 0 {
				fallback = []string{pipeline.FormatPNG, pipeline.FormatSVG}
			}
			opts.Formats = parseFormats(flags.formats, fallback)
			opts.Refresh = flags.refresh
			if cmd.Flags().Changed("scale") {
				opts.Scale = flags.scale
			}
			if cmd.Flags().Changed("padding") {
				opts.Padding = &flags.padding
			}
			if flags.noCloneMarkers {
				opts.NoCloneMarkers = true
			}
			if flags.font != "" {
				opts.FontPath = flags.font
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}

			return c.runRender(cmd, input, flags, opts)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): png, svg (comma-separated, default both)")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "raster scale factor")
	cmd.Flags().Float64Var(&flags.padding, "padding", pipeline.DefaultPadding, "padding around the diagram in map units")
	cmd.Flags().BoolVar(&flags.noCloneMarkers, "no-clone-markers", false, "do not draw clone markers")
	cmd.Flags().StringVar(&flags.font, "font", "", "TTF font file for labels")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute artifacts even when cached")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, flags renderFlags, opts pipeline.Options) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	start := time.Now()
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", input))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Rendering %s failed", input))
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(flags.output, input, opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}
	logger := loggerFromContext(ctx)
	for _, p := range paths {
		logger.Debug("wrote artifact", "path", p)
	}

	printSuccess("Rendered %s (%s)", input, time.Since(start).Round(time.Millisecond))
	printStats(result.Stats.GlyphCount, result.Stats.ArcCount, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	printNextStep("Summarize connectivity", fmt.Sprintf("%s overview %s", appName, input))
	return nil
}

// resolveInput returns the document path from args. With no argument the
// interactive picker runs over the current directory; a directory argument
// runs it over that directory.
func resolveInput(args []string) (string, error) {
	if len(args) == 0 {
		return pickFile(".")
	}
	if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
		return pickFile(args[0])
	}
	return args[0], nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output ends
// in a format extension (.svg, .png), that extension is stripped so the
// per-format suffix is never doubled.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each rendered format next to the input (or under
// the --output base) and returns the written paths in format order.
func writeArtifacts(output, input string, formats []string, artifacts map[string][]byte) ([]string, error) {
	// A single format with an explicit --output goes exactly there.
	if output != "" && len(formats) == 1 {
		if err := writeFile(output, artifacts[formats[0]]); err != nil {
			return nil, err
		}
		return []string{output}, nil
	}

	base := basePath(output, input)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := writeFile(path, artifacts[format]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
