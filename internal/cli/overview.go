package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbgnviz/sbgnviz/pkg/pipeline"
)

// overviewCommand creates the overview command for generating Graphviz
// connectivity summaries of a pathway.
func (c *CLI) overviewCommand() *cobra.Command {
	var (
		output   string
		formats  string
		detailed bool
		noCache  bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "overview [file]",
		Short: "Generate a Graphviz overview of a pathway's connectivity",
		Long: `Generate a compact Graphviz view of the pathway: one node per entity pool
and process, one edge per arc. Works on documents without coordinates,
which makes it useful for inspecting raw model exports.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := resolveInput(args)
			if err != nil {
				return err
			}

			opts := c.pipelineOptions()
			opts.Path = input
			opts.Formats = parseFormats(formats, nil)
			opts.Detailed = detailed
			opts.Refresh = refresh
			if err := pipeline.ValidateOverviewFormats(opts.Formats); err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			start := time.Now()
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Summarizing %s", input))
			spinner.Start()
			artifacts, cached, err := runner.Overview(ctx, opts)
			if err != nil {
				spinner.StopWithError(fmt.Sprintf("Overview of %s failed", input))
				return err
			}
			spinner.Stop()

			paths, err := writeArtifacts(output, input, opts.Formats, artifacts)
			if err != nil {
				return err
			}

			printSuccess("Generated overview of %s (%s)", input, time.Since(start).Round(time.Millisecond))
			if cached {
				printDetail("cached")
			}
			for _, p := range paths {
				printFile(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include glyph classes and labels in nodes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the overview cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	return cmd
}
