package cli

import (
	"github.com/spf13/cobra"

	"github.com/sbgnviz/sbgnviz/internal/server"
	"github.com/sbgnviz/sbgnviz/pkg/pipeline"
)

// serveCommand creates the serve command for running the rendering API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Long: `Run an HTTP server exposing the renderer: POST /render and POST /overview
accept SBGN-ML documents and return images, with responses cached through
the configured backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if addr == "" {
				addr = server.DefaultAddr
			}

			store, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, nil, c.Logger)
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:   addr,
				Logger: c.Logger,
				Runner: runner,
				Cache:  store,
			})
			printInfo("Listening on %s", addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response caching")

	return cmd
}
