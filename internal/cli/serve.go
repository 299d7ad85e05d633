package cli

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gradletree/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP",
		Long: `Start an HTTP server that parses reports posted to /v1/parse.

  curl --data-binary @deps.txt 'localhost:8080/v1/parse?format=json&configuration=runtimeClasspath'

The server shares the CLI's cache configuration and stops gracefully on
SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, loggerFromContext(ctx), server.Options{
				Addr:         addr,
				MaxBodyBytes: c.Config.Server.MaxBodyBytes,
				Format:       c.Config.Format,
				Lenient:      c.Config.Lenient,
			})

			printInfo("Serving on %s", addr)
			printDetail("cache: %s · max body: %s", c.cacheDescription(noCache), humanize.IBytes(uint64(c.Config.Server.MaxBodyBytes)))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// cacheDescription names the active cache backend for status output.
func (c *CLI) cacheDescription(noCache bool) string {
	if noCache {
		return "disabled"
	}
	return c.Config.Cache.Backend
}
