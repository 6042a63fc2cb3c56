package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/trieviz/pkg/observability"
	"github.com/matzehuels/trieviz/pkg/server"
)

// metricsNamespace prefixes every exported Prometheus metric.
const metricsNamespace = appName

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve trie graphs over HTTP",
		Long: `Serve starts the HTTP API.

  GET  /graph?keyword=cat&keyword=car&format=svg
  POST /graph  {"keywords": ["cat", "car"], "format": "svg"}
  GET  /healthz
  GET  /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.cfg().Serve
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			if noCache {
				printWarning("Artifact cache disabled")
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			var opts []server.Option
			if !noMetrics {
				hooks := observability.NewPrometheusHooks(metricsNamespace)
				hooks.Register()
				defer observability.Reset()
				opts = append(opts, server.WithMetrics(hooks.Handler()))
			}

			printInfo("Listening on %s", StyleHighlight.Render(cfg.Addr))
			return server.New(runner, c.Logger, opts...).ListenAndServe(ctx, server.Config{
				Addr:            cfg.Addr,
				ReadTimeout:     cfg.ReadTimeout.Duration,
				WriteTimeout:    cfg.WriteTimeout.Duration,
				ShutdownTimeout: cfg.ShutdownTimeout.Duration,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")

	return cmd
}
