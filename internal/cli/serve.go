package cli

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/godswood/internal/api"
	"github.com/matzehuels/godswood/pkg/cache"
	"github.com/matzehuels/godswood/pkg/observability"
)

// apiKeyPrefix namespaces server cache entries away from CLI ones.
const apiKeyPrefix = "api:"

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		noCache  bool
		maxBytes int64
		metrics  bool
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz
  GET  /metrics (unless --metrics=false)
  GET  /v1/sample
  POST /v1/layout
  POST /v1/render/{format}

The cache backend comes from the config file ([cache] backend = "file",
"redis" or "none"). The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			runner.Keyer = cache.NewScopedKeyer(runner.Keyer, apiKeyPrefix)

			hooks := observability.Fanout{observability.NewLogHooks(c.Logger)}
			opts := []api.Option{
				api.WithLogger(c.Logger),
				api.WithMaxBodyBytes(maxBytes),
				api.WithRequestTimeout(timeout),
			}
			if metrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				hooks = append(hooks, observability.NewMetricsHooks(reg))
				opts = append(opts, api.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
			}
			observability.Register(hooks)
			defer observability.Reset()

			srv := api.New(runner, opts...)
			printInfo("Serving on %s", StyleHighlight.Render(addr))
			printDetail("Cache: %s", c.Config.Cache.Backend)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&timeout, "timeout", api.DefaultRequestTimeout, "per-request time limit")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "serve Prometheus metrics on /metrics")
	cmd.Flags().Int64Var(&maxBytes, "max-body", api.DefaultMaxBodyBytes, "maximum request body size in bytes")

	return cmd
}
