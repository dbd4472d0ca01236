package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clearmatch/clearmatch/internal/server"
	"github.com/clearmatch/clearmatch/pkg/cache"
	"github.com/clearmatch/clearmatch/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the solve API over HTTP",
		Long: `Run the solve API over HTTP.

Exposes POST /v1/solve (market in, matching out) and GET /healthz. Solve
results are cached in the local file cache by default; pass --redis to
share a cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, addr, redisURL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr, redisURL string, noCache bool) error {
	var store cache.Cache
	var err error
	switch {
	case noCache:
		store = cache.NewNullCache()
	case redisURL != "":
		store, err = cache.NewRedisCache(cmd.Context(), redisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
	default:
		store, err = newCache(false)
		if err != nil {
			return fmt.Errorf("initialize cache: %w", err)
		}
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, c.Logger)
	return srv.ListenAndServe(cmd.Context(), addr)
}
