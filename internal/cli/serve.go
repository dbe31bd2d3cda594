package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/provgraph/provgraph/internal/server"
	"github.com/provgraph/provgraph/pkg/cache"
	"github.com/provgraph/provgraph/pkg/pipeline"
	"github.com/provgraph/provgraph/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		mongoURI  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion pipeline over HTTP",
		Long: `Serve the conversion pipeline over HTTP.

The server exposes the same pipeline the CLI uses:

  GET  /healthz           liveness probe
  POST /v1/convert        PROV-JSON in, PROV-JSONLD out (?pretty=1)
  POST /v1/visualize      PROV-JSONLD in, DOT or image out (?format=dot|svg|png)
  GET  /v1/records        conversion history (requires --mongo)
  GET  /v1/records/{id}   one history record (requires --mongo)

With --redis the conversion cache is shared between instances; without
it the server uses the same local file cache as the CLI. With --mongo
every handled conversion is recorded and can be listed back.

Flags override the [server] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), c.serverSettings(addr, redisAddr, mongoURI))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for shared caching (host:port)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb connection URI for conversion history")

	return cmd
}

// serverSettings holds the resolved serve configuration: config file
// values overridden by non-empty flags.
type serverSettings struct {
	addr      string
	redisAddr string
	mongoURI  string
	cacheTTL  time.Duration
}

// serverSettings merges the [server] config section with the command
// flags. Flags win when set.
func (c *CLI) serverSettings(addr, redisAddr, mongoURI string) serverSettings {
	s := serverSettings{
		addr:      c.Config.Server.Addr,
		redisAddr: c.Config.Server.RedisAddr,
		mongoURI:  c.Config.Server.MongoURI,
		cacheTTL:  c.Config.Server.CacheTTL.Duration,
	}
	if addr != "" {
		s.addr = addr
	}
	if redisAddr != "" {
		s.redisAddr = redisAddr
	}
	if mongoURI != "" {
		s.mongoURI = mongoURI
	}
	if s.addr == "" {
		s.addr = ":8080"
	}
	return s
}

// runServe wires the cache, store, and runner together and serves until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, settings serverSettings) error {
	backend, err := c.serverCache(ctx, settings)
	if err != nil {
		return err
	}

	// A redis keyspace is shared with whatever else runs against it;
	// the local file cache is ours alone.
	var keyer cache.Keyer
	if settings.redisAddr != "" {
		keyer = cache.NewScopedKeyer(nil, appName+":")
	}

	runner := pipeline.NewRunner(backend, keyer, c.Logger)
	defer runner.Close()

	var st store.Store
	if settings.mongoURI != "" {
		st, err = store.NewMongoStore(ctx, settings.mongoURI)
		if err != nil {
			return fmt.Errorf("connect mongodb: %w", err)
		}
		defer st.Close(context.Background())
		c.Logger.Info("Conversion history enabled", "store", "mongodb")
	}

	srv := server.New(settings.addr, runner, st, c.Logger)
	srv.SetCacheTTL(settings.cacheTTL)

	c.Logger.Info("Listening", "addr", settings.addr)
	return srv.ListenAndServe(ctx)
}

// serverCache picks the server cache backend: redis when configured,
// else the CLI's local file cache.
func (c *CLI) serverCache(ctx context.Context, settings serverSettings) (cache.Cache, error) {
	if settings.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, settings.redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("Cache backend", "backend", "redis", "addr", settings.redisAddr)
		return rc, nil
	}
	return c.newCache(false)
}
