package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brandmark/pkg/cache"
	"github.com/matzehuels/brandmark/pkg/config"
	"github.com/matzehuels/brandmark/pkg/pipeline"
	"github.com/matzehuels/brandmark/pkg/server"
	"github.com/matzehuels/brandmark/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API.

Configuration comes from the environment:

  BRANDMARK_ADDR             listen address (default :8080)
  BRANDMARK_REDIS_ADDR       redis for the scene/artifact cache (default: no cache)
  BRANDMARK_REDIS_PASSWORD   redis password
  BRANDMARK_MONGO_URI        MongoDB for kit records (default: in memory)
  BRANDMARK_MONGO_DB         MongoDB database (default brandmark)
  BRANDMARK_WORKERS          parallel generations per request
  BRANDMARK_REQUEST_TIMEOUT  per-request timeout (default 30s)
  BRANDMARK_MAX_BODY_BYTES   request body limit (default 65536)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides BRANDMARK_ADDR)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Server) error {
	logger := loggerFromContext(ctx)
	var cc cache.Cache = cache.NewNullCache()
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		cc = rc
		logger.Info("using redis cache", "addr", cfg.RedisAddr)
	}

	var st store.Store = store.NewMemoryStore()
	if cfg.MongoURI != "" {
		ms, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			cc.Close()
			return fmt.Errorf("connect mongo: %w", err)
		}
		st = ms
		logger.Info("using mongo store", "db", cfg.MongoDB)
	}

	srv := server.New(
		pipeline.NewRunner(cc, nil, logger),
		st,
		server.WithLogger(logger),
		server.WithWorkers(cfg.Workers),
		server.WithTimeout(cfg.RequestTimeout),
		server.WithMaxBodyBytes(cfg.MaxBodyBytes),
	)
	defer srv.Close(context.WithoutCancel(ctx))

	return srv.ListenAndServe(ctx, cfg.Addr)
}
