package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/worldseedr/worldseedr/internal/api"
	"github.com/worldseedr/worldseedr/pkg/cache"
	"github.com/worldseedr/worldseedr/pkg/store"
)

func (c *CLI) servCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP generation service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	ck, err := c.serveCache(ctx)
	if err != nil {
		return fmt.Errorf("build cache: %w", err)
	}
	defer ck.Close()

	st, closeStore, err := c.serveStore(ctx)
	if err != nil {
		return fmt.Errorf("build store: %w", err)
	}
	defer closeStore()

	server := api.NewServer(ck, st, c.Logger)
	httpServer := &http.Server{Addr: addr, Handler: server.Router()}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (c *CLI) serveCache(ctx context.Context) (cache.Cache, error) {
	if c.Config.Redis.Enabled {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:      c.Config.Redis.Addr,
			DB:        c.Config.Redis.DB,
			KeyPrefix: "worldseedr",
		})
	}
	return newCache(false, c.Config.CacheDir)
}

func (c *CLI) serveStore(ctx context.Context) (store.Store, func(), error) {
	if c.Config.Mongo.Enabled {
		mongoStore, err := store.NewMongoStore(ctx, store.MongoConfig{
			URI:        c.Config.Mongo.URI,
			Database:   c.Config.Mongo.Database,
			Collection: c.Config.Mongo.Collection,
		})
		if err != nil {
			return nil, nil, err
		}
		return mongoStore, func() { mongoStore.Close(context.Background()) }, nil
	}
	mem := store.NewMemoryStore()
	return mem, func() { mem.Close(context.Background()) }, nil
}
