package memcache_fx

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"voyage/internal/config"
	mem "voyage/pkg/memcache"
)

var Module = fx.Provide(provideStore)

const (
	keyPrefix       = "voyage:"
	janitorRunEvery = 5 * time.Minute
)

// provideStore uses Redis when REDIS_URL is set and an in-process map otherwise.
func provideStore(lc fx.Lifecycle, cfg config.Config) (mem.Store, error) {
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store, err := mem.NewRedisStore(ctx, cfg.RedisURL, keyPrefix)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return store.Close()
			},
		})
		slog.Info("suggestion cache backed by redis")
		return store, nil
	}

	store := mem.NewMemoryStore()
	janitorCtx, stop := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go store.RunJanitor(janitorCtx, janitorRunEvery)
			return nil
		},
		OnStop: func(context.Context) error {
			stop()
			return nil
		},
	})
	slog.Info("suggestion cache kept in memory")
	return store, nil
}
