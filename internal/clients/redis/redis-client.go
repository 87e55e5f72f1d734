package redis_client

import (
	"context"
	"log/slog"

	"github.com/init-pkg/sheet-loader/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// New returns nil when no address is configured; consumers treat a nil
// client as "store nothing".
func New(cfg *config.Config, lc fx.Lifecycle, log *slog.Logger) *redis.Client {
	rcfg := cfg.Clients.Redis
	if rcfg.Addr == "" {
		log.Info("redis not configured, import outcomes will not be stored")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rcfg.Addr,
		Password: rcfg.Password,
		DB:       rcfg.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn("redis unreachable", "addr", rcfg.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return client
}
