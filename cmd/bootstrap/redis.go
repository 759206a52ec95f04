package bootstrap

import (
	"context"

	"order-saga/internal/consumer"
	"order-saga/internal/infra/dedupe"
	"order-saga/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		fx.Annotate(
			NewDeduper,
			fx.As(new(consumer.Deduper)),
		),
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	rdb := dedupe.NewClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return rdb
}

func NewDeduper(rdb *redis.Client, cfg config.Config) *dedupe.Store {
	return dedupe.NewStore(rdb, cfg.Redis.DedupeTTL)
}
