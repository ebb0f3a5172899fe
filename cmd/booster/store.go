package main

import (
	"context"

	"github.com/KirkDiggler/booster-sim/internal/config"
	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/redis"
	"github.com/KirkDiggler/booster-sim/internal/repositories/cards"
)

// cardStore is what the commands need from a store: reads for the catalog and
// writes for seeding
type cardStore interface {
	cards.Repository
	cards.Writer
}

func openStore(ctx context.Context, cfg *config.Config) (cardStore, func() error, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.Dial(cfg.RedisAddr, &redis.Options{
			PoolSize:   cfg.RedisPoolSize,
			MaxRetries: cfg.RedisMaxRetries,
			UseTLS:     cfg.RedisTLS,
		})
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "redis at %s is unreachable", cfg.RedisAddr)
		}

		store, err := cards.NewRedis(&cards.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return store, client.Close, nil

	case config.StoreSQLite:
		store, err := cards.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	default:
		return nil, nil, errors.InvalidArgumentf("unknown store %q", cfg.Store)
	}
}
