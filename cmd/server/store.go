package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blog-system/blog-api/internal/api/handler"
	"github.com/blog-system/blog-api/internal/core/ports"
	"github.com/blog-system/blog-api/internal/infrastructure/db/mongo"
	"github.com/blog-system/blog-api/internal/infrastructure/db/postgres"
	"github.com/blog-system/blog-api/internal/infrastructure/db/redis"
	"github.com/blog-system/blog-api/internal/pkg/config"
)

// backend is the set of resources opened for the configured store driver.
type backend struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	checks []handler.DependencyCheck
	close  func()
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, store.DB); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

		return &backend{
			posts:  mongo.NewPostRepository(store.DB),
			users:  mongo.NewUserRepository(store.DB),
			checks: []handler.DependencyCheck{{Name: "mongodb", Ping: store.Ping}},
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = store.Close(closeCtx)
			},
		}, nil

	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN, MaxConns: cfg.Postgres.MaxConns})
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Int32("max_conns", pool.Config().MaxConns).Msg("connected to postgres")

		return &backend{
			posts:  postgres.NewPostRepository(pool),
			users:  postgres.NewUserRepository(pool),
			checks: []handler.DependencyCheck{{Name: "postgres", Ping: pool.Ping}},
			close:  pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

// openIdempotency connects Redis when configured. A nil store means
// idempotency keys are ignored.
func openIdempotency(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.IdempotencyStore, *handler.DependencyCheck, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set, idempotency keys disabled")
		return nil, nil, func() {}, nil
	}

	client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.IdempotencyTTL).Msg("connected to redis")

	check := &handler.DependencyCheck{
		Name: "redis",
		Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}
	return redis.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL), check, func() { _ = client.Close() }, nil
}
