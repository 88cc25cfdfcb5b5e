package cache

import (
	"context"
	"time"

	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrapf(err, "failed to reach redis at %s", cfg.Addr)
	}
	return client, nil
}
