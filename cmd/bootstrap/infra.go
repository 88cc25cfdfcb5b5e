package bootstrap

import (
	"context"
	"log/slog"

	"booking-marketplace/internal/infra/cache"
	"booking-marketplace/internal/infra/gateway"
	"booking-marketplace/internal/infra/messaging"
	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/usecase/commands"
	"booking-marketplace/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		NewRedis,
		fx.Annotate(
			NewBalanceCache,
			fx.As(new(shared.BalanceCache)),
		),
		fx.Annotate(
			NewEventPublisher,
			fx.As(new(shared.EventPublisher)),
		),
		fx.Annotate(
			gateway.NewClient,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.RedisConfig) (*redis.Client, error) {
	client, err := cache.NewRedisClient(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func NewBalanceCache(client *redis.Client) *cache.BalanceCache {
	return cache.NewBalanceCache(client)
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.AMQPConfig) *messaging.AMQPPublisher {
	publisher := messaging.NewAMQPPublisher(cfg)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if err := publisher.Close(); err != nil {
				slog.Warn("failed to close amqp publisher", "error", err.Error())
			}
			return nil
		},
	})
	return publisher
}
