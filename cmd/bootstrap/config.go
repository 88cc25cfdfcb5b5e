package bootstrap

import (
	"booking-marketplace/internal/domain/point"
	"booking-marketplace/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.JWTConfig { return cfg.JWT },
		func(cfg config.Config) config.GatewayConfig { return cfg.Gateway },
		func(cfg config.Config) config.PaymentConfig { return cfg.Payment },
		func(cfg config.Config) config.PointsConfig { return cfg.Points },
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
		func(cfg config.Config) config.AMQPConfig { return cfg.AMQP },
		func(cfg config.Config) config.WorkerConfig { return cfg.Worker },
		NewPointPolicy,
	),
)

// NewPointPolicy fails startup on an invalid earning configuration.
func NewPointPolicy(cfg config.PointsConfig) (point.Policy, error) {
	return point.ParsePolicy(
		cfg.EarningRatePercent,
		cfg.EarningCapAmount,
		cfg.InfluencerMultiplier,
		cfg.AvailabilityDelayDays,
		cfg.ExpiryDays,
	)
}
