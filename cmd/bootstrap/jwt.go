package bootstrap

import (
	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

// Tokens are issued by the identity service; this process only verifies them.
func NewJWTService(cfg config.JWTConfig) *jwt.Service {
	return jwt.NewService(cfg.Secret,
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithLeeway(cfg.Leeway),
	)
}
