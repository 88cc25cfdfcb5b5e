package bootstrap

import (
	"context"
	"log/slog"

	"booking-marketplace/internal/infra/db"
	"booking-marketplace/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB fails fast during graph construction when the database is unreachable;
// the pool is closed after every other component has stopped.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("database pool ready",
		"host", cfg.DB.Host,
		"db", cfg.DB.DBName,
		"max_conns", pool.Config().MaxConns)

	lc.Append(fx.StopHook(func(context.Context) {
		cleanup()
	}))
	return pool, nil
}
