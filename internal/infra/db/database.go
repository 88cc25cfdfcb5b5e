package db

import (
	"context"
	"log/slog"
	"time"

	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "booking-marketplace"
	connectTimeout  = 10 * time.Second
)

// Connect opens the pool and verifies one round trip before returning it.
// Sessions are tagged with the application name so slot-lock waits are attributable in pg_stat_activity.
func Connect(cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, nil, errs.Wrap(err, "parse database config")
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 10 * time.Minute
	poolCfg.HealthCheckPeriod = time.Minute
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, errs.Wrap(err, "open database pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, errs.Wrapf(err, "ping database %s@%s", cfg.DBName, cfg.Host)
	}

	cleanup := func() {
		stat := pool.Stat()
		pool.Close()
		slog.Info("database pool closed",
			"acquired_total", stat.AcquireCount(),
			"canceled_acquires", stat.CanceledAcquireCount(),
			"max_conns", stat.MaxConns())
	}
	return pool, cleanup, nil
}
