package bootstrap

import (
	"context"
	"log/slog"

	"booking-marketplace/internal/pkg/config"
	"booking-marketplace/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewScheduler,
	),
	fx.Invoke(startWorker),
)

func startWorker(lc fx.Lifecycle, cfg config.WorkerConfig, scheduler *worker.Scheduler, logger *slog.Logger) error {
	if !cfg.Enabled {
		logger.Info("worker scheduler disabled")
		return nil
	}
	if err := scheduler.Register(); err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: scheduler.Stop,
	})
	return nil
}
