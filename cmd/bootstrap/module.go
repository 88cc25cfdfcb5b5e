package bootstrap

import (
	"log/slog"

	"booking-marketplace/cmd/bootstrap/components"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Module is the whole process: HTTP API, settlement workers and their shared infrastructure.
var Module = fx.Options(
	fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
		fxLogger := &fxevent.SlogLogger{Logger: logger.With("component", "fx")}
		fxLogger.UseLogLevel(slog.LevelDebug)
		return fxLogger
	}),
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	InfraModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
	WorkerModule,
)
