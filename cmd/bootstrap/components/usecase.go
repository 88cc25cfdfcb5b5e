package components

import (
	"booking-marketplace/internal/pkg/clock"
	"booking-marketplace/internal/usecase"
	"booking-marketplace/internal/usecase/commands"
	"booking-marketplace/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
		commands.NewPaymentUseCase,
		commands.NewPointUseCase,
		commands.NewOutboxUseCase,
		// payment settlement runs after a reservation cancellation commits
		func(p commands.PaymentCommands) commands.CancellationSettler { return p },
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewAvailabilityQueries,
		queries.NewPointQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
