package components

import (
	"booking-marketplace/internal/handler"
	"booking-marketplace/internal/handler/api"
	"booking-marketplace/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewAvailabilityHandler,
		api.NewPaymentHandler,
		api.NewPointHandler,
		middleware.NewAuthMiddleware,
		func(
			r *api.ReservationHandler,
			a *api.AvailabilityHandler,
			p *api.PaymentHandler,
			pt *api.PointHandler,
		) handler.Handlers {
			return handler.Handlers{Reservation: r, Availability: a, Payment: p, Point: pt}
		},
	),
	fx.Invoke(handler.NewRouter),
)
