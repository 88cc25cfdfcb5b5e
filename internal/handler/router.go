package handler

import (
	"net/http"

	"booking-marketplace/internal/domain/user"
	"booking-marketplace/internal/handler/api"
	"booking-marketplace/internal/handler/middleware"
	"booking-marketplace/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Reservation  *api.ReservationHandler
	Availability *api.AvailabilityHandler
	Payment      *api.PaymentHandler
	Point        *api.PointHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: h.Availability.Check},
			{Method: http.MethodGet, Path: "/availability/slots", Handler: h.Availability.OpenSlots},
			// authenticated by the gateway signature, not a bearer token
			{Method: http.MethodPost, Path: "/webhooks/payments", Handler: h.Payment.Webhook},
		})

		authRequired := apiGroup.Group("")
		authRequired.Use(authMiddleware.RequireAuth())
		{
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/reservations", Handler: h.Reservation.Create},
				{Method: http.MethodGet, Path: "/reservations/:id", Handler: h.Reservation.Get},
				{Method: http.MethodPost, Path: "/reservations/:id/cancel", Handler: h.Reservation.Cancel},
				{Method: http.MethodPost, Path: "/reservations/:id/complete", Handler: h.Reservation.Complete},
				{Method: http.MethodPost, Path: "/reservations/:id/no-show", Handler: h.Reservation.NoShow},
				{Method: http.MethodPost, Path: "/reservations/:id/payments", Handler: h.Payment.Prepare},

				{Method: http.MethodPost, Path: "/payments/confirm", Handler: h.Payment.Confirm},
				{Method: http.MethodPost, Path: "/payments/:id/cancel", Handler: h.Payment.Cancel},

				{Method: http.MethodGet, Path: "/users/:id/points/balance", Handler: h.Point.Balance},
				{Method: http.MethodGet, Path: "/users/:id/points/history", Handler: h.Point.History},
				{
					Method:  http.MethodPost,
					Path:    "/internal/points/bonus",
					Handler: h.Point.CreditBonus,
					Mw:      []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleAdmin)},
				},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
