package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"villabook/internal/domain/guest"
	"villabook/internal/handler/api"
	"villabook/internal/handler/middleware"
	"villabook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	availabilityHandler *api.AvailabilityHandler,
	bookingHandler *api.BookingHandler,
	operatorHandler *api.OperatorHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, availabilityHandler, bookingHandler, operatorHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	availabilityHandler *api.AvailabilityHandler,
	bookingHandler *api.BookingHandler,
	operatorHandler *api.OperatorHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/auth/login", Handler: authHandler.Login},

			{Method: http.MethodGet, Path: "/units", Handler: availabilityHandler.ListUnits},
			{Method: http.MethodGet, Path: "/units/:id", Handler: availabilityHandler.GetUnit},
			{Method: http.MethodGet, Path: "/units/:id/unavailable", Handler: availabilityHandler.UnitUnavailable},
			{Method: http.MethodGet, Path: "/property/unavailable", Handler: availabilityHandler.PropertyUnavailable},

			{Method: http.MethodPost, Path: "/bookings/quote", Handler: bookingHandler.Quote},
			{Method: http.MethodPost, Path: "/bookings/order", Handler: bookingHandler.OpenOrder},
			{Method: http.MethodPost, Path: "/bookings/confirm", Handler: bookingHandler.Confirm},
			{Method: http.MethodGet, Path: "/bookings/:id", Handler: bookingHandler.GetBooking},
		})

		operator := apiGroup.Group("/operator")
		operator.Use(authMiddleware.RequireAuth())
		operator.Use(authMiddleware.RequireRoleAtLeast(guest.RoleOperator))
		{
			addRoutes(operator, []route{
				{Method: http.MethodPost, Path: "/bookings", Handler: operatorHandler.CreateBooking},
				{Method: http.MethodPost, Path: "/bookings/confirm", Handler: operatorHandler.ConfirmBooking},
				{Method: http.MethodGet, Path: "/bookings", Handler: operatorHandler.ListBookings},
				{Method: http.MethodPost, Path: "/bookings/:id/cancel", Handler: operatorHandler.CancelBooking},
				{Method: http.MethodPatch, Path: "/bookings/:id/refund", Handler: operatorHandler.SetRefundStatus},

				{Method: http.MethodPost, Path: "/blackouts", Handler: operatorHandler.CreateBlackout},
				{Method: http.MethodGet, Path: "/blackouts", Handler: operatorHandler.ListBlackouts},
				{Method: http.MethodDelete, Path: "/blackouts/:id", Handler: operatorHandler.DeleteBlackout},
			})
		}
	}
}

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
