package components

import (
	"villabook/internal/handler"
	"villabook/internal/handler/api"
	"villabook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewOperatorHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
