package components

import (
	"libreserve/internal/handler"
	"libreserve/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewResourceHandler,
		api.NewReservationHandler,
	),
	fx.Invoke(handler.NewRouter),
)
