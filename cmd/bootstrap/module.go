package bootstrap

import (
	"libreserve/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	BookingModule,
	components.StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
)
