package bootstrap

import (
	"time"

	"libreserve/internal/domain/schedule"
	"libreserve/internal/pkg/config"

	"go.uber.org/fx"
)

var BookingModule = fx.Module("booking",
	fx.Provide(
		NewLocation,
		NewOperatingHours,
	),
)

// NewLocation resolves the service-local calendar zone. Every date rule
// (today-or-tomorrow, operating hours) is evaluated in this zone.
func NewLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Booking.Location()
}

func NewOperatingHours(cfg config.Config) schedule.OperatingHours {
	return schedule.OperatingHours{
		OpenHour:  cfg.Booking.OpenHour,
		CloseHour: cfg.Booking.CloseHour,
	}
}
