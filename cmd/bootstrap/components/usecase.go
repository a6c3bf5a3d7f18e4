package components

import (
	"log/slog"
	"time"

	"libreserve/internal/domain/schedule"
	"libreserve/internal/infra/availability"
	"libreserve/internal/pkg/clock"
	"libreserve/internal/pkg/config"
	"libreserve/internal/usecase/commands"
	"libreserve/internal/usecase/queries"
	"libreserve/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewSchedulingEngine,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewResourceQueries,
		queries.NewReservationQueries,
	),
)

func NewSchedulingEngine(
	cfg config.Config,
	catalog shared.CatalogStore,
	store shared.ReservationStore,
	index *availability.Index,
	clk clock.Clock,
	loc *time.Location,
	hours schedule.OperatingHours,
	logger *slog.Logger,
) commands.SchedulingEngine {
	return commands.NewSchedulingEngine(
		catalog, store, index, clk, loc, hours, cfg.Booking.MaxCommitAttempts, logger,
	)
}
