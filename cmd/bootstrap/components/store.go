package components

import (
	"context"
	"log/slog"
	"time"

	"libreserve/internal/infra/availability"
	"libreserve/internal/infra/memstore"
	"libreserve/internal/infra/pgstore"
	"libreserve/internal/pkg/config"
	"libreserve/internal/pkg/errs"
	"libreserve/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStores,
		availability.NewIndex,
	),
)

// NewStores selects the persistence backend. The availability index is
// authoritative for slot decisions either way; the store is the system of
// record the index is rebuilt from at startup.
func NewStores(
	lc fx.Lifecycle,
	cfg config.Config,
	loc *time.Location,
	logger *slog.Logger,
) (shared.CatalogStore, shared.ReservationStore, error) {
	switch cfg.Store.Driver {
	case "postgres":
		pool, cleanup, err := pgstore.Connect(context.Background(), cfg.DB)
		if err != nil {
			return nil, nil, errs.Wrap(err, "failed to connect to postgres")
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				if cleanup != nil {
					cleanup()
				}
				return nil
			},
		})
		logger.Info("using postgres store", "host", cfg.DB.Host, "db", cfg.DB.DBName)
		return pgstore.NewCatalogStore(pool), pgstore.NewReservationStore(pool, loc), nil

	case "memory", "":
		catalog, err := memstore.LoadCatalog(cfg.Store.CatalogPath)
		if err != nil {
			return nil, nil, errs.Wrap(err, "failed to load resource catalog")
		}
		logger.Info("using in-memory store", "catalog", cfg.Store.CatalogPath)
		return catalog, memstore.NewReservationStore(), nil

	default:
		return nil, nil, errs.Newf("unknown store driver: %s", cfg.Store.Driver)
	}
}
