//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"libreserve/internal/domain/reservation"
	"libreserve/internal/domain/resource"
	"libreserve/internal/domain/schedule"
	"libreserve/internal/infra/memstore"
	"libreserve/internal/pkg/errs"
	"libreserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReservation(t *testing.T, store *memstore.ReservationStore, userID string, confirm bool) *reservation.Reservation {
	t.Helper()
	res, err := resource.NewLaptop("laptop-1", "Laptop 1", "central", resource.StatusActive, "linux", "dell")
	require.NoError(t, err)

	d := schedule.Date{Year: 2026, Month: time.March, Day: 15}
	slot, err := schedule.NewTimeSlot(d.At(10, 0, time.UTC), d.At(11, 0, time.UTC))
	require.NoError(t, err)
	now := d.At(8, 0, time.UTC)

	rec := reservation.NewReservation(res, userID, nil, d, slot, now)
	require.NoError(t, store.Create(context.Background(), rec))
	if confirm {
		require.NoError(t, rec.Confirm(now))
		require.NoError(t, store.Update(context.Background(), rec))
	}
	return rec
}

func newReservationQueries(t *testing.T) (queries.ReservationQueries, *memstore.ReservationStore) {
	t.Helper()
	laptop, err := resource.NewLaptop("laptop-1", "Laptop 1", "central", resource.StatusActive, "linux", "dell")
	require.NoError(t, err)
	catalog := memstore.NewCatalogStore([]*resource.Resource{laptop})
	store := memstore.NewReservationStore()
	return queries.NewReservationQueries(store, catalog), store
}

func TestReservationQueriesGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("owner reads their reservation", func(t *testing.T) {
		q, store := newReservationQueries(t)
		rec := seedReservation(t, store, "user-7", true)

		view, err := q.GetByID(ctx, "user-7", false, rec.ID())
		require.NoError(t, err)
		assert.Equal(t, rec.ID(), view.ID)
		assert.Equal(t, "Laptop 1", view.ResourceName, "resource name resolved from the catalog")
		assert.Equal(t, "confirmed", view.Status)
		assert.Equal(t, "[10:00,11:00)", view.Slot)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		q, store := newReservationQueries(t)
		rec := seedReservation(t, store, "user-7", true)

		_, err := q.GetByID(ctx, "user-9", false, rec.ID())
		assert.ErrorIs(t, err, errs.ErrNotOwner)
	})

	t.Run("admin reads any reservation", func(t *testing.T) {
		q, store := newReservationQueries(t)
		rec := seedReservation(t, store, "user-7", true)

		view, err := q.GetByID(ctx, "admin-1", true, rec.ID())
		require.NoError(t, err)
		assert.Equal(t, rec.ID(), view.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		q, _ := newReservationQueries(t)
		_, err := q.GetByID(ctx, "user-7", false, uuid.New())
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}

func TestReservationQueriesListByUser(t *testing.T) {
	ctx := context.Background()
	q, store := newReservationQueries(t)

	seedReservation(t, store, "user-7", true)
	seedReservation(t, store, "user-7", false)
	seedReservation(t, store, "user-9", true)

	views, err := q.ListByUser(ctx, "user-7")
	require.NoError(t, err)
	assert.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, "user-7", v.UserID)
	}
}

func TestReservationQueriesActiveByUser(t *testing.T) {
	ctx := context.Background()
	q, store := newReservationQueries(t)

	confirmed := seedReservation(t, store, "user-7", true)
	requested := seedReservation(t, store, "user-7", false)

	// A cancelled record must not appear.
	cancelled := seedReservation(t, store, "user-7", true)
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, cancelled.Cancel(now))
	require.NoError(t, store.Update(ctx, cancelled))

	views, err := q.ActiveByUser(ctx, "user-7")
	require.NoError(t, err)
	require.Len(t, views, 2)

	ids := map[uuid.UUID]bool{}
	for _, v := range views {
		ids[v.ID] = true
	}
	assert.True(t, ids[confirmed.ID()])
	assert.True(t, ids[requested.ID()])
	assert.False(t, ids[cancelled.ID()])
}
