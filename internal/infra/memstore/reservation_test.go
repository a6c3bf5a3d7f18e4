//go:build unit

package memstore_test

import (
	"context"
	"testing"
	"time"

	"libreserve/internal/domain/reservation"
	"libreserve/internal/domain/resource"
	"libreserve/internal/domain/schedule"
	"libreserve/internal/infra"
	"libreserve/internal/infra/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLaptopReservation(t *testing.T, userID string, createdAt time.Time) *reservation.Reservation {
	t.Helper()
	res, err := resource.NewLaptop("laptop-1", "Laptop 1", "central", resource.StatusActive, "linux", "dell")
	require.NoError(t, err)

	d := schedule.DateOf(createdAt, time.UTC)
	slot, err := schedule.NewTimeSlot(d.At(10, 0, time.UTC), d.At(11, 0, time.UTC))
	require.NoError(t, err)
	return reservation.NewReservation(res, userID, nil, d, slot, createdAt)
}

func TestReservationStoreCRUD(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

	t.Run("create then find", func(t *testing.T) {
		store := memstore.NewReservationStore()
		rec := newLaptopReservation(t, "user-7", now)
		require.NoError(t, store.Create(ctx, rec))

		found, err := store.FindByID(ctx, rec.ID())
		require.NoError(t, err)
		assert.Equal(t, rec.ID(), found.ID())
		assert.Equal(t, reservation.StatusRequested, found.Status())
	})

	t.Run("duplicate create conflicts", func(t *testing.T) {
		store := memstore.NewReservationStore()
		rec := newLaptopReservation(t, "user-7", now)
		require.NoError(t, store.Create(ctx, rec))

		err := store.Create(ctx, rec)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})

	t.Run("find missing id", func(t *testing.T) {
		store := memstore.NewReservationStore()
		_, err := store.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("update persists transitions", func(t *testing.T) {
		store := memstore.NewReservationStore()
		rec := newLaptopReservation(t, "user-7", now)
		require.NoError(t, store.Create(ctx, rec))

		require.NoError(t, rec.Confirm(now))
		require.NoError(t, store.Update(ctx, rec))

		found, err := store.FindByID(ctx, rec.ID())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, found.Status())
	})

	t.Run("update of unknown record fails", func(t *testing.T) {
		store := memstore.NewReservationStore()
		rec := newLaptopReservation(t, "user-7", now)
		err := store.Update(ctx, rec)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("stored records are snapshots", func(t *testing.T) {
		store := memstore.NewReservationStore()
		rec := newLaptopReservation(t, "user-7", now)
		require.NoError(t, store.Create(ctx, rec))

		// Mutating the caller's copy must not leak into the store.
		require.NoError(t, rec.Confirm(now))

		found, err := store.FindByID(ctx, rec.ID())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusRequested, found.Status())
	})
}

func TestReservationStoreQueries(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	store := memstore.NewReservationStore()

	first := newLaptopReservation(t, "user-7", base)
	second := newLaptopReservation(t, "user-7", base.Add(time.Minute))
	other := newLaptopReservation(t, "user-9", base)
	require.NoError(t, store.Create(ctx, first))
	require.NoError(t, store.Create(ctx, second))
	require.NoError(t, store.Create(ctx, other))

	require.NoError(t, second.Confirm(base.Add(time.Minute)))
	require.NoError(t, store.Update(ctx, second))
	require.NoError(t, first.Expire(base.Add(2*time.Minute)))
	require.NoError(t, store.Update(ctx, first))

	t.Run("find by user newest first", func(t *testing.T) {
		recs, err := store.FindByUser(ctx, "user-7")
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, second.ID(), recs[0].ID())
		assert.Equal(t, first.ID(), recs[1].ID())
	})

	t.Run("active by user and class skips terminal records", func(t *testing.T) {
		recs, err := store.FindActiveByUserClass(ctx, "user-7", resource.ClassLaptop)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, second.ID(), recs[0].ID())

		recs, err = store.FindActiveByUserClass(ctx, "user-7", resource.ClassBook)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("find confirmed", func(t *testing.T) {
		recs, err := store.FindConfirmed(ctx)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, second.ID(), recs[0].ID())
	})

	t.Run("find requested before cutoff", func(t *testing.T) {
		recs, err := store.FindRequestedBefore(ctx, base)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, other.ID(), recs[0].ID())

		recs, err = store.FindRequestedBefore(ctx, base.Add(-time.Second))
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("find confirmed ending before", func(t *testing.T) {
		endOfDay := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)
		recs, err := store.FindConfirmedEndingBefore(ctx, endOfDay)
		require.NoError(t, err)
		require.Len(t, recs, 1)

		beforeSlotEnd := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
		recs, err = store.FindConfirmedEndingBefore(ctx, beforeSlotEnd)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}
