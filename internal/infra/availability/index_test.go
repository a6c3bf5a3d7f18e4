//go:build unit

package availability_test

import (
	"sync"
	"testing"
	"time"

	"libreserve/internal/domain/schedule"
	"libreserve/internal/infra/availability"
	"libreserve/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hours = schedule.OperatingHours{OpenHour: 9, CloseHour: 21}

func slotAt(t *testing.T, d schedule.Date, sh, eh int) schedule.TimeSlot {
	t.Helper()
	slot, err := schedule.NewTimeSlot(d.At(sh, 0, time.UTC), d.At(eh, 0, time.UTC))
	require.NoError(t, err)
	return slot
}

func TestIndexCommitAndRelease(t *testing.T) {
	d := schedule.Date{Year: 2026, Month: time.March, Day: 15}

	t.Run("commit blocks overlapping slots", func(t *testing.T) {
		idx := availability.NewIndex()
		slot := slotAt(t, d, 10, 11)

		assert.True(t, idx.IsFree("laptop-1", d, slot))
		require.NoError(t, idx.Commit("laptop-1", d, slot))

		assert.False(t, idx.IsFree("laptop-1", d, slot))
		assert.ErrorIs(t, idx.Commit("laptop-1", d, slot), errs.ErrSlotUnavailable)
		assert.ErrorIs(t, idx.Commit("laptop-1", d, slotAt(t, d, 10, 12)), errs.ErrSlotUnavailable)
	})

	t.Run("adjacent slots are independent", func(t *testing.T) {
		idx := availability.NewIndex()
		require.NoError(t, idx.Commit("laptop-1", d, slotAt(t, d, 10, 11)))
		require.NoError(t, idx.Commit("laptop-1", d, slotAt(t, d, 11, 12)))
	})

	t.Run("resources and days are independent", func(t *testing.T) {
		idx := availability.NewIndex()
		slot := slotAt(t, d, 10, 11)
		require.NoError(t, idx.Commit("laptop-1", d, slot))

		assert.True(t, idx.IsFree("laptop-2", d, slot))
		assert.True(t, idx.IsFree("laptop-1", d.AddDays(1), slotAt(t, d.AddDays(1), 10, 11)))
	})

	t.Run("release frees the slot immediately", func(t *testing.T) {
		idx := availability.NewIndex()
		slot := slotAt(t, d, 10, 11)
		require.NoError(t, idx.Commit("laptop-1", d, slot))

		idx.Release("laptop-1", d, slot)
		assert.True(t, idx.IsFree("laptop-1", d, slot))
		require.NoError(t, idx.Commit("laptop-1", d, slot))
	})

	t.Run("releasing an uncommitted slot is a no-op", func(t *testing.T) {
		idx := availability.NewIndex()
		idx.Release("laptop-1", d, slotAt(t, d, 10, 11))
		assert.True(t, idx.IsFree("laptop-1", d, slotAt(t, d, 10, 11)))
	})
}

func TestIndexLoans(t *testing.T) {
	d := schedule.Date{Year: 2026, Month: time.March, Day: 15}
	loan := schedule.NewOpenEndedSlot(d.At(10, 0, time.UTC))

	t.Run("copies bound concurrent loans", func(t *testing.T) {
		idx := availability.NewIndex()
		idx.SetCopies("book-1", 2)

		require.NoError(t, idx.Commit("book-1", d, loan))
		require.NoError(t, idx.Commit("book-1", d, loan))
		assert.Equal(t, 2, idx.ActiveLoans("book-1"))

		assert.False(t, idx.IsFree("book-1", d, loan))
		assert.ErrorIs(t, idx.Commit("book-1", d, loan), errs.ErrSlotUnavailable)

		idx.Release("book-1", d, loan)
		assert.Equal(t, 1, idx.ActiveLoans("book-1"))
		assert.True(t, idx.IsFree("book-1", d, loan))
	})

	t.Run("unregistered book has no copies", func(t *testing.T) {
		idx := availability.NewIndex()
		assert.ErrorIs(t, idx.Commit("book-x", d, loan), errs.ErrSlotUnavailable)
	})

	t.Run("loan count never goes negative", func(t *testing.T) {
		idx := availability.NewIndex()
		idx.SetCopies("book-1", 1)
		idx.Release("book-1", d, loan)
		assert.Equal(t, 0, idx.ActiveLoans("book-1"))
	})
}

func TestIndexFreeWindows(t *testing.T) {
	d := schedule.Date{Year: 2026, Month: time.March, Day: 15}
	idx := availability.NewIndex()
	require.NoError(t, idx.Commit("laptop-1", d, slotAt(t, d, 12, 13)))

	windows := idx.FreeWindows("laptop-1", d, hours, time.UTC)
	require.Len(t, windows, 2)
	assert.Equal(t, "[09:00,12:00)", windows[0].String())
	assert.Equal(t, "[13:00,21:00)", windows[1].String())
}

func TestIndexCheckConsistency(t *testing.T) {
	d := schedule.Date{Year: 2026, Month: time.March, Day: 15}
	idx := availability.NewIndex()
	require.NoError(t, idx.Commit("laptop-1", d, slotAt(t, d, 10, 11)))
	require.NoError(t, idx.Commit("laptop-1", d, slotAt(t, d, 11, 12)))

	assert.NoError(t, idx.CheckConsistency("laptop-1", d))
}

func TestIndexConcurrentCommits(t *testing.T) {
	d := schedule.Date{Year: 2026, Month: time.March, Day: 15}
	idx := availability.NewIndex()
	slot := slotAt(t, d, 10, 11)

	const attempts = 1000
	wins := make(chan struct{}, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := idx.Commit("laptop-1", d, slot); err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	var count int
	for range wins {
		count++
	}
	assert.Equal(t, 1, count, "exactly one commit must win the slot")
	assert.NoError(t, idx.CheckConsistency("laptop-1", d))
}
