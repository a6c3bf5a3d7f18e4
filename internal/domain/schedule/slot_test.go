//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"libreserve/internal/domain/resource"
	"libreserve/internal/domain/schedule"
	"libreserve/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHours = schedule.OperatingHours{OpenHour: 9, CloseHour: 21}

func mustSlot(t *testing.T, d schedule.Date, sh, sm, eh, em int) schedule.TimeSlot {
	t.Helper()
	slot, err := schedule.NewTimeSlot(d.At(sh, sm, time.UTC), d.At(eh, em, time.UTC))
	require.NoError(t, err)
	return slot
}

func TestNewTimeSlot(t *testing.T) {
	d := schedule.Date{Year: 2026, Month: time.March, Day: 15}

	t.Run("start must precede end", func(t *testing.T) {
		_, err := schedule.NewTimeSlot(d.At(10, 0, time.UTC), d.At(10, 0, time.UTC))
		assert.ErrorIs(t, err, errs.ErrInvalidTimeRange)

		_, err = schedule.NewTimeSlot(d.At(11, 0, time.UTC), d.At(10, 0, time.UTC))
		assert.ErrorIs(t, err, errs.ErrInvalidTimeRange)
	})

	t.Run("string form", func(t *testing.T) {
		slot := mustSlot(t, d, 9, 0, 10, 0)
		assert.Equal(t, "[09:00,10:00)", slot.String())

		open := schedule.NewOpenEndedSlot(d.At(14, 30, time.UTC))
		assert.Equal(t, "[14:30,)", open.String())
		assert.True(t, open.OpenEnded())
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	d := schedule.Date{Year: 2026, Month: time.March, Day: 15}

	cases := []struct {
		name    string
		a, b    schedule.TimeSlot
		overlap bool
	}{
		{
			name: "identical", overlap: true,
			a: mustSlot(t, d, 10, 0, 11, 0), b: mustSlot(t, d, 10, 0, 11, 0),
		},
		{
			name: "partial", overlap: true,
			a: mustSlot(t, d, 10, 0, 12, 0), b: mustSlot(t, d, 11, 0, 13, 0),
		},
		{
			name: "contained", overlap: true,
			a: mustSlot(t, d, 9, 0, 21, 0), b: mustSlot(t, d, 12, 0, 13, 0),
		},
		{
			name: "touching endpoints do not overlap", overlap: false,
			a: mustSlot(t, d, 10, 0, 11, 0), b: mustSlot(t, d, 11, 0, 12, 0),
		},
		{
			name: "disjoint", overlap: false,
			a: mustSlot(t, d, 9, 0, 10, 0), b: mustSlot(t, d, 14, 0, 15, 0),
		},
		{
			name: "open-ended swallows later slots", overlap: true,
			a: schedule.NewOpenEndedSlot(d.At(10, 0, time.UTC)), b: mustSlot(t, d, 18, 0, 19, 0),
		},
		{
			name: "open-ended does not reach earlier slots", overlap: false,
			a: schedule.NewOpenEndedSlot(d.At(10, 0, time.UTC)), b: mustSlot(t, d, 9, 0, 10, 0),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.overlap, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestTimeSlotEndedBy(t *testing.T) {
	d := schedule.Date{Year: 2026, Month: time.March, Day: 15}
	slot := mustSlot(t, d, 10, 0, 11, 0)

	assert.False(t, slot.EndedBy(d.At(10, 59, time.UTC)))
	assert.True(t, slot.EndedBy(d.At(11, 0, time.UTC)))

	loan := schedule.NewOpenEndedSlot(d.At(10, 0, time.UTC))
	assert.False(t, loan.EndedBy(d.At(23, 59, time.UTC)), "a loan never ends on its own")
}

func TestValidateSlotGrammar(t *testing.T) {
	d := schedule.Date{Year: 2026, Month: time.March, Day: 15}
	loc := time.UTC

	cases := []struct {
		name  string
		class resource.Class
		slot  schedule.TimeSlot
		errIs error
	}{
		{name: "laptop one hour", class: resource.ClassLaptop, slot: mustSlot(t, d, 10, 0, 11, 0)},
		{name: "laptop two hours", class: resource.ClassLaptop, slot: mustSlot(t, d, 10, 0, 12, 0)},
		{name: "laptop three hours rejected", class: resource.ClassLaptop, slot: mustSlot(t, d, 10, 0, 13, 0), errIs: errs.ErrInvalidTimeRange},
		{name: "laptop half-hour start rejected", class: resource.ClassLaptop, slot: mustSlot(t, d, 10, 30, 11, 30), errIs: errs.ErrInvalidTimeRange},
		{name: "laptop before opening rejected", class: resource.ClassLaptop, slot: mustSlot(t, d, 8, 0, 9, 0), errIs: errs.ErrInvalidTimeRange},
		{name: "laptop past closing rejected", class: resource.ClassLaptop, slot: mustSlot(t, d, 20, 0, 22, 0), errIs: errs.ErrInvalidTimeRange},
		{name: "laptop last slot of the day", class: resource.ClassLaptop, slot: mustSlot(t, d, 20, 0, 21, 0)},
		{name: "laptop open-ended rejected", class: resource.ClassLaptop, slot: schedule.NewOpenEndedSlot(d.At(10, 0, loc)), errIs: errs.ErrInvalidTimeRange},
		{name: "cubicle arbitrary range", class: resource.ClassCubicle, slot: mustSlot(t, d, 13, 15, 14, 45)},
		{name: "cubicle outside hours rejected", class: resource.ClassCubicle, slot: mustSlot(t, d, 20, 0, 21, 30), errIs: errs.ErrInvalidTimeRange},
		{name: "cubicle open-ended rejected", class: resource.ClassCubicle, slot: schedule.NewOpenEndedSlot(d.At(10, 0, loc)), errIs: errs.ErrInvalidTimeRange},
		{name: "book open-ended", class: resource.ClassBook, slot: schedule.NewOpenEndedSlot(d.At(10, 0, loc))},
		{name: "book bounded rejected", class: resource.ClassBook, slot: mustSlot(t, d, 10, 0, 11, 0), errIs: errs.ErrInvalidTimeRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := schedule.ValidateSlotGrammar(tc.class, d, tc.slot, testHours, loc)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateQuorum(t *testing.T) {
	cases := []struct {
		name  string
		class resource.Class
		count int
		errIs error
	}{
		{name: "cubicle at quorum", class: resource.ClassCubicle, count: 3},
		{name: "cubicle above quorum", class: resource.ClassCubicle, count: 6},
		{name: "cubicle below quorum", class: resource.ClassCubicle, count: 2, errIs: errs.ErrQuorumNotMet},
		{name: "cubicle solo", class: resource.ClassCubicle, count: 1, errIs: errs.ErrQuorumNotMet},
		{name: "laptop solo", class: resource.ClassLaptop, count: 1},
		{name: "book solo", class: resource.ClassBook, count: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := schedule.ValidateQuorum(tc.class, tc.count)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
