package schedule

import (
	"time"

	"libreserve/internal/pkg/errs"
)

const dateLayout = "2006-01-02"

// Date is a calendar day in the service-local zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, errs.Mark(err, errs.ErrInvalidDate)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func DateOf(t time.Time, loc *time.Location) Date {
	lt := t.In(loc)
	return Date{Year: lt.Year(), Month: lt.Month(), Day: lt.Day()}
}

func (d Date) String() string {
	return d.StartOfDay(time.UTC).Format(dateLayout)
}

// At returns the instant at hh:mm on this day in loc.
func (d Date) At(hh, mm int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hh, mm, 0, 0, loc)
}

func (d Date) StartOfDay(loc *time.Location) time.Time {
	return d.At(0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	t := d.StartOfDay(time.UTC).AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ValidateRequestDate enforces the booking-window rule: only the current and
// the next service-local calendar day are acceptable at request time.
func ValidateRequestDate(d Date, now time.Time, loc *time.Location) error {
	today := DateOf(now, loc)
	if d == today || d == today.AddDays(1) {
		return nil
	}
	return errs.ErrInvalidDate
}
