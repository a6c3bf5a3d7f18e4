package schedule

import (
	"fmt"
	"time"

	"libreserve/internal/domain/resource"
	"libreserve/internal/pkg/errs"
)

// TimeSlot is a half-open interval [start, end). Book loans carry no end
// time until returned and are modeled as open-ended slots.
type TimeSlot struct {
	start     time.Time
	end       time.Time
	openEnded bool
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, errs.ErrInvalidTimeRange
	}
	return TimeSlot{start: start, end: end}, nil
}

func NewOpenEndedSlot(start time.Time) TimeSlot {
	return TimeSlot{start: start, openEnded: true}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

// End is the zero time for open-ended slots; check OpenEnded first.
func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) OpenEnded() bool {
	return ts.openEnded
}

func (ts TimeSlot) Duration() time.Duration {
	if ts.openEnded {
		return 0
	}
	return ts.end.Sub(ts.start)
}

// Overlaps implements the half-open interval test: [a,b) and [c,d) overlap
// iff a < d && c < b. An open-ended slot behaves as if its end were +inf.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	tsEndsAfter := ts.openEnded || other.start.Before(ts.end)
	otherEndsAfter := other.openEnded || ts.start.Before(other.end)
	return tsEndsAfter && otherEndsAfter
}

// EndedBy reports whether the slot's end time has passed at now. Open-ended
// slots never end on their own; a loan ends only when returned.
func (ts TimeSlot) EndedBy(now time.Time) bool {
	if ts.openEnded {
		return false
	}
	return !now.Before(ts.end)
}

func (ts TimeSlot) String() string {
	if ts.openEnded {
		return fmt.Sprintf("[%s,)", ts.start.Format("15:04"))
	}
	return fmt.Sprintf("[%s,%s)", ts.start.Format("15:04"), ts.end.Format("15:04"))
}

// OperatingHours bounds the bookable part of a calendar day, whole hours.
type OperatingHours struct {
	OpenHour  int
	CloseHour int
}

func (h OperatingHours) Open(d Date, loc *time.Location) time.Time {
	return d.At(h.OpenHour, 0, loc)
}

func (h OperatingHours) Close(d Date, loc *time.Location) time.Time {
	return d.At(h.CloseHour, 0, loc)
}

// Enumerated laptop slot durations.
var laptopDurations = []time.Duration{time.Hour, 2 * time.Hour}

// ValidateSlotGrammar checks the slot shape a resource class accepts.
// Laptops: whole-hour start, 1h or 2h duration, inside operating hours.
// Cubicles: any non-degenerate range inside operating hours.
// Books: open-ended only; bounded slots are rejected.
func ValidateSlotGrammar(class resource.Class, d Date, slot TimeSlot, hours OperatingHours, loc *time.Location) error {
	if class == resource.ClassBook {
		if !slot.openEnded {
			return errs.ErrInvalidTimeRange
		}
		return nil
	}

	if slot.openEnded {
		return errs.ErrInvalidTimeRange
	}

	open := hours.Open(d, loc)
	close := hours.Close(d, loc)
	if slot.start.Before(open) || slot.end.After(close) {
		return errs.ErrInvalidTimeRange
	}

	if class == resource.ClassLaptop {
		lt := slot.start.In(loc)
		if lt.Minute() != 0 || lt.Second() != 0 || lt.Nanosecond() != 0 {
			return errs.ErrInvalidTimeRange
		}
		dur := slot.Duration()
		for _, allowed := range laptopDurations {
			if dur == allowed {
				return nil
			}
		}
		return errs.ErrInvalidTimeRange
	}

	return nil
}
