package schedule

import (
	"sort"
	"time"
)

// FreeWindows computes the complement of the busy intervals within the
// operating bounds of a day, as an ordered non-overlapping sequence. Busy
// intervals may arrive unsorted; open-ended entries swallow the rest of the
// day from their start.
func FreeWindows(busy []TimeSlot, d Date, hours OperatingHours, loc *time.Location) []TimeSlot {
	open := hours.Open(d, loc)
	close := hours.Close(d, loc)

	sorted := make([]TimeSlot, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].start.Before(sorted[j].start)
	})

	var windows []TimeSlot
	cursor := open
	for _, b := range sorted {
		end := b.end
		if b.openEnded {
			end = close
		}
		if end.Before(open) || !b.start.Before(close) {
			continue
		}
		if cursor.Before(b.start) {
			windows = append(windows, TimeSlot{start: cursor, end: b.start})
		}
		if end.After(cursor) {
			cursor = end
		}
	}
	if cursor.Before(close) {
		windows = append(windows, TimeSlot{start: cursor, end: close})
	}
	return windows
}
