// Package availability maintains the per-resource committed interval sets
// the scheduling engine checks and mutates. The index is the authoritative
// in-process view of what is booked; the reservation store is the system of
// record it is rebuilt from at startup.
package availability

import (
	"sort"
	"sync"
	"time"

	"libreserve/internal/domain/schedule"
	"libreserve/internal/pkg/errs"
)

type dayKey struct {
	resourceID string
	day        schedule.Date
}

// Index holds committed intervals keyed by (resource, day) and open loan
// counts per book resource. Its mutex protects map structure only; the
// engine's per-resource locks serialize check-then-commit sequences, so two
// logically conflicting commits never interleave.
type Index struct {
	mu        sync.RWMutex
	intervals map[dayKey][]schedule.TimeSlot
	loans     map[string]int
	copies    map[string]int
}

func NewIndex() *Index {
	return &Index{
		intervals: make(map[dayKey][]schedule.TimeSlot),
		loans:     make(map[string]int),
		copies:    make(map[string]int),
	}
}

// SetCopies registers the total copy count of a book resource. Called at
// catalog load, before any commit.
func (x *Index) SetCopies(resourceID string, copies int) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.copies[resourceID] = copies
}

// IsFree reports whether slot overlaps no committed interval for the
// resource on the given day. For open-ended loans it reports whether a copy
// remains.
func (x *Index) IsFree(resourceID string, day schedule.Date, slot schedule.TimeSlot) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if slot.OpenEnded() {
		return x.loans[resourceID] < x.copies[resourceID]
	}
	for _, busy := range x.intervals[dayKey{resourceID, day}] {
		if slot.Overlaps(busy) {
			return false
		}
	}
	return true
}

// Commit records a confirmed slot. It re-verifies freeness so a caller that
// skipped IsFree still cannot produce an overlap; a taken slot yields
// ErrSlotUnavailable.
func (x *Index) Commit(resourceID string, day schedule.Date, slot schedule.TimeSlot) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if slot.OpenEnded() {
		if x.loans[resourceID] >= x.copies[resourceID] {
			return errs.ErrSlotUnavailable
		}
		x.loans[resourceID]++
		return nil
	}

	key := dayKey{resourceID, day}
	for _, busy := range x.intervals[key] {
		if slot.Overlaps(busy) {
			return errs.ErrSlotUnavailable
		}
	}
	x.intervals[key] = append(x.intervals[key], slot)
	return nil
}

// Release drops a previously committed slot, making it reportable as free
// immediately. Releasing a slot that was never committed is a no-op.
func (x *Index) Release(resourceID string, day schedule.Date, slot schedule.TimeSlot) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if slot.OpenEnded() {
		if x.loans[resourceID] > 0 {
			x.loans[resourceID]--
		}
		return
	}

	key := dayKey{resourceID, day}
	busy := x.intervals[key]
	for i, b := range busy {
		if b.Start().Equal(slot.Start()) && b.End().Equal(slot.End()) {
			x.intervals[key] = append(busy[:i], busy[i+1:]...)
			return
		}
	}
}

// FreeWindows returns the ordered complement of committed intervals within
// the day's operating bounds.
func (x *Index) FreeWindows(resourceID string, day schedule.Date, hours schedule.OperatingHours, loc *time.Location) []schedule.TimeSlot {
	x.mu.RLock()
	busy := make([]schedule.TimeSlot, len(x.intervals[dayKey{resourceID, day}]))
	copy(busy, x.intervals[dayKey{resourceID, day}])
	x.mu.RUnlock()

	return schedule.FreeWindows(busy, day, hours, loc)
}

// ActiveLoans returns the open loan count for a book resource.
func (x *Index) ActiveLoans(resourceID string) int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.loans[resourceID]
}

// CheckConsistency scans a resource's day for overlapping committed
// intervals. A hit means the commit atomicity guarantee was broken and is
// surfaced as an invariant violation, distinct from any user error.
func (x *Index) CheckConsistency(resourceID string, day schedule.Date) error {
	x.mu.RLock()
	defer x.mu.RUnlock()

	busy := x.intervals[dayKey{resourceID, day}]
	sorted := make([]schedule.TimeSlot, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start().Before(sorted[j].Start())
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			return errs.Mark(
				errs.Newf("overlapping confirmed intervals on %s %s: %s and %s",
					resourceID, day, sorted[i-1], sorted[i]),
				errs.ErrInvariantViolation,
			)
		}
	}
	return nil
}
