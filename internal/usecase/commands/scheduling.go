// Package commands holds the write side of the reservation core: the
// scheduling engine that decides whether a requested slot can be granted
// and the only code path that moves reservation records between states.
package commands

import (
	"context"
	"log/slog"
	"time"

	"libreserve/internal/domain/reservation"
	"libreserve/internal/domain/resource"
	"libreserve/internal/domain/schedule"
	"libreserve/internal/infra"
	"libreserve/internal/infra/availability"
	"libreserve/internal/pkg/clock"
	"libreserve/internal/pkg/errs"
	"libreserve/internal/pkg/keymutex"
	"libreserve/internal/usecase/shared"

	"github.com/google/uuid"
)

// Actor identifies the caller of a command. Identity is established by the
// upstream auth layer; the core only sees the resolved user id and role.
type Actor struct {
	UserID string
	Admin  bool
}

// ReservationInput is a booking request as produced by the form layer.
// Start/End are absolute instants on Date in the service zone; both are nil
// for book loans.
type ReservationInput struct {
	ResourceID     string
	Date           schedule.Date
	Start          *time.Time
	End            *time.Time
	ParticipantIDs []string
}

type SchedulingEngine interface {
	RequestReservation(ctx context.Context, actor Actor, input ReservationInput) (*reservation.Reservation, error)
	CancelReservation(ctx context.Context, actor Actor, id uuid.UUID) (*reservation.Reservation, error)
	ReturnLoan(ctx context.Context, actor Actor, id uuid.UUID) (*reservation.Reservation, error)
	CompletePast(ctx context.Context) (int, error)
	RebuildIndex(ctx context.Context) error
}

type schedulingEngineImpl struct {
	catalog       shared.CatalogStore
	store         shared.ReservationStore
	index         *availability.Index
	resourceLocks *keymutex.KeyMutex
	userLocks     *keymutex.KeyMutex
	clock         clock.Clock
	loc           *time.Location
	hours         schedule.OperatingHours
	maxAttempts   int
	logger        *slog.Logger
}

func NewSchedulingEngine(
	catalog shared.CatalogStore,
	store shared.ReservationStore,
	index *availability.Index,
	clk clock.Clock,
	loc *time.Location,
	hours schedule.OperatingHours,
	maxAttempts int,
	logger *slog.Logger,
) SchedulingEngine {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &schedulingEngineImpl{
		catalog:       catalog,
		store:         store,
		index:         index,
		resourceLocks: keymutex.New(),
		userLocks:     keymutex.New(),
		clock:         clk,
		loc:           loc,
		hours:         hours,
		maxAttempts:   maxAttempts,
		logger:        logger,
	}
}

// RequestReservation validates a booking request and, if every check
// passes, commits it atomically against the availability index. Validation
// order: resource, date, slot grammar, quorum, duplicate-active; then the
// per-resource critical section where duplicate-active is re-checked and
// the check-then-commit sequence runs as one unit.
func (e *schedulingEngineImpl) RequestReservation(
	ctx context.Context,
	actor Actor,
	input ReservationInput,
) (*reservation.Reservation, error) {
	res, err := e.resolveResource(ctx, input.ResourceID)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now().In(e.loc)
	if err := schedule.ValidateRequestDate(input.Date, now, e.loc); err != nil {
		return nil, err
	}

	slot, err := e.buildSlot(res.Class(), input, now)
	if err != nil {
		return nil, err
	}

	participants := input.ParticipantIDs
	if res.Class() != resource.ClassCubicle {
		// Laptop and book reservations carry no member list.
		participants = nil
	}
	if err := schedule.ValidateQuorum(res.Class(), 1+len(participants)); err != nil {
		return nil, err
	}

	// Cheap pre-check outside the critical section; re-checked inside.
	if err := e.checkDuplicateActive(ctx, actor.UserID, res.Class()); err != nil {
		return nil, err
	}

	rec := reservation.NewReservation(res, actor.UserID, participants, input.Date, slot, now)
	if err := e.store.Create(ctx, rec); err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	// Lock order is fixed (user/class before resource) so concurrent
	// requests can never deadlock.
	if res.Class().SingleActive() {
		unlockUser := e.userLocks.Lock("user/" + actor.UserID + "/" + res.Class().String())
		defer unlockUser()
	}
	unlockResource := e.resourceLocks.Lock(res.ID())
	defer unlockResource()

	if err := e.checkDuplicateActiveLatest(ctx, rec); err != nil {
		return nil, err
	}

	return e.commitConfirm(ctx, rec)
}

// commitConfirm runs the atomic check-then-commit unit. The caller holds
// the resource lock. A commit that loses to an already committed interval
// expires the record and fails with SlotUnavailable; transient store
// failures are retried up to the configured bound, then surfaced the same
// way rather than starving the caller.
func (e *schedulingEngineImpl) commitConfirm(ctx context.Context, rec *reservation.Reservation) (*reservation.Reservation, error) {
	now := e.clock.Now().In(e.loc)

	if !e.index.IsFree(rec.ResourceID(), rec.Day(), rec.Slot()) {
		return nil, e.expire(ctx, rec, errs.ErrSlotUnavailable)
	}

	if err := e.index.Commit(rec.ResourceID(), rec.Day(), rec.Slot()); err != nil {
		return nil, e.expire(ctx, rec, errs.ErrSlotUnavailable)
	}

	if err := rec.Confirm(now); err != nil {
		e.index.Release(rec.ResourceID(), rec.Day(), rec.Slot())
		return nil, errs.Mark(err, errs.ErrInvariantViolation)
	}

	var updateErr error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		updateErr = e.store.Update(ctx, rec)
		if updateErr == nil {
			return rec, nil
		}
		e.logger.Warn("reservation confirm write failed",
			"reservation_id", rec.ID(),
			"attempt", attempt,
			"error", updateErr)
	}

	// Undo the interval so the slot is not held by a record that never
	// became durable, and expire the stored Requested row so it cannot
	// count against the user's single-active allowance.
	e.index.Release(rec.ResourceID(), rec.Day(), rec.Slot())
	e.expireStale(ctx, rec.ID())
	return nil, errs.Mark(updateErr, errs.ErrSlotUnavailable)
}

// CancelReservation transitions a Confirmed record to Cancelled and frees
// its slot. It takes the same per-resource lock as commit so a release can
// never race a concurrent grant.
func (e *schedulingEngineImpl) CancelReservation(ctx context.Context, actor Actor, id uuid.UUID) (*reservation.Reservation, error) {
	rec, err := e.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	unlock := e.resourceLocks.Lock(rec.ResourceID())
	defer unlock()

	// Reload under the lock: status may have moved since the ownership check.
	rec, err = e.store.FindByID(ctx, id)
	if err != nil {
		return nil, e.mapReservationErr(err)
	}

	now := e.clock.Now().In(e.loc)
	switch rec.Status() {
	case reservation.StatusRequested:
		// Never committed, nothing to release.
		if err := rec.Expire(now); err != nil {
			return nil, err
		}
	case reservation.StatusConfirmed:
		if rec.Slot().EndedBy(now) {
			// Past its end; the janitor just has not swept it yet.
			if err := rec.Complete(now); err != nil {
				return nil, err
			}
			if err := e.store.Update(ctx, rec); err != nil {
				return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
			}
			return nil, errs.ErrAlreadyTerminal
		}
		e.index.Release(rec.ResourceID(), rec.Day(), rec.Slot())
		if err := rec.Cancel(now); err != nil {
			return nil, err
		}
	default:
		return nil, errs.ErrAlreadyTerminal
	}

	if err := e.store.Update(ctx, rec); err != nil {
		if rec.Status() == reservation.StatusCancelled {
			// Put the interval back; the cancellation did not commit.
			_ = e.index.Commit(rec.ResourceID(), rec.Day(), rec.Slot())
		}
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return rec, nil
}

// ReturnLoan ends an open-ended book loan, freeing the copy.
func (e *schedulingEngineImpl) ReturnLoan(ctx context.Context, actor Actor, id uuid.UUID) (*reservation.Reservation, error) {
	rec, err := e.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if rec.Class() != resource.ClassBook {
		return nil, errs.ErrInvalidTransition
	}

	unlock := e.resourceLocks.Lock(rec.ResourceID())
	defer unlock()

	rec, err = e.store.FindByID(ctx, id)
	if err != nil {
		return nil, e.mapReservationErr(err)
	}
	if rec.Status().IsTerminal() {
		return nil, errs.ErrAlreadyTerminal
	}

	now := e.clock.Now().In(e.loc)
	if err := rec.Complete(now); err != nil {
		return nil, err
	}
	e.index.Release(rec.ResourceID(), rec.Day(), rec.Slot())
	if err := e.store.Update(ctx, rec); err != nil {
		_ = e.index.Commit(rec.ResourceID(), rec.Day(), rec.Slot())
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return rec, nil
}

// requestedGrace is how long a Requested record may sit before the janitor
// treats it as orphaned by a failed commit.
const requestedGrace = time.Minute

// CompletePast sweeps Confirmed reservations whose slot has ended into
// Completed, and expires Requested records orphaned by failed commits.
// Ended slots hold nothing bookable, so nothing pending is released early.
func (e *schedulingEngineImpl) CompletePast(ctx context.Context) (int, error) {
	now := e.clock.Now().In(e.loc)
	ended, err := e.store.FindConfirmedEndingBefore(ctx, now)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	completed := 0
	for _, rec := range ended {
		if err := e.completeOne(ctx, rec.ID(), now); err != nil {
			e.logger.Warn("failed to complete past reservation",
				"reservation_id", rec.ID(), "error", err)
			continue
		}
		completed++
	}

	stale, err := e.store.FindRequestedBefore(ctx, now.Add(-requestedGrace))
	if err != nil {
		e.logger.Warn("failed to list stale requested reservations", "error", err)
		return completed, nil
	}
	for _, rec := range stale {
		e.expireStale(ctx, rec.ID())
	}
	return completed, nil
}

func (e *schedulingEngineImpl) completeOne(ctx context.Context, id uuid.UUID, now time.Time) error {
	rec, err := e.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	unlock := e.resourceLocks.Lock(rec.ResourceID())
	defer unlock()

	rec, err = e.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.Status() != reservation.StatusConfirmed || !rec.Slot().EndedBy(now) {
		return nil
	}
	if err := rec.Complete(now); err != nil {
		return err
	}
	e.index.Release(rec.ResourceID(), rec.Day(), rec.Slot())
	return e.store.Update(ctx, rec)
}

// RebuildIndex repopulates the availability index from the store's
// Confirmed records, then verifies the non-overlap invariant per resource
// and day. Called once at startup before the engine serves requests.
func (e *schedulingEngineImpl) RebuildIndex(ctx context.Context) error {
	resources, err := e.catalog.All(ctx)
	if err != nil {
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	for _, r := range resources {
		if r.Class() == resource.ClassBook {
			e.index.SetCopies(r.ID(), r.Copies())
		}
	}

	confirmed, err := e.store.FindConfirmed(ctx)
	if err != nil {
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}

	seen := make(map[string]map[schedule.Date]bool)
	for _, rec := range confirmed {
		if err := e.index.Commit(rec.ResourceID(), rec.Day(), rec.Slot()); err != nil {
			return errs.Mark(
				errs.Newf("stored confirmed reservations overlap on resource %s", rec.ResourceID()),
				errs.ErrInvariantViolation,
			)
		}
		if seen[rec.ResourceID()] == nil {
			seen[rec.ResourceID()] = make(map[schedule.Date]bool)
		}
		seen[rec.ResourceID()][rec.Day()] = true
	}

	for resID, days := range seen {
		for day := range days {
			if err := e.index.CheckConsistency(resID, day); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *schedulingEngineImpl) resolveResource(ctx context.Context, id string) (*resource.Resource, error) {
	res, err := e.catalog.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrResourceNotFound
		}
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	if !res.IsActive() {
		return nil, errs.ErrResourceUnavailable
	}
	return res, nil
}

func (e *schedulingEngineImpl) buildSlot(class resource.Class, input ReservationInput, now time.Time) (schedule.TimeSlot, error) {
	var slot schedule.TimeSlot
	if class == resource.ClassBook {
		if input.Start != nil || input.End != nil {
			return schedule.TimeSlot{}, errs.ErrInvalidTimeRange
		}
		slot = schedule.NewOpenEndedSlot(now)
	} else {
		if input.Start == nil || input.End == nil {
			return schedule.TimeSlot{}, errs.ErrInvalidTimeRange
		}
		var err error
		slot, err = schedule.NewTimeSlot(*input.Start, *input.End)
		if err != nil {
			return schedule.TimeSlot{}, err
		}
	}
	if err := schedule.ValidateSlotGrammar(class, input.Date, slot, e.hours, e.loc); err != nil {
		return schedule.TimeSlot{}, err
	}
	return slot, nil
}

func (e *schedulingEngineImpl) checkDuplicateActive(ctx context.Context, userID string, class resource.Class) error {
	if !class.SingleActive() {
		return nil
	}
	active, err := e.store.FindActiveByUserClass(ctx, userID, class)
	if err != nil {
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	if len(active) > 0 {
		return errs.ErrDuplicateActiveReservation
	}
	return nil
}

// checkDuplicateActiveLatest re-validates the single-active rule against
// the very latest state, inside the critical section, ignoring the record
// being requested (it is already stored in Requested state).
func (e *schedulingEngineImpl) checkDuplicateActiveLatest(ctx context.Context, rec *reservation.Reservation) error {
	if !rec.Class().SingleActive() {
		return nil
	}
	active, err := e.store.FindActiveByUserClass(ctx, rec.UserID(), rec.Class())
	if err != nil {
		return e.expire(ctx, rec, errs.Mark(err, errs.ErrStoreOperationFailed))
	}
	for _, a := range active {
		if a.ID() != rec.ID() {
			return e.expire(ctx, rec, errs.ErrDuplicateActiveReservation)
		}
	}
	return nil
}

// expire moves a Requested record to its terminal Expired state and returns
// cause as the user-facing error.
func (e *schedulingEngineImpl) expire(ctx context.Context, rec *reservation.Reservation, cause error) error {
	now := e.clock.Now().In(e.loc)
	if err := rec.Expire(now); err != nil {
		return errs.Mark(err, errs.ErrInvariantViolation)
	}
	if err := e.store.Update(ctx, rec); err != nil {
		e.logger.Warn("failed to persist expired reservation",
			"reservation_id", rec.ID(), "error", err)
	}
	return cause
}

// expireStale re-reads a record and, if it is still Requested, moves it to
// Expired. A Requested row that outlives its commit attempt would otherwise
// hold the single-active rule against the user forever. Best effort;
// failures are picked up by the next janitor sweep.
func (e *schedulingEngineImpl) expireStale(ctx context.Context, id uuid.UUID) {
	rec, err := e.store.FindByID(ctx, id)
	if err != nil {
		e.logger.Warn("failed to load reservation for expiry",
			"reservation_id", id, "error", err)
		return
	}
	if rec.Status() != reservation.StatusRequested {
		return
	}
	now := e.clock.Now().In(e.loc)
	if err := rec.Expire(now); err != nil {
		return
	}
	if err := e.store.Update(ctx, rec); err != nil {
		e.logger.Warn("failed to expire stale reservation",
			"reservation_id", id, "error", err)
	}
}

func (e *schedulingEngineImpl) loadOwned(ctx context.Context, actor Actor, id uuid.UUID) (*reservation.Reservation, error) {
	rec, err := e.store.FindByID(ctx, id)
	if err != nil {
		return nil, e.mapReservationErr(err)
	}
	if !rec.IsOwnedBy(actor.UserID) && !actor.Admin {
		return nil, errs.ErrNotOwner
	}
	return rec, nil
}

func (e *schedulingEngineImpl) mapReservationErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.ErrReservationNotFound
	}
	return errs.Mark(err, errs.ErrStoreOperationFailed)
}
