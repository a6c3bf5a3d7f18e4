package reservation

import (
	"time"

	"libreserve/internal/domain/resource"
	"libreserve/internal/domain/schedule"
	"libreserve/internal/pkg/errs"

	"github.com/google/uuid"
)

// Reservation owns the lifecycle of a single booking from request to a
// terminal state. Transitions are one-way; records are state-transitioned,
// never deleted, so history survives for audit.
type Reservation struct {
	id           uuid.UUID
	resourceID   string
	class        resource.Class
	userID       string
	participants []string
	day          schedule.Date
	slot         schedule.TimeSlot
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

// NewReservation creates a record in Requested state. The caller has already
// validated the slot grammar and quorum; the record is not yet visible in
// the availability index.
func NewReservation(
	res *resource.Resource,
	userID string,
	participants []string,
	day schedule.Date,
	slot schedule.TimeSlot,
	now time.Time,
) *Reservation {
	members := make([]string, len(participants))
	copy(members, participants)
	return &Reservation{
		id:           uuid.New(),
		resourceID:   res.ID(),
		class:        res.Class(),
		userID:       userID,
		participants: members,
		day:          day,
		slot:         slot,
		status:       StatusRequested,
		createdAt:    now,
		updatedAt:    now,
	}
}

func Reconstruct(
	id uuid.UUID,
	resourceID string,
	class resource.Class,
	userID string,
	participants []string,
	day schedule.Date,
	slot schedule.TimeSlot,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		resourceID:   resourceID,
		class:        class,
		userID:       userID,
		participants: participants,
		day:          day,
		slot:         slot,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Confirm moves Requested -> Confirmed. Only the scheduling engine calls it,
// atomically with the availability commit.
func (r *Reservation) Confirm(now time.Time) error {
	return r.transition(StatusRequested, StatusConfirmed, now)
}

// Cancel moves Confirmed -> Cancelled on explicit user or administrator
// action before the slot's end.
func (r *Reservation) Cancel(now time.Time) error {
	return r.transition(StatusConfirmed, StatusCancelled, now)
}

// Complete moves Confirmed -> Completed once the slot's end has passed, or
// once a loan is returned.
func (r *Reservation) Complete(now time.Time) error {
	return r.transition(StatusConfirmed, StatusCompleted, now)
}

// Expire moves Requested -> Expired when the commit fails or the request is
// abandoned before confirmation.
func (r *Reservation) Expire(now time.Time) error {
	return r.transition(StatusRequested, StatusExpired, now)
}

func (r *Reservation) transition(from, to Status, now time.Time) error {
	if r.status.IsTerminal() {
		return errs.ErrAlreadyTerminal
	}
	if r.status != from {
		return errs.ErrInvalidTransition
	}
	r.status = to
	r.updatedAt = now
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

// ParticipantCount counts the requester plus the listed members.
func (r *Reservation) ParticipantCount() int {
	return 1 + len(r.participants)
}

func (r *Reservation) IsOwnedBy(userID string) bool {
	return r.userID == userID
}

func (r *Reservation) ID() uuid.UUID            { return r.id }
func (r *Reservation) ResourceID() string       { return r.resourceID }
func (r *Reservation) Class() resource.Class    { return r.class }
func (r *Reservation) UserID() string           { return r.userID }
func (r *Reservation) Participants() []string   { return r.participants }
func (r *Reservation) Day() schedule.Date       { return r.day }
func (r *Reservation) Slot() schedule.TimeSlot  { return r.slot }
func (r *Reservation) Status() Status           { return r.status }
func (r *Reservation) CreatedAt() time.Time     { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time     { return r.updatedAt }
