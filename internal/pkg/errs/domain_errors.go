package errs

import "errors"

// Sentinel errors shared by the scheduling usecase layers. Every one of these
// is recoverable at the caller; the handler layer maps them to HTTP statuses.
var (
	// Catalog errors
	ErrResourceNotFound    = errors.New("resource not found")
	ErrResourceUnavailable = errors.New("resource unavailable")

	// Booking request errors
	ErrInvalidDate                = errors.New("requested date must be today or tomorrow")
	ErrInvalidTimeRange           = errors.New("invalid time range")
	ErrQuorumNotMet               = errors.New("minimum group size not met")
	ErrDuplicateActiveReservation = errors.New("user already has an active reservation")
	ErrSlotUnavailable            = errors.New("time slot unavailable")

	// Lifecycle errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotOwner            = errors.New("acting user does not own this reservation")
	ErrAlreadyTerminal     = errors.New("reservation is already in a terminal state")
	ErrInvalidTransition   = errors.New("invalid reservation state transition")

	// Operation errors
	ErrStoreOperationFailed = errors.New("store operation failed")

	// ErrInvariantViolation marks internal consistency breaches, e.g. two
	// overlapping confirmed intervals on one resource. Never user-facing;
	// it means the commit atomicity guarantee was broken.
	ErrInvariantViolation = errors.New("scheduling invariant violated")
)
