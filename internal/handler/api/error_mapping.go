package api

import (
	"errors"
	"net/http"

	"libreserve/internal/handler/httperr"
	"libreserve/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	sentinel error
	status   int
	code     string
	message  string
}

// Taxonomy → HTTP mapping. Everything here is recoverable at the caller;
// anything unmapped (including invariant violations) falls through to 500.
var errorMappings = []errorMapping{
	{errs.ErrResourceNotFound, http.StatusNotFound, "resource_not_found", "Resource not found"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "reservation_not_found", "Reservation not found"},
	{errs.ErrResourceUnavailable, http.StatusConflict, "resource_unavailable", "Resource is not available for booking"},
	{errs.ErrInvalidDate, http.StatusBadRequest, "invalid_date", "Reservations are accepted for today and tomorrow only"},
	{errs.ErrInvalidTimeRange, http.StatusBadRequest, "invalid_time_range", "Invalid time range for this resource"},
	{errs.ErrQuorumNotMet, http.StatusUnprocessableEntity, "quorum_not_met", "Cubicle reservations require at least 3 participants"},
	{errs.ErrDuplicateActiveReservation, http.StatusConflict, "duplicate_active_reservation", "An active reservation of this kind already exists"},
	{errs.ErrSlotUnavailable, http.StatusConflict, "slot_unavailable", "The requested time slot is no longer available"},
	{errs.ErrNotOwner, http.StatusForbidden, "not_owner", "Only the requester or an administrator may do this"},
	{errs.ErrAlreadyTerminal, http.StatusConflict, "already_terminal", "Reservation is already finished"},
	{errs.ErrInvalidTransition, http.StatusConflict, "invalid_transition", "Operation does not apply to this reservation"},
}

func abortWithDomainError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			httperr.AbortWithError(c, m.status, err, m.code, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "internal_error", "Internal server error", nil)
}
