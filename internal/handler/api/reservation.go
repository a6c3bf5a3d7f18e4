package api

import (
	"context"
	"net/http"
	"time"

	"libreserve/internal/domain/reservation"
	reqdto "libreserve/internal/handler/dto/request"
	resdto "libreserve/internal/handler/dto/response"
	"libreserve/internal/handler/httperr"
	"libreserve/internal/handler/middleware"
	"libreserve/internal/pkg/errs"
	"libreserve/internal/usecase/commands"
	"libreserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	engine             commands.SchedulingEngine
	reservationQueries queries.ReservationQueries
	loc                *time.Location
}

func NewReservationHandler(
	engine commands.SchedulingEngine,
	reservationQueries queries.ReservationQueries,
	loc *time.Location,
) *ReservationHandler {
	return &ReservationHandler{
		engine:             engine,
		reservationQueries: reservationQueries,
		loc:                loc,
	}
}

// CreateReservation is the sole mutating entry point for new reservations.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_request", "Invalid request format", nil)
		return
	}

	input, err := req.ToInput(h.loc)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	rec, err := h.engine.RequestReservation(c.Request.Context(), actor, input)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	// Read-after-write so the response carries the same view shape as reads.
	view, err := h.reservationQueries.GetByID(c.Request.Context(), actor.UserID, actor.Admin, rec.ID())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), actor.UserID, actor.Admin, id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func (h *ReservationHandler) GetUserReservations(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	views, err := h.reservationQueries.ListByUser(c.Request.Context(), actor.UserID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// GetActiveReservations drives the cancel-active-reservation affordance.
func (h *ReservationHandler) GetActiveReservations(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	views, err := h.reservationQueries.ActiveByUser(c.Request.Context(), actor.UserID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromActiveReservationViews(views))
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	h.mutateLifecycle(c, h.engine.CancelReservation)
}

func (h *ReservationHandler) ReturnLoan(c *gin.Context) {
	h.mutateLifecycle(c, h.engine.ReturnLoan)
}

type lifecycleOp func(ctx context.Context, actor commands.Actor, id uuid.UUID) (*reservation.Reservation, error)

func (h *ReservationHandler) mutateLifecycle(c *gin.Context, op lifecycleOp) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	rec, err := op(c.Request.Context(), actor, id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), actor.UserID, actor.Admin, rec.ID())
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

var errMissingIdentity = errs.New("request carries no resolved user identity")

func (h *ReservationHandler) actor(c *gin.Context) (commands.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "unauthorized", "Identity headers are required", nil)
		return commands.Actor{}, false
	}
	return commands.Actor{UserID: userID, Admin: middleware.IsAdmin(c)}, true
}

func (h *ReservationHandler) reservationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "invalid_request", "Invalid reservation ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
