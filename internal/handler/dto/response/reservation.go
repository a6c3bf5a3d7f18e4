package response

import (
	"time"

	"libreserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID             uuid.UUID `json:"id"`
	ResourceID     string    `json:"resourceId"`
	ResourceName   string    `json:"resourceName"`
	Class          string    `json:"class"`
	UserID         string    `json:"userId"`
	ParticipantIDs []string  `json:"participantIds,omitempty"`
	Date           string    `json:"date"`
	Slot           string    `json:"slot"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type ActiveReservationResponse struct {
	ID         uuid.UUID `json:"id"`
	ResourceID string    `json:"resourceId"`
	Class      string    `json:"class"`
	Date       string    `json:"date"`
	Slot       string    `json:"slot"`
	Status     string    `json:"status"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	result := make([]*ReservationResponse, len(views))
	for i, v := range views {
		result[i] = FromReservationView(v)
	}
	return result
}

func FromActiveReservationViews(views []*queries.ActiveReservationView) []*ActiveReservationResponse {
	result := make([]*ActiveReservationResponse, len(views))
	for i, v := range views {
		var resp ActiveReservationResponse
		_ = copier.Copy(&resp, v)
		result[i] = &resp
	}
	return result
}
