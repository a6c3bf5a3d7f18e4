package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ResourceView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Class     string  `json:"class"`
	LibraryID string  `json:"library_id"`
	Status    string  `json:"status"`
	OS        *string `json:"os,omitempty"`
	Brand     *string `json:"brand,omitempty"`
	Capacity  *int    `json:"capacity,omitempty"`
	Copies    *int    `json:"copies,omitempty"`
}

type FreeWindowView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailabilityView answers "what can still be selected today" for one
// resource and day. Interval classes report free windows; books report
// remaining copies instead.
type AvailabilityView struct {
	ResourceID      string           `json:"resource_id"`
	Date            string           `json:"date"`
	Windows         []FreeWindowView `json:"windows,omitempty"`
	CopiesTotal     *int             `json:"copies_total,omitempty"`
	CopiesAvailable *int             `json:"copies_available,omitempty"`
}

type ReservationView struct {
	ID             uuid.UUID `json:"id"`
	ResourceID     string    `json:"resource_id"`
	ResourceName   string    `json:"resource_name"`
	Class          string    `json:"class"`
	UserID         string    `json:"user_id"`
	ParticipantIDs []string  `json:"participant_ids,omitempty"`
	Date           string    `json:"date"`
	Slot           string    `json:"slot"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ActiveReservationView drives the "cancel active reservation" affordance
// in the UI: one entry per non-terminal reservation of the user.
type ActiveReservationView struct {
	ID         uuid.UUID `json:"id"`
	ResourceID string    `json:"resource_id"`
	Class      string    `json:"class"`
	Date       string    `json:"date"`
	Slot       string    `json:"slot"`
	Status     string    `json:"status"`
}
