package request

import (
	"time"

	"libreserve/internal/domain/schedule"
	"libreserve/internal/pkg/errs"
	"libreserve/internal/usecase/commands"
)

const clockLayout = "15:04"

type CreateReservationRequest struct {
	ResourceID string `json:"resourceId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	// Start/End are wall-clock times "HH:MM" on Date; omitted for book
	// loans.
	Start          *string  `json:"start,omitempty"`
	End            *string  `json:"end,omitempty"`
	ParticipantIDs []string `json:"participantIds,omitempty"`
}

// ToInput parses the wire shapes into an engine input, resolving wall-clock
// times against the service zone.
func (r CreateReservationRequest) ToInput(loc *time.Location) (commands.ReservationInput, error) {
	date, err := schedule.ParseDate(r.Date)
	if err != nil {
		return commands.ReservationInput{}, err
	}

	input := commands.ReservationInput{
		ResourceID:     r.ResourceID,
		Date:           date,
		ParticipantIDs: r.ParticipantIDs,
	}

	if r.Start != nil {
		t, err := parseClock(*r.Start, date, loc)
		if err != nil {
			return commands.ReservationInput{}, err
		}
		input.Start = &t
	}
	if r.End != nil {
		t, err := parseClock(*r.End, date, loc)
		if err != nil {
			return commands.ReservationInput{}, err
		}
		input.End = &t
	}
	return input, nil
}

func parseClock(s string, date schedule.Date, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, errs.Mark(err, errs.ErrInvalidTimeRange)
	}
	return date.At(t.Hour(), t.Minute(), loc), nil
}
