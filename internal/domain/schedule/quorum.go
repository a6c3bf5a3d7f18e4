package schedule

import (
	"libreserve/internal/domain/resource"
	"libreserve/internal/pkg/errs"
)

// MinCubicleParticipants is the smallest group (requester included) that may
// book a cubicle.
const MinCubicleParticipants = 3

// ValidateQuorum checks the group-size policy for a class. Only cubicles
// carry a quorum; laptops and books always pass.
func ValidateQuorum(class resource.Class, participantCount int) error {
	if class != resource.ClassCubicle {
		return nil
	}
	if participantCount < MinCubicleParticipants {
		return errs.ErrQuorumNotMet
	}
	return nil
}
