package reservation

type Status string

const (
	StatusRequested Status = "requested"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusCancelled, StatusCompleted, StatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the state can never be left again.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusExpired:
		return true
	default:
		return false
	}
}

// IsActive marks the states that count toward the non-overlap and
// single-active invariants.
func (s Status) IsActive() bool {
	return s == StatusRequested || s == StatusConfirmed
}
