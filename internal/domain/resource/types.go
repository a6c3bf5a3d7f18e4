package resource

// Class determines the slot grammar and the invariants that apply to a
// resource: laptops book enumerated hourly slots, cubicles book arbitrary
// in-day ranges with a minimum group size, books are whole-item loans.
type Class string

const (
	ClassLaptop  Class = "laptop"
	ClassCubicle Class = "cubicle"
	ClassBook    Class = "book"
)

func (c Class) String() string {
	return string(c)
}

func (c Class) IsValid() bool {
	switch c {
	case ClassLaptop, ClassCubicle, ClassBook:
		return true
	default:
		return false
	}
}

// UsesInterval reports whether reservations of this class occupy a bounded
// time interval. Book loans are open-ended and accounted per copy instead.
func (c Class) UsesInterval() bool {
	return c != ClassBook
}

// SingleActive reports whether the one-active-reservation-per-user rule
// applies to this class. Cubicles allow concurrent group bookings.
func (c Class) SingleActive() bool {
	return c == ClassLaptop || c == ClassBook
}

type Status string

const (
	StatusActive           Status = "active"
	StatusUnderMaintenance Status = "under_maintenance"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusUnderMaintenance:
		return true
	default:
		return false
	}
}
