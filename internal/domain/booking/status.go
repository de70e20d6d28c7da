package booking

import (
	"slices"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusDeclined  Status = "DECLINED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

var allStatuses = []Status{StatusPending, StatusConfirmed, StatusDeclined, StatusCancelled, StatusCompleted}

func AllStatuses() []Status {
	return slices.Clone(allStatuses)
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus.Withf("Unknown booking status %q", s)
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return slices.Contains(allStatuses, s)
}

// BlocksCalendar reports whether a booking in this status holds its dates.
func (s Status) BlocksCalendar() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// ActorRole is the relationship between the caller and a booking.
type ActorRole string

const (
	RoleGuest  ActorRole = "GUEST"
	RoleHost   ActorRole = "HOST"
	RoleSystem ActorRole = "SYSTEM"
)

func (r ActorRole) String() string {
	return string(r)
}

// transitions is the complete lifecycle. An edge missing here, or a role missing
// from an edge, is not allowed.
var transitions = map[Status]map[Status][]ActorRole{
	StatusPending: {
		StatusConfirmed: {RoleHost},
		StatusDeclined:  {RoleHost},
		StatusCancelled: {RoleGuest},
	},
	StatusConfirmed: {
		StatusCancelled: {RoleGuest, RoleHost},
		StatusCompleted: {RoleSystem},
	},
}

func CanTransition(from, to Status, role ActorRole) bool {
	return slices.Contains(transitions[from][to], role)
}

// ResolveRole maps a user to their side of the booking. The system role is
// never derived from a user identity.
func ResolveRole(actorID, guestID, hostID uuid.UUID) (ActorRole, error) {
	switch actorID {
	case guestID:
		return RoleGuest, nil
	case hostID:
		return RoleHost, nil
	default:
		return "", ErrAccessDenied
	}
}
