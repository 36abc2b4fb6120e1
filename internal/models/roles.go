package models

// Role identifies which side of the platform a profile belongs to.
// Every mutation in the service is gated on the caller's role, so the
// set of values is closed and checked at the edge.
type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleAttendee  Role = "attendee"
	RoleVolunteer Role = "volunteer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOrganizer, RoleAttendee, RoleVolunteer:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation. Services take it as
// an explicit parameter instead of reading ambient session state.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
