package models

import (
	"time"

	"github.com/uptrace/bun"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCheckedIn BookingStatus = "checked_in"
)

// Active reports whether the booking counts against event capacity.
func (s BookingStatus) Active() bool {
	return s == BookingConfirmed || s == BookingCheckedIn
}

type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID          string        `bun:"id,pk" json:"id"`
	EventID     string        `bun:"event_id,notnull" json:"event_id"`
	AttendeeID  string        `bun:"attendee_id,notnull" json:"attendee_id"`
	Status      BookingStatus `bun:"status,notnull" json:"status"`
	SeatNumber  string        `bun:"seat_number,nullzero" json:"seat_number,omitempty"`
	BookingDate time.Time     `bun:"booking_date,notnull" json:"booking_date"`
	CheckInTime time.Time     `bun:"check_in_time,nullzero" json:"check_in_time,omitempty"`
	CreatedAt   time.Time     `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	Event    *Event   `bun:"rel:belongs-to,join:event_id=id" json:"event,omitempty"`
	Attendee *Profile `bun:"rel:belongs-to,join:attendee_id=id" json:"attendee,omitempty"`
}
