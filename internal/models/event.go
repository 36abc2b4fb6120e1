package models

import (
	"time"

	"github.com/uptrace/bun"
)

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          string      `bun:"id,pk" json:"id"`
	OrganizerID string      `bun:"organizer_id,notnull" json:"organizer_id"`
	Title       string      `bun:"title,notnull" json:"title"`
	Description string      `bun:"description,nullzero" json:"description,omitempty"`
	Venue       string      `bun:"venue,notnull" json:"venue"`
	DateTime    time.Time   `bun:"date_time,notnull" json:"date_time"`
	Capacity    int         `bun:"capacity,notnull" json:"capacity"`
	Category    string      `bun:"category,nullzero" json:"category,omitempty"`
	BannerURL   string      `bun:"banner_url,nullzero" json:"banner_url,omitempty"`
	Status      EventStatus `bun:"status,notnull" json:"status"`
	Price       float64     `bun:"price,notnull" json:"price"`
	CreatedAt   time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time   `bun:"updated_at,nullzero" json:"updated_at,omitempty"`

	Organizer *Profile `bun:"rel:belongs-to,join:organizer_id=id" json:"organizer,omitempty"`

	// BookingsCount is filled by list queries that join the active booking
	// count; it is never stored.
	BookingsCount int `bun:"bookings_count,scanonly" json:"bookings_count"`
}

// EventDetails is an Event enriched with the seat math the booking flow
// needs. AvailableSeats is derived on every read, never cached.
type EventDetails struct {
	Event
	AvailableSeats int `json:"available_seats"`
}
