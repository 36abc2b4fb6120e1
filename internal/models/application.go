package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Terminal reports whether the status permits no further transitions.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

type VolunteerApplication struct {
	bun.BaseModel `bun:"table:volunteer_applications"`

	ID          string            `bun:"id,pk" json:"id"`
	EventID     string            `bun:"event_id,notnull" json:"event_id"`
	VolunteerID string            `bun:"volunteer_id,notnull" json:"volunteer_id"`
	Status      ApplicationStatus `bun:"status,notnull" json:"status"`
	Notes       string            `bun:"notes,nullzero" json:"notes,omitempty"`
	CreatedAt   time.Time         `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`

	Event     *Event   `bun:"rel:belongs-to,join:event_id=id" json:"event,omitempty"`
	Volunteer *Profile `bun:"rel:belongs-to,join:volunteer_id=id" json:"volunteer,omitempty"`
}
