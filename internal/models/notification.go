package models

import "time"

type NotificationType string

const (
	NotifyApplicationDecided NotificationType = "application_decided"
	NotifyBookingConfirmed   NotificationType = "booking_confirmed"
	NotifyBookingCheckedIn   NotificationType = "booking_checked_in"
)

// Notification is the message published after a successful lifecycle
// write. Delivery to the recipient is the notifier worker's problem; the
// services publish fire-and-forget.
type Notification struct {
	Type          NotificationType  `json:"type"`
	RecipientID   string            `json:"recipient_id"`
	EventID       string            `json:"event_id"`
	BookingID     string            `json:"booking_id,omitempty"`
	ApplicationID string            `json:"application_id,omitempty"`
	Decision      ApplicationStatus `json:"decision,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}
