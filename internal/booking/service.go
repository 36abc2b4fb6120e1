package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eventhub/internal/booking/qr"
	"eventhub/internal/errs"
	"eventhub/internal/logger"
	"eventhub/internal/models"
)

type DBLayer interface {
	CreateBooking(ctx context.Context, b models.Booking) error
	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)
	GetActiveBooking(ctx context.Context, eventID, attendeeID string) (*models.Booking, error)
	CountActiveBookings(ctx context.Context, eventID string) (int, error)
	DeleteBooking(ctx context.Context, id string) error
	CheckInBooking(ctx context.Context, id string, at time.Time) (bool, error)
	GetBookingsByAttendee(ctx context.Context, attendeeID string) ([]models.Booking, error)
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
}

type SubmitGuard interface {
	Acquire(ctx context.Context, eventID, attendeeID string) (bool, error)
	Release(ctx context.Context, eventID, attendeeID string) error
}

type Publisher interface {
	PublishBookingConfirmed(n models.Notification) error
	PublishBookingCheckedIn(n models.Notification) error
}

type QRCodec interface {
	GenerateEncryptedQR(b models.Booking) ([]byte, error)
	DecodePayload(payload string) (*qr.CheckInClaim, error)
}

type Service struct {
	DB     DBLayer
	Guard  SubmitGuard
	Kafka  Publisher
	QR     QRCodec
	Logger *logger.Logger
}

func NewService(db DBLayer, guard SubmitGuard, kafka Publisher, codec QRCodec, log *logger.Logger) *Service {
	return &Service{DB: db, Guard: guard, Kafka: kafka, QR: codec, Logger: log}
}

// Book creates a confirmed booking for the caller. Only attendees may
// book; duplicates and exhausted capacity are conflicts, and the final
// word on both belongs to the guarded insert in the DB layer.
func (s *Service) Book(ctx context.Context, actor models.Actor, eventID string) (*models.Booking, error) {
	if actor.Role != models.RoleAttendee {
		return nil, errs.Forbiddenf("only attendees can book events")
	}
	if eventID == "" {
		return nil, errs.Validationf("event id is required")
	}

	ok, err := s.Guard.Acquire(ctx, eventID, actor.ID)
	if err != nil {
		return nil, errs.Backend(err, "acquire booking guard")
	}
	if !ok {
		return nil, errs.Conflictf("a booking attempt for this event is already in progress")
	}
	defer func() {
		if relErr := s.Guard.Release(ctx, eventID, actor.ID); relErr != nil {
			s.Logger.Warn("BOOKING", fmt.Sprintf("Failed to release booking guard for event %s: %v", eventID, relErr))
		}
	}()

	// Cheap pre-check; CreateBooking re-checks under the row lock.
	existing, err := s.DB.GetActiveBooking(ctx, eventID, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Conflictf("an active booking already exists for this event")
	}

	b := models.Booking{
		ID:          uuid.NewString(),
		EventID:     eventID,
		AttendeeID:  actor.ID,
		Status:      models.BookingConfirmed,
		BookingDate: time.Now().UTC(),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.DB.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	s.Logger.LogBooking("CREATE", b.ID, fmt.Sprintf("attendee %s booked event %s", actor.ID, eventID))

	if err := s.Kafka.PublishBookingConfirmed(models.Notification{
		Type:        models.NotifyBookingConfirmed,
		RecipientID: actor.ID,
		EventID:     eventID,
		BookingID:   b.ID,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("Publish error (booking confirmed): %v", err))
	}

	return &b, nil
}

// Cancel hard-deletes the caller's own booking. No cancellation history
// is retained.
func (s *Service) Cancel(ctx context.Context, actor models.Actor, bookingID string) error {
	if bookingID == "" {
		return errs.Validationf("booking id is required")
	}

	b, err := s.DB.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.AttendeeID != actor.ID {
		return errs.Forbiddenf("only the booking owner can cancel it")
	}

	if err := s.DB.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}
	s.Logger.LogBooking("CANCEL", bookingID, fmt.Sprintf("attendee %s cancelled booking", actor.ID))
	return nil
}

// CheckIn decodes a scanned QR payload and advances the booking to
// checked_in. Only the organizer who owns the event may scan for it, and
// a booking checks in at most once.
func (s *Service) CheckIn(ctx context.Context, actor models.Actor, payload string) (*models.Booking, error) {
	if actor.Role != models.RoleOrganizer {
		return nil, errs.Forbiddenf("only organizers can check in attendees")
	}
	if payload == "" {
		return nil, errs.Validationf("qr payload is required")
	}

	claim, err := s.QR.DecodePayload(payload)
	if err != nil {
		return nil, errs.Validationf("invalid qr payload")
	}

	b, err := s.DB.GetBookingByID(ctx, claim.BookingID)
	if err != nil {
		return nil, err
	}
	ev, err := s.DB.GetEventByID(ctx, b.EventID)
	if err != nil {
		return nil, err
	}
	if ev.OrganizerID != actor.ID {
		return nil, errs.Forbiddenf("event belongs to another organizer")
	}

	now := time.Now().UTC()
	done, err := s.DB.CheckInBooking(ctx, b.ID, now)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, errs.Conflictf("booking is not in a state that permits check-in")
	}

	b.Status = models.BookingCheckedIn
	b.CheckInTime = now
	s.Logger.LogBooking("CHECKIN", b.ID, fmt.Sprintf("checked in by organizer %s", actor.ID))

	if err := s.Kafka.PublishBookingCheckedIn(models.Notification{
		Type:        models.NotifyBookingCheckedIn,
		RecipientID: b.AttendeeID,
		EventID:     b.EventID,
		BookingID:   b.ID,
		CreatedAt:   now,
	}); err != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("Publish error (booking checked in): %v", err))
	}

	return b, nil
}

// ListMine returns the caller's bookings with their events joined.
func (s *Service) ListMine(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	if actor.Role != models.RoleAttendee {
		return nil, errs.Forbiddenf("only attendees have bookings")
	}
	return s.DB.GetBookingsByAttendee(ctx, actor.ID)
}

// AvailableSeats recomputes the event's remaining capacity from live
// counts. The value is never cached.
func (s *Service) AvailableSeats(ctx context.Context, eventID string) (int, error) {
	ev, err := s.DB.GetEventByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	active, err := s.DB.CountActiveBookings(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return AvailableSeats(ev.Capacity, active), nil
}

// TicketQR renders the check-in QR code for the caller's own booking.
func (s *Service) TicketQR(ctx context.Context, actor models.Actor, bookingID string) ([]byte, error) {
	b, err := s.DB.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.AttendeeID != actor.ID {
		return nil, errs.Forbiddenf("only the booking owner can fetch its ticket")
	}
	if !b.Status.Active() {
		return nil, errs.Conflictf("booking is not active")
	}

	png, err := s.QR.GenerateEncryptedQR(*b)
	if err != nil {
		return nil, errs.Backend(err, "generate ticket qr")
	}
	return png, nil
}
