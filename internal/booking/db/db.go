package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"eventhub/internal/errs"
	"eventhub/internal/models"
)

type DB struct {
	Bun *bun.DB
}

var activeStatuses = []models.BookingStatus{models.BookingConfirmed, models.BookingCheckedIn}

// CreateBooking inserts a confirmed booking after re-checking capacity and
// duplicates inside one transaction. On postgres the event row is locked
// first, so two attendees racing for the last seat serialize here instead
// of both passing a stale read. SQLite serializes writes on its own, and
// does not parse FOR UPDATE, so the lock clause is postgres-only.
func (d *DB) CreateBooking(ctx context.Context, b models.Booking) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var ev models.Event
		q := tx.NewSelect().Model(&ev).Where("id = ?", b.EventID)
		if d.Bun.Dialect().Name() == dialect.PG {
			q = q.For("UPDATE")
		}
		if err := q.Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errs.NotFoundf("event %s not found", b.EventID)
			}
			return errs.Backend(err, "lock event row")
		}

		if ev.Status != models.EventPublished {
			return errs.Conflictf("event is not open for booking")
		}

		dup, err := tx.NewSelect().
			Model((*models.Booking)(nil)).
			Where("event_id = ? AND attendee_id = ?", b.EventID, b.AttendeeID).
			Where("status IN (?)", bun.In(activeStatuses)).
			Count(ctx)
		if err != nil {
			return errs.Backend(err, "check duplicate booking")
		}
		if dup > 0 {
			return errs.Conflictf("an active booking already exists for this event")
		}

		active, err := tx.NewSelect().
			Model((*models.Booking)(nil)).
			Where("event_id = ?", b.EventID).
			Where("status IN (?)", bun.In(activeStatuses)).
			Count(ctx)
		if err != nil {
			return errs.Backend(err, "count active bookings")
		}
		if active >= ev.Capacity {
			return errs.Conflictf("event is full")
		}

		if _, err := tx.NewInsert().Model(&b).Exec(ctx); err != nil {
			return errs.Backend(err, "insert booking")
		}
		return nil
	})
}

func (d *DB) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := d.Bun.NewSelect().
		Model(&b).
		Where("booking.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundf("booking %s not found", id)
		}
		return nil, errs.Backend(err, "get booking")
	}
	return &b, nil
}

// GetActiveBooking returns the caller's active booking for an event, or
// nil when none exists.
func (d *DB) GetActiveBooking(ctx context.Context, eventID, attendeeID string) (*models.Booking, error) {
	var b models.Booking
	err := d.Bun.NewSelect().
		Model(&b).
		Where("event_id = ? AND attendee_id = ?", eventID, attendeeID).
		Where("status IN (?)", bun.In(activeStatuses)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errs.Backend(err, "get active booking")
	}
	return &b, nil
}

func (d *DB) CountActiveBookings(ctx context.Context, eventID string) (int, error) {
	count, err := d.Bun.NewSelect().
		Model((*models.Booking)(nil)).
		Where("event_id = ?", eventID).
		Where("status IN (?)", bun.In(activeStatuses)).
		Count(ctx)
	if err != nil {
		return 0, errs.Backend(err, "count active bookings")
	}
	return count, nil
}

// DeleteBooking removes the record entirely. Cancellation keeps no
// history.
func (d *DB) DeleteBooking(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Booking)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errs.Backend(err, "delete booking")
	}
	return nil
}

// CheckInBooking advances confirmed -> checked_in. The status guard in the
// WHERE clause makes a second scan a no-op; the caller turns that into a
// conflict.
func (d *DB) CheckInBooking(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := d.Bun.NewUpdate().
		Model((*models.Booking)(nil)).
		Set("status = ?", models.BookingCheckedIn).
		Set("check_in_time = ?", at).
		Where("id = ?", id).
		Where("status = ?", models.BookingConfirmed).
		Exec(ctx)
	if err != nil {
		return false, errs.Backend(err, "check in booking")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errs.Backend(err, "check in booking")
	}
	return n > 0, nil
}

func (d *DB) GetBookingsByAttendee(ctx context.Context, attendeeID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := d.Bun.NewSelect().
		Model(&bookings).
		Relation("Event").
		Where("attendee_id = ?", attendeeID).
		Order("booking_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, errs.Backend(err, "list bookings")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (d *DB) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var ev models.Event
	err := d.Bun.NewSelect().
		Model(&ev).
		Where("event.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundf("event %s not found", id)
		}
		return nil, errs.Backend(err, "get event")
	}
	return &ev, nil
}
