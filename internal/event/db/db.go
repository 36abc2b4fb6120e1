package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"eventhub/internal/errs"
	"eventhub/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// activeCountExpr joins the active booking count next to each event row.
const activeCountExpr = "(SELECT COUNT(*) FROM bookings b WHERE b.event_id = event.id AND b.status IN ('confirmed', 'checked_in'))"

func (d *DB) CreateEvent(ctx context.Context, ev models.Event) error {
	if _, err := d.Bun.NewInsert().Model(&ev).Exec(ctx); err != nil {
		return errs.Backend(err, "insert event")
	}
	return nil
}

func (d *DB) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	var ev models.Event
	err := d.Bun.NewSelect().
		Model(&ev).
		ColumnExpr("event.*").
		ColumnExpr(activeCountExpr+" AS bookings_count").
		Relation("Organizer").
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

// UpdateEvent writes the editable fields only. Ownership never moves.
func (d *DB) UpdateEvent(ctx context.Context, ev models.Event) error {
	_, err := d.Bun.NewUpdate().
		Model(&ev).
		Column("title", "description", "venue", "date_time", "capacity", "category", "banner_url", "status", "price", "updated_at").
		Where("id = ?", ev.ID).
		Exec(ctx)
	if err != nil {
		return errs.Backend(err, "update event")
	}
	return nil
}

func (d *DB) ListPublishedEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		ColumnExpr("event.*").
		ColumnExpr(activeCountExpr+" AS bookings_count").
		Where("event.status = ?", models.EventPublished).
		Order("date_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, errs.Backend(err, "list published events")
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

func (d *DB) ListEventsByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		ColumnExpr("event.*").
		ColumnExpr(activeCountExpr+" AS bookings_count").
		Where("event.organizer_id = ?", organizerID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errs.Backend(err, "list organizer events")
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

// ListBookingsForOrganizer returns every booking on the organizer's
// events, events joined, for dashboard snapshots.
func (d *DB) ListBookingsForOrganizer(ctx context.Context, organizerID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := d.Bun.NewSelect().
		Model(&bookings).
		Relation("Event").
		Join("JOIN events e ON e.id = booking.event_id").
		Where("e.organizer_id = ?", organizerID).
		Scan(ctx)
	if err != nil {
		return nil, errs.Backend(err, "list organizer bookings")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
