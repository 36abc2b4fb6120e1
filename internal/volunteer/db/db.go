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

func (d *DB) CreateApplication(ctx context.Context, app models.VolunteerApplication) error {
	if _, err := d.Bun.NewInsert().Model(&app).Exec(ctx); err != nil {
		return errs.Backend(err, "insert application")
	}
	return nil
}

func (d *DB) GetApplicationByID(ctx context.Context, id string) (*models.VolunteerApplication, error) {
	var app models.VolunteerApplication
	err := d.Bun.NewSelect().
		Model(&app).
		Where("volunteer_application.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundf("application %s not found", id)
		}
		return nil, errs.Backend(err, "get application")
	}
	return &app, nil
}

// GetApplication returns the volunteer's application for an event, or nil
// when none exists.
func (d *DB) GetApplication(ctx context.Context, eventID, volunteerID string) (*models.VolunteerApplication, error) {
	var app models.VolunteerApplication
	err := d.Bun.NewSelect().
		Model(&app).
		Where("event_id = ? AND volunteer_id = ?", eventID, volunteerID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errs.Backend(err, "get application")
	}
	return &app, nil
}

func (d *DB) ListApplicationsByEvent(ctx context.Context, eventID string) ([]models.VolunteerApplication, error) {
	var apps []models.VolunteerApplication
	err := d.Bun.NewSelect().
		Model(&apps).
		Relation("Volunteer").
		Where("event_id = ?", eventID).
		Order("volunteer_application.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errs.Backend(err, "list applications")
	}
	if apps == nil {
		apps = []models.VolunteerApplication{}
	}
	return apps, nil
}

// DecideApplication flips a pending application to its terminal status.
// The status guard in the WHERE clause makes the transition one-way: a
// second decision matches no row and reports false.
func (d *DB) DecideApplication(ctx context.Context, id string, decision models.ApplicationStatus) (bool, error) {
	res, err := d.Bun.NewUpdate().
		Model((*models.VolunteerApplication)(nil)).
		Set("status = ?", decision).
		Where("id = ?", id).
		Where("status = ?", models.ApplicationPending).
		Exec(ctx)
	if err != nil {
		return false, errs.Backend(err, "decide application")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errs.Backend(err, "decide application")
	}
	return n > 0, nil
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
