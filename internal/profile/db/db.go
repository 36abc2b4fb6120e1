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

func (d *DB) CreateProfile(ctx context.Context, p models.Profile) error {
	if _, err := d.Bun.NewInsert().Model(&p).Exec(ctx); err != nil {
		return errs.Backend(err, "insert profile")
	}
	return nil
}

func (d *DB) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	err := d.Bun.NewSelect().
		Model(&p).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundf("profile %s not found", id)
		}
		return nil, errs.Backend(err, "get profile")
	}
	return &p, nil
}

// UpdateProfile writes the self-editable columns only. Role and email are
// deliberately not in the column list; the role a profile is created with
// is the role it keeps.
func (d *DB) UpdateProfile(ctx context.Context, p models.Profile) error {
	_, err := d.Bun.NewUpdate().
		Model(&p).
		Column("full_name", "phone", "company", "skills", "avatar_url", "updated_at").
		Where("id = ?", p.ID).
		Exec(ctx)
	if err != nil {
		return errs.Backend(err, "update profile")
	}
	return nil
}
