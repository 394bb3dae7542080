package mariadb

import (
	"context"
	"database/sql"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

type FestivalEventRepository struct {
	db *sql.DB
}

var _ port.RecordStore[*model.FestivalEvent] = (*FestivalEventRepository)(nil)

func NewFestivalEventRepository(db *sql.DB) *FestivalEventRepository {
	return &FestivalEventRepository{db: db}
}

func (r *FestivalEventRepository) Create(ctx context.Context, f *model.FestivalEvent) error {
	logger.Debugf(ctx, "creating database record for festival #%s (%s → %s)...", f.ID, f.StartDate.Format("2006-01-02"), f.EndDate.Format("2006-01-02"))

	const query = `
      INSERT INTO festival_events
        (id, name_en, name_ar, description_en, description_ar, category, city_id, start_date, end_date, latitude, longitude, media, created_at, updated_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.NameEn, f.NameAr,
		f.DescriptionEn, f.DescriptionAr,
		f.Category, f.CityID,
		f.StartDate, f.EndDate,
		f.Latitude, f.Longitude,
		f.Gallery, f.CreatedAt, f.UpdatedAt,
	)
	return err
}

func (r *FestivalEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FestivalEvent, error) {
	const query = `
      SELECT id, name_en, name_ar, description_en, description_ar, category, city_id, start_date, end_date, latitude, longitude, media, created_at, updated_at
      FROM festival_events
      WHERE id = ?
    `
	var f model.FestivalEvent
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.NameEn, &f.NameAr,
		&f.DescriptionEn, &f.DescriptionAr,
		&f.Category, &f.CityID,
		&f.StartDate, &f.EndDate,
		&f.Latitude, &f.Longitude,
		&f.Gallery, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (r *FestivalEventRepository) Update(ctx context.Context, f *model.FestivalEvent) error {
	logger.Debugf(ctx, "updating database record for festival #%s...", f.ID)

	const query = `
      UPDATE festival_events
      SET
        name_en        = ?,
        name_ar        = ?,
        description_en = ?,
        description_ar = ?,
        category       = ?,
        city_id        = ?,
        start_date     = ?,
        end_date       = ?,
        latitude       = ?,
        longitude      = ?,
        media          = ?,
        updated_at     = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		f.NameEn, f.NameAr,
		f.DescriptionEn, f.DescriptionAr,
		f.Category, f.CityID,
		f.StartDate, f.EndDate,
		f.Latitude, f.Longitude,
		f.Gallery, f.UpdatedAt,
		f.ID,
	)
	return err
}

func (r *FestivalEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.ExecContext(ctx, `DELETE FROM festival_events WHERE id = ?`, id))
}
