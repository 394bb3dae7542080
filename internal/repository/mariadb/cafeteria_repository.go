package mariadb

import (
	"context"
	"database/sql"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

type CafeteriaRepository struct {
	db *sql.DB
}

var _ port.RecordStore[*model.Cafeteria] = (*CafeteriaRepository)(nil)

func NewCafeteriaRepository(db *sql.DB) *CafeteriaRepository {
	return &CafeteriaRepository{db: db}
}

func (r *CafeteriaRepository) Create(ctx context.Context, c *model.Cafeteria) error {
	logger.Debugf(ctx, "creating database record for cafeteria #%s...", c.ID)

	const query = `
      INSERT INTO cafeterias
        (id, name_en, name_ar, description_en, description_ar, city_id, opening_hours, working_days, payment_method, latitude, longitude, image, created_at, updated_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.NameEn, c.NameAr,
		c.DescriptionEn, c.DescriptionAr,
		c.CityID, c.OpeningHours, c.WorkingDays, c.PaymentMethod,
		c.Latitude, c.Longitude,
		nullable(c.Image), c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *CafeteriaRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Cafeteria, error) {
	const query = `
      SELECT id, name_en, name_ar, description_en, description_ar, city_id, opening_hours, working_days, payment_method, latitude, longitude, image, created_at, updated_at
      FROM cafeterias
      WHERE id = ?
    `
	var (
		c     model.Cafeteria
		image sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.NameEn, &c.NameAr,
		&c.DescriptionEn, &c.DescriptionAr,
		&c.CityID, &c.OpeningHours, &c.WorkingDays, &c.PaymentMethod,
		&c.Latitude, &c.Longitude,
		&image, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	c.Image = image.String
	return &c, nil
}

func (r *CafeteriaRepository) Update(ctx context.Context, c *model.Cafeteria) error {
	logger.Debugf(ctx, "updating database record for cafeteria #%s...", c.ID)

	const query = `
      UPDATE cafeterias
      SET
        name_en        = ?,
        name_ar        = ?,
        description_en = ?,
        description_ar = ?,
        city_id        = ?,
        opening_hours  = ?,
        working_days   = ?,
        payment_method = ?,
        latitude       = ?,
        longitude      = ?,
        image          = ?,
        updated_at     = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		c.NameEn, c.NameAr,
		c.DescriptionEn, c.DescriptionAr,
		c.CityID, c.OpeningHours, c.WorkingDays, c.PaymentMethod,
		c.Latitude, c.Longitude,
		nullable(c.Image), c.UpdatedAt,
		c.ID,
	)
	return err
}

func (r *CafeteriaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.ExecContext(ctx, `DELETE FROM cafeterias WHERE id = ?`, id))
}
