package mariadb

import (
	"context"
	"database/sql"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

type CityRepository struct {
	db *sql.DB
}

// compile-time check: *CityRepository must satisfy port.RecordStore
var _ port.RecordStore[*model.City] = (*CityRepository)(nil)

func NewCityRepository(db *sql.DB) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) Create(ctx context.Context, c *model.City) error {
	logger.Debugf(ctx, "creating database record for city #%s...", c.ID)

	const query = `
      INSERT INTO cities (id, name_en, name_ar, created_at, updated_at)
      VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query, c.ID, c.NameEn, c.NameAr, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *CityRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.City, error) {
	const query = `
      SELECT id, name_en, name_ar, created_at, updated_at
      FROM cities
      WHERE id = ?
    `
	var c model.City
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.NameEn, &c.NameAr, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CityRepository) Update(ctx context.Context, c *model.City) error {
	const query = `
      UPDATE cities
      SET name_en = ?, name_ar = ?, updated_at = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, c.NameEn, c.NameAr, c.UpdatedAt, c.ID)
	return err
}

func (r *CityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger.Debugf(ctx, "deleting database record for city #%s...", id)
	return deleted(r.db.ExecContext(ctx, `DELETE FROM cities WHERE id = ?`, id))
}
