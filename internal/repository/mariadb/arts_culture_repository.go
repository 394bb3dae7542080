package mariadb

import (
	"context"
	"database/sql"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

type ArtsCultureRepository struct {
	db *sql.DB
}

var _ port.RecordStore[*model.ArtsCulture] = (*ArtsCultureRepository)(nil)

func NewArtsCultureRepository(db *sql.DB) *ArtsCultureRepository {
	return &ArtsCultureRepository{db: db}
}

func (r *ArtsCultureRepository) Create(ctx context.Context, a *model.ArtsCulture) error {
	logger.Debugf(ctx, "creating database record for arts & culture site #%s with %d image(s)...", a.ID, len(a.Images))

	const query = `
      INSERT INTO arts_culture
        (id, name_en, name_ar, description_en, description_ar, type, city_id, latitude, longitude, images, created_at, updated_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.NameEn, a.NameAr,
		a.DescriptionEn, a.DescriptionAr,
		a.Type, a.CityID,
		a.Latitude, a.Longitude,
		a.Images, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (r *ArtsCultureRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ArtsCulture, error) {
	const query = `
      SELECT id, name_en, name_ar, description_en, description_ar, type, city_id, latitude, longitude, images, created_at, updated_at
      FROM arts_culture
      WHERE id = ?
    `
	a, err := scanArtsCulture(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *ArtsCultureRepository) Update(ctx context.Context, a *model.ArtsCulture) error {
	logger.Debugf(ctx, "updating database record for arts & culture site #%s...", a.ID)

	const query = `
      UPDATE arts_culture
      SET
        name_en        = ?,
        name_ar        = ?,
        description_en = ?,
        description_ar = ?,
        type           = ?,
        city_id        = ?,
        latitude       = ?,
        longitude      = ?,
        images         = ?,
        updated_at     = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		a.NameEn, a.NameAr,
		a.DescriptionEn, a.DescriptionAr,
		a.Type, a.CityID,
		a.Latitude, a.Longitude,
		a.Images, a.UpdatedAt,
		a.ID, // WHERE clause
	)
	return err
}

func (r *ArtsCultureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.ExecContext(ctx, `DELETE FROM arts_culture WHERE id = ?`, id))
}

func scanArtsCulture(row rowScanner) (*model.ArtsCulture, error) {
	var a model.ArtsCulture
	if err := row.Scan(
		&a.ID, &a.NameEn, &a.NameAr,
		&a.DescriptionEn, &a.DescriptionAr,
		&a.Type, &a.CityID,
		&a.Latitude, &a.Longitude,
		&a.Images, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
