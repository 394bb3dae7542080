package mariadb

import (
	"context"
	"database/sql"

	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

type PublicTransportRepository struct {
	db *sql.DB
}

var _ port.RecordStore[*model.PublicTransport] = (*PublicTransportRepository)(nil)

func NewPublicTransportRepository(db *sql.DB) *PublicTransportRepository {
	return &PublicTransportRepository{db: db}
}

func (r *PublicTransportRepository) Create(ctx context.Context, p *model.PublicTransport) error {
	const query = `
      INSERT INTO public_transport
        (id, name_en, name_ar, description_en, description_ar, type, city_id, latitude, longitude, image, created_at, updated_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.NameEn, p.NameAr,
		p.DescriptionEn, p.DescriptionAr,
		p.Type, p.CityID,
		p.Latitude, p.Longitude,
		nullable(p.Image), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PublicTransportRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PublicTransport, error) {
	const query = `
      SELECT id, name_en, name_ar, description_en, description_ar, type, city_id, latitude, longitude, image, created_at, updated_at
      FROM public_transport
      WHERE id = ?
    `
	var (
		p     model.PublicTransport
		image sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.NameEn, &p.NameAr,
		&p.DescriptionEn, &p.DescriptionAr,
		&p.Type, &p.CityID,
		&p.Latitude, &p.Longitude,
		&image, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	p.Image = image.String
	return &p, nil
}

func (r *PublicTransportRepository) Update(ctx context.Context, p *model.PublicTransport) error {
	const query = `
      UPDATE public_transport
      SET
        name_en        = ?,
        name_ar        = ?,
        description_en = ?,
        description_ar = ?,
        type           = ?,
        city_id        = ?,
        latitude       = ?,
        longitude      = ?,
        image          = ?,
        updated_at     = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		p.NameEn, p.NameAr,
		p.DescriptionEn, p.DescriptionAr,
		p.Type, p.CityID,
		p.Latitude, p.Longitude,
		nullable(p.Image), p.UpdatedAt,
		p.ID,
	)
	return err
}

func (r *PublicTransportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.ExecContext(ctx, `DELETE FROM public_transport WHERE id = ?`, id))
}
