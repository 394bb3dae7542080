package model

import (
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// Geo holds the coordinates shared by every place-like resource.
type Geo struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// Bilingual holds the english/arabic name and description pairs.
type Bilingual struct {
	NameEn        string `json:"name_en" validate:"required,max=160"`
	NameAr        string `json:"name_ar" validate:"required,max=160"`
	DescriptionEn string `json:"description_en" validate:"required"`
	DescriptionAr string `json:"description_ar" validate:"required"`
}

// Record is the bookkeeping part of every persisted resource.
type Record struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Record) RecordID() uuid.UUID      { return r.ID }
func (r *Record) SetRecordID(id uuid.UUID) { r.ID = id }
func (r *Record) Created() time.Time       { return r.CreatedAt }

func (r *Record) Stamp(created, updated time.Time) {
	r.CreatedAt = created
	r.UpdatedAt = updated
}
