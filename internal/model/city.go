package model

import (
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

type City struct {
	ID        uuid.UUID `json:"id"`
	NameEn    string    `json:"name_en" validate:"required,max=120"`
	NameAr    string    `json:"name_ar" validate:"required,max=120"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
