package model

import (
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

const (
	FestivalCategoryFestival   = "festival"
	FestivalCategoryConcert    = "concert"
	FestivalCategoryExhibition = "exhibition"
	FestivalCategorySports     = "sports"
	FestivalCategoryReligious  = "religious"
	FestivalCategoryCultural   = "cultural"
)

// FestivalEvent is a dated happening; its media mixes pictures and videos.
type FestivalEvent struct {
	Record
	Bilingual
	Geo
	Category  string    `json:"category" validate:"required,oneof=festival concert exhibition sports religious cultural"`
	CityID    uuid.UUID `json:"city_id" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	Gallery   MediaSet  `json:"media" validate:"-"`
}

func (f *FestivalEvent) Media() MediaSet     { return f.Gallery }
func (f *FestivalEvent) SetMedia(m MediaSet) { f.Gallery = m }
func (f *FestivalEvent) CityRef() uuid.UUID  { return f.CityID }
