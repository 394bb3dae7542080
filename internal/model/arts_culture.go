package model

import "github.com/fhuszti/tourism-ms-go/internal/uuid"

const (
	ArtsCultureMuseum         = "museum"
	ArtsCultureGallery        = "gallery"
	ArtsCultureTheater        = "theater"
	ArtsCultureHeritageSite   = "heritage_site"
	ArtsCultureCulturalCenter = "cultural_center"
	ArtsCultureLibrary        = "library"
)

// ArtsCulture is a museum, gallery or other cultural site.
type ArtsCulture struct {
	Record
	Bilingual
	Geo
	Type   string    `json:"type" validate:"required,oneof=museum gallery theater heritage_site cultural_center library"`
	CityID uuid.UUID `json:"city_id" validate:"required"`
	Images MediaSet  `json:"images" validate:"-"`
}

func (a *ArtsCulture) Media() MediaSet     { return a.Images }
func (a *ArtsCulture) SetMedia(m MediaSet) { a.Images = m }
func (a *ArtsCulture) CityRef() uuid.UUID  { return a.CityID }
