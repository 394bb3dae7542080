package model

import "github.com/fhuszti/tourism-ms-go/internal/uuid"

const (
	TransportBus   = "bus"
	TransportMetro = "metro"
	TransportTram  = "tram"
	TransportTaxi  = "taxi"
	TransportTrain = "train"
	TransportFerry = "ferry"
)

type PublicTransport struct {
	Record
	Bilingual
	Geo
	Type   string    `json:"type" validate:"required,oneof=bus metro tram taxi train ferry"`
	CityID uuid.UUID `json:"city_id" validate:"required"`
	Image  string    `json:"image" validate:"-"`
}

func (p *PublicTransport) Media() MediaSet     { return singleMedia(p.Image) }
func (p *PublicTransport) SetMedia(m MediaSet) { p.Image = firstOf(m) }
func (p *PublicTransport) CityRef() uuid.UUID  { return p.CityID }
