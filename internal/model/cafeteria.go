package model

import "github.com/fhuszti/tourism-ms-go/internal/uuid"

const (
	OpeningHoursMorning   = "morning"
	OpeningHoursAfternoon = "afternoon"
	OpeningHoursEvening   = "evening"
	OpeningHoursAllDay    = "all_day"

	WorkingDaysWeekdays = "weekdays"
	WorkingDaysWeekends = "weekends"
	WorkingDaysAllWeek  = "all_week"

	PaymentCash        = "cash"
	PaymentCard        = "card"
	PaymentCashAndCard = "cash_and_card"
)

type Cafeteria struct {
	Record
	Bilingual
	Geo
	CityID        uuid.UUID `json:"city_id" validate:"required"`
	OpeningHours  string    `json:"opening_hours" validate:"required,oneof=morning afternoon evening all_day"`
	WorkingDays   string    `json:"working_days" validate:"required,oneof=weekdays weekends all_week"`
	PaymentMethod string    `json:"payment_method" validate:"required,oneof=cash card cash_and_card"`
	Image         string    `json:"image" validate:"-"`
}

func (c *Cafeteria) Media() MediaSet     { return singleMedia(c.Image) }
func (c *Cafeteria) SetMedia(m MediaSet) { c.Image = firstOf(m) }
func (c *Cafeteria) CityRef() uuid.UUID  { return c.CityID }
