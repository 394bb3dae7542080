package api

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/resource"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

const maxFormMemory = 1 << 20

// Decoder builds a record from submitted fields.
type Decoder[R any] func(v url.Values) R

// readForm returns the submitted fields, whether they came as a form the
// upload middleware already parsed, a plain form, or a JSON object.
func readForm(r *http.Request) (url.Values, error) {
	if r.PostForm != nil {
		return r.PostForm, nil
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/json":
		return jsonValues(r)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
	}
	return r.PostForm, nil
}

func jsonValues(r *http.Request) (url.Values, error) {
	var body map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	v := url.Values{}
	for k, raw := range body {
		switch val := raw.(type) {
		case nil:
		case []any:
			// an empty array still marks the key as sent
			v[k] = []string{}
			for _, e := range val {
				v[k] = append(v[k], scalar(e))
			}
		default:
			v.Set(k, scalar(val))
		}
	}
	return v, nil
}

func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func text(v url.Values, key string) string {
	return strings.TrimSpace(v.Get(key))
}

// float leaves nil for a missing or unparsable number.
func float(v url.Values, key string) *float64 {
	s := text(v, key)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// date accepts a calendar date or an RFC 3339 timestamp; zero otherwise.
func date(v url.Values, key string) time.Time {
	s := text(v, key)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func uuidField(v url.Values, key string) uuid.UUID {
	parsed, err := uuid.Parse(text(v, key))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}

// keepList reads the list of current media to retain, nil when not sent.
func keepList(v url.Values, key string) *model.MediaSet {
	vals, ok := v[key]
	return resource.ParseKeepList(vals, ok)
}

func bilingual(v url.Values) model.Bilingual {
	return model.Bilingual{
		NameEn:        text(v, "name_en"),
		NameAr:        text(v, "name_ar"),
		DescriptionEn: text(v, "description_en"),
		DescriptionAr: text(v, "description_ar"),
	}
}

func geo(v url.Values) model.Geo {
	return model.Geo{Latitude: float(v, "latitude"), Longitude: float(v, "longitude")}
}

func DecodeCity(v url.Values) *model.City {
	return &model.City{NameEn: text(v, "name_en"), NameAr: text(v, "name_ar")}
}

func DecodeArtsCulture(v url.Values) *model.ArtsCulture {
	return &model.ArtsCulture{
		Bilingual: bilingual(v),
		Geo:       geo(v),
		Type:      text(v, "type"),
		CityID:    uuidField(v, "city_id"),
	}
}

func DecodeCafeteria(v url.Values) *model.Cafeteria {
	return &model.Cafeteria{
		Bilingual:     bilingual(v),
		Geo:           geo(v),
		CityID:        uuidField(v, "city_id"),
		OpeningHours:  text(v, "opening_hours"),
		WorkingDays:   text(v, "working_days"),
		PaymentMethod: text(v, "payment_method"),
	}
}

func DecodeFestivalEvent(v url.Values) *model.FestivalEvent {
	return &model.FestivalEvent{
		Bilingual: bilingual(v),
		Geo:       geo(v),
		Category:  text(v, "category"),
		CityID:    uuidField(v, "city_id"),
		StartDate: date(v, "start_date"),
		EndDate:   date(v, "end_date"),
	}
}

func DecodePublicTransport(v url.Values) *model.PublicTransport {
	return &model.PublicTransport{
		Bilingual: bilingual(v),
		Geo:       geo(v),
		Type:      text(v, "type"),
		CityID:    uuidField(v, "city_id"),
	}
}
