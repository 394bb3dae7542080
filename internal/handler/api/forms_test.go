package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

func TestReadForm_JSON(t *testing.T) {
	body := `{"name_en":"Souk","latitude":24.5,"keep_images":["a.png","b.png"],"empty":[],"gone":null}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	v, err := readForm(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.Get("name_en"); got != "Souk" {
		t.Errorf("name_en = %q", got)
	}
	if got := v.Get("latitude"); got != "24.5" {
		t.Errorf("latitude = %q", got)
	}
	if got := v["keep_images"]; len(got) != 2 || got[1] != "b.png" {
		t.Errorf("keep_images = %v", got)
	}
	if _, ok := v["empty"]; !ok {
		t.Error("an empty array should still be present")
	}
	if _, ok := v["gone"]; ok {
		t.Error("null should be dropped")
	}
}

func TestReadForm_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	if _, err := readForm(req); err == nil {
		t.Fatal("expected an error")
	}
}

func TestReadForm_URLEncoded(t *testing.T) {
	form := url.Values{"name_en": {" Riyadh "}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	v, err := readForm(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := text(v, "name_en"); got != "Riyadh" {
		t.Errorf("name_en = %q", got)
	}
}

func TestReadForm_AlreadyParsed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.PostForm = url.Values{"type": {"museum"}}

	v, err := readForm(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Get("type") != "museum" {
		t.Errorf("type = %q", v.Get("type"))
	}
}

func TestFieldParsers(t *testing.T) {
	v := url.Values{
		"lat":   {"24.7136"},
		"bad":   {"north"},
		"day":   {"2025-03-01"},
		"stamp": {"2025-03-01T10:00:00+03:00"},
		"id":    {"2b1c3d4e-0000-4000-8000-000000000001"},
	}

	if f := float(v, "lat"); f == nil || *f != 24.7136 {
		t.Errorf("float(lat) = %v", f)
	}
	if f := float(v, "bad"); f != nil {
		t.Errorf("float(bad) = %v, want nil", *f)
	}
	if f := float(v, "missing"); f != nil {
		t.Errorf("float(missing) = %v, want nil", *f)
	}

	if d := date(v, "day"); !d.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date(day) = %v", d)
	}
	if d := date(v, "stamp"); !d.Equal(time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)) {
		t.Errorf("date(stamp) = %v", d)
	}
	if d := date(v, "bad"); !d.IsZero() {
		t.Errorf("date(bad) = %v, want zero", d)
	}

	if id := uuidField(v, "id"); id == uuid.Nil {
		t.Error("uuidField(id) should parse")
	}
	if id := uuidField(v, "bad"); id != uuid.Nil {
		t.Errorf("uuidField(bad) = %v, want nil", id)
	}
}

func TestKeepList(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   *model.MediaSet
	}{
		{"not sent", url.Values{}, nil},
		{"repeated fields", url.Values{"keep": {"a.png", "b.png"}}, &model.MediaSet{"a.png", "b.png"}},
		{"json array", url.Values{"keep": {`["a.png","a.png"]`}}, &model.MediaSet{"a.png"}},
		{"explicitly empty", url.Values{"keep": {}}, &model.MediaSet{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := keepList(tc.values, "keep")
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			if got == nil {
				return
			}
			if len(*got) != len(*tc.want) {
				t.Fatalf("got %v, want %v", *got, *tc.want)
			}
			for i := range *got {
				if (*got)[i] != (*tc.want)[i] {
					t.Errorf("got %v, want %v", *got, *tc.want)
				}
			}
		})
	}
}

func TestDecodeFestivalEvent(t *testing.T) {
	v := url.Values{
		"name_en":        {"Season"},
		"name_ar":        {"موسم"},
		"description_en": {"desc"},
		"description_ar": {"وصف"},
		"latitude":       {"24.7"},
		"longitude":      {"46.6"},
		"category":       {"cultural"},
		"city_id":        {"2b1c3d4e-0000-4000-8000-000000000001"},
		"start_date":     {"2025-10-10"},
		"end_date":       {"2025-12-31"},
	}

	ev := DecodeFestivalEvent(v)
	if ev.NameEn != "Season" || ev.NameAr != "موسم" {
		t.Errorf("names = %q / %q", ev.NameEn, ev.NameAr)
	}
	if ev.Latitude == nil || *ev.Latitude != 24.7 {
		t.Errorf("latitude = %v", ev.Latitude)
	}
	if ev.Category != "cultural" {
		t.Errorf("category = %q", ev.Category)
	}
	if ev.CityID == uuid.Nil {
		t.Error("city_id not decoded")
	}
	if !ev.EndDate.After(ev.StartDate) {
		t.Errorf("dates = %v .. %v", ev.StartDate, ev.EndDate)
	}
	if len(ev.Media()) != 0 {
		t.Errorf("decoded media should be empty, got %v", ev.Media())
	}
}
