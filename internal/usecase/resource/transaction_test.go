package resource

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/mock"
	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

var (
	cityID    = uuid.MustParse("6f1b2c3d-0000-4000-8000-000000000001")
	recordID  = uuid.MustParse("6f1b2c3d-0000-4000-8000-0000000000aa")
	fixedNow  = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	createdAt = time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)
)

func ptr(f float64) *float64 { return &f }

func newSite() *model.ArtsCulture {
	return &model.ArtsCulture{
		Bilingual: model.Bilingual{
			NameEn:        "National Museum",
			NameAr:        "المتحف الوطني",
			DescriptionEn: "Collections of the region",
			DescriptionAr: "مجموعات المنطقة",
		},
		Geo:    model.Geo{Latitude: ptr(24.64), Longitude: ptr(46.71)},
		Type:   model.ArtsCultureMuseum,
		CityID: cityID,
	}
}

func newCafe() *model.Cafeteria {
	return &model.Cafeteria{
		Bilingual: model.Bilingual{
			NameEn:        "Corner Cafe",
			NameAr:        "مقهى الزاوية",
			DescriptionEn: "Coffee and pastries",
			DescriptionAr: "قهوة ومعجنات",
		},
		Geo:           model.Geo{Latitude: ptr(21.5), Longitude: ptr(39.2)},
		CityID:        cityID,
		OpeningHours:  model.OpeningHoursAllDay,
		WorkingDays:   model.WorkingDaysAllWeek,
		PaymentMethod: model.PaymentCashAndCard,
	}
}

type fixture[R Resource] struct {
	tx      *Transaction[R]
	records *mock.RecordStore[R]
	cities  *mock.RecordStore[*model.City]
	blobs   *mock.BlobStore
	cache   *mock.Cache
}

func newFixture[R Resource](schema Schema[R], ref func(R) uuid.UUID) fixture[R] {
	f := fixture[R]{
		records: mock.NewRecordStore[R](),
		cities:  mock.NewRecordStore[*model.City](),
		blobs:   &mock.BlobStore{},
		cache:   &mock.Cache{},
	}
	f.cities.Records[cityID] = &model.City{ID: cityID, NameEn: "Riyadh", NameAr: "الرياض"}
	schema.References = []Reference[R]{ReferenceTo[R, *model.City]("city_id", "city", ref, f.cities)}
	f.tx = NewTransaction(schema, f.records, f.blobs,
		WithCache[R](f.cache),
		WithIDGen[R](func() uuid.UUID { return recordID }),
		WithClock[R](func() time.Time { return fixedNow }),
	)
	return f
}

func siteFixture() fixture[*model.ArtsCulture] {
	return newFixture(Schema[*model.ArtsCulture]{
		Kind:       "arts_culture",
		Category:   "arts-culture",
		MediaField: "images",
		Slots:      Precedence("images", "image", "videos"),
	}, (*model.ArtsCulture).CityRef)
}

func cafeFixture() fixture[*model.Cafeteria] {
	return newFixture(Schema[*model.Cafeteria]{
		Kind:       "cafeteria",
		Category:   "cafeterias",
		MediaField: "image",
		MaxMedia:   1,
		Slots:      Flatten("image", "images"),
	}, (*model.Cafeteria).CityRef)
}

func TestCreate_Success(t *testing.T) {
	f := siteFixture()
	ctx := context.Background()

	got, err := f.tx.Create(ctx, CreateInput[*model.ArtsCulture]{
		Record: newSite(),
		Uploads: RawUploads{
			"images": []string{"a.webp", "b.webp"},
			"videos": "clip.mp4",
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got.ID != recordID {
		t.Errorf("ID = %s; want %s", got.ID, recordID)
	}
	if !got.CreatedAt.Equal(fixedNow) || !got.UpdatedAt.Equal(fixedNow) {
		t.Errorf("timestamps = %v/%v; want %v", got.CreatedAt, got.UpdatedAt, fixedNow)
	}
	if !reflect.DeepEqual(got.Images, model.MediaSet{"a.webp", "b.webp"}) {
		t.Errorf("Images = %v", got.Images)
	}
	if len(f.records.Created) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(f.records.Created))
	}
	// the losing slot is discarded
	if !reflect.DeepEqual(f.blobs.Deleted(), model.MediaSet{"clip.mp4"}) {
		t.Errorf("deleted = %v; want [clip.mp4]", f.blobs.Deleted())
	}
	if f.blobs.DeleteCalls[0].Category != "arts-culture" {
		t.Errorf("category = %q", f.blobs.DeleteCalls[0].Category)
	}
}

func TestCreate_FailuresCompensateStagedUploads(t *testing.T) {
	dbErr := errors.New("db down")

	tests := []struct {
		name      string
		record    func() *model.ArtsCulture
		uploads   RawUploads
		setup     func(f fixture[*model.ArtsCulture])
		wantClass Class
		wantField map[string]string
		persisted bool
	}{
		{
			name:      "missing required field",
			record:    func() *model.ArtsCulture { r := newSite(); r.NameEn = ""; return r },
			uploads:   RawUploads{"images": []string{"a.webp", "b.webp"}},
			wantClass: ClassValidation,
			wantField: map[string]string{"name_en": "required"},
		},
		{
			name:      "bad enum",
			record:    func() *model.ArtsCulture { r := newSite(); r.Type = "casino"; return r },
			uploads:   RawUploads{"images": "a.webp"},
			wantClass: ClassValidation,
			wantField: map[string]string{"type": "oneof"},
		},
		{
			name:      "malformed slot",
			record:    newSite,
			uploads:   RawUploads{"images": []any{"a.webp", 7}},
			wantClass: ClassValidation,
			wantField: map[string]string{"images": "media"},
		},
		{
			name:      "missing record",
			record:    func() *model.ArtsCulture { return nil },
			uploads:   RawUploads{"images": "a.webp"},
			wantClass: ClassValidation,
			wantField: map[string]string{"body": "required"},
		},
		{
			name:      "unknown city",
			record:    func() *model.ArtsCulture { r := newSite(); r.CityID = recordID; return r },
			uploads:   RawUploads{"images": "a.webp"},
			wantClass: ClassNotFound,
		},
		{
			name:      "city lookup fails",
			record:    newSite,
			uploads:   RawUploads{"images": "a.webp"},
			setup:     func(f fixture[*model.ArtsCulture]) { f.cities.GetErr = dbErr },
			wantClass: ClassInternal,
		},
		{
			name:      "persist fails",
			record:    newSite,
			uploads:   RawUploads{"images": "a.webp", "videos": "v.mp4"},
			setup:     func(f fixture[*model.ArtsCulture]) { f.records.CreateErr = dbErr },
			wantClass: ClassInternal,
			persisted: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := siteFixture()
			if tc.setup != nil {
				tc.setup(f)
			}

			_, err := f.tx.Create(context.Background(), CreateInput[*model.ArtsCulture]{Record: tc.record(), Uploads: tc.uploads})
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := Classify(err); got != tc.wantClass {
				t.Errorf("class = %v; want %v (err: %v)", got, tc.wantClass, err)
			}
			if tc.wantField != nil {
				var vErr *ValidationError
				if !errors.As(err, &vErr) || !reflect.DeepEqual(vErr.Fields, tc.wantField) {
					t.Errorf("err = %v; want fields %v", err, tc.wantField)
				}
			}
			if tc.persisted != (len(f.records.Created) > 0) {
				t.Errorf("records.Create called %d times", len(f.records.Created))
			}

			want := Normalize(tc.uploads).All()
			if !reflect.DeepEqual(f.blobs.Deleted(), want) {
				t.Errorf("compensated %v; want %v", f.blobs.Deleted(), want)
			}
		})
	}
}

func TestCreate_PersistErrorReturnedUnchanged(t *testing.T) {
	f := siteFixture()
	dbErr := errors.New("duplicate entry")
	f.records.CreateErr = dbErr
	f.blobs.DeleteErr = errors.New("minio unreachable")

	_, err := f.tx.Create(context.Background(), CreateInput[*model.ArtsCulture]{
		Record:  newSite(),
		Uploads: RawUploads{"images": "a.webp"},
	})
	if !errors.Is(err, dbErr) {
		t.Fatalf("err = %v; want %v", err, dbErr)
	}
}

func TestCreate_CompensatesOnCancelledContext(t *testing.T) {
	f := siteFixture()
	f.records.CreateErr = context.Canceled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.tx.Create(ctx, CreateInput[*model.ArtsCulture]{
		Record:  newSite(),
		Uploads: RawUploads{"images": "a.webp"},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if !reflect.DeepEqual(f.blobs.Deleted(), model.MediaSet{"a.webp"}) {
		t.Errorf("deleted = %v", f.blobs.Deleted())
	}
}

func TestCreate_SingleMediaCap(t *testing.T) {
	f := cafeFixture()

	_, err := f.tx.Create(context.Background(), CreateInput[*model.Cafeteria]{
		Record:  newCafe(),
		Uploads: RawUploads{"image": "a.png", "images": []string{"b.png"}},
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Fields["image"] != "max" {
		t.Fatalf("err = %v; want image=max", err)
	}
	if !reflect.DeepEqual(f.blobs.Deleted(), model.MediaSet{"a.png", "b.png"}) {
		t.Errorf("deleted = %v", f.blobs.Deleted())
	}

	got, err := f.tx.Create(context.Background(), CreateInput[*model.Cafeteria]{
		Record:  newCafe(),
		Uploads: RawUploads{"images": []string{"c.png"}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got.Image != "c.png" {
		t.Errorf("Image = %q; want c.png", got.Image)
	}
}

func seedSite(f fixture[*model.ArtsCulture], media ...string) {
	existing := newSite()
	existing.ID = recordID
	existing.CreatedAt = createdAt
	existing.UpdatedAt = createdAt
	existing.Images = model.MediaSet(media)
	f.records.Records[recordID] = existing
}

func TestUpdate_Reconciliation(t *testing.T) {
	keep := func(refs ...string) *model.MediaSet {
		m := model.MediaSet(refs)
		return &m
	}

	tests := []struct {
		name        string
		old         []string
		uploads     RawUploads
		keep        *model.MediaSet
		wantMedia   model.MediaSet
		wantDeleted model.MediaSet
	}{
		{
			name:        "fields only",
			old:         []string{"A", "B"},
			wantMedia:   model.MediaSet{"A", "B"},
			wantDeleted: nil,
		},
		{
			name:        "replace all",
			old:         []string{"A", "B"},
			uploads:     RawUploads{"images": "C"},
			wantMedia:   model.MediaSet{"C"},
			wantDeleted: model.MediaSet{"A", "B"},
		},
		{
			name:        "keep and add",
			old:         []string{"A", "B"},
			uploads:     RawUploads{"images": []string{"C"}},
			keep:        keep("B"),
			wantMedia:   model.MediaSet{"B", "C"},
			wantDeleted: model.MediaSet{"A"},
		},
		{
			name:        "keep only leaves files in storage",
			old:         []string{"A", "B", "C"},
			keep:        keep("A"),
			wantMedia:   model.MediaSet{"A"},
			wantDeleted: nil,
		},
		{
			name:        "foreign keep entries are ignored",
			old:         []string{"A", "B"},
			uploads:     RawUploads{"images": "C"},
			keep:        keep("B", "someone-elses.png"),
			wantMedia:   model.MediaSet{"B", "C"},
			wantDeleted: model.MediaSet{"A"},
		},
		{
			name:        "losing slot discarded after commit",
			old:         []string{"A"},
			uploads:     RawUploads{"images": "C", "videos": "V"},
			wantMedia:   model.MediaSet{"C"},
			wantDeleted: model.MediaSet{"A", "V"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := siteFixture()
			seedSite(f, tc.old...)

			got, err := f.tx.Update(context.Background(), UpdateInput[*model.ArtsCulture]{
				ID:      recordID,
				Record:  newSite(),
				Uploads: tc.uploads,
				Keep:    tc.keep,
			})
			if err != nil {
				t.Fatalf("Update returned error: %v", err)
			}
			if !reflect.DeepEqual(got.Images, tc.wantMedia) {
				t.Errorf("media = %v; want %v", got.Images, tc.wantMedia)
			}
			if got.ID != recordID || !got.CreatedAt.Equal(createdAt) || !got.UpdatedAt.Equal(fixedNow) {
				t.Errorf("bookkeeping = %s %v %v", got.ID, got.CreatedAt, got.UpdatedAt)
			}
			if len(f.records.Updated) != 1 {
				t.Errorf("records.Update called %d times", len(f.records.Updated))
			}
			if !reflect.DeepEqual(f.blobs.Deleted(), tc.wantDeleted) {
				t.Errorf("deleted = %v; want %v", f.blobs.Deleted(), tc.wantDeleted)
			}
			if !f.cache.DeleteCalled || f.cache.DeletedKind != "arts_culture" || f.cache.DeletedID != recordID {
				t.Errorf("cache not invalidated: %+v", f.cache)
			}
		})
	}
}

func TestUpdate_NotFoundCompensates(t *testing.T) {
	f := siteFixture()

	_, err := f.tx.Update(context.Background(), UpdateInput[*model.ArtsCulture]{
		ID:      recordID,
		Record:  newSite(),
		Uploads: RawUploads{"images": "C"},
	})
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) || nfErr.Kind != "arts_culture" {
		t.Fatalf("err = %v; want arts_culture not found", err)
	}
	if len(f.records.Updated) != 0 {
		t.Error("records.Update should not be called")
	}
	if !reflect.DeepEqual(f.blobs.Deleted(), model.MediaSet{"C"}) {
		t.Errorf("deleted = %v", f.blobs.Deleted())
	}
}

func TestUpdate_PersistFailureKeepsOldMedia(t *testing.T) {
	f := siteFixture()
	seedSite(f, "A", "B")
	dbErr := errors.New("lock wait timeout")
	f.records.UpdateErr = dbErr

	_, err := f.tx.Update(context.Background(), UpdateInput[*model.ArtsCulture]{
		ID:      recordID,
		Record:  newSite(),
		Uploads: RawUploads{"images": "C"},
	})
	if !errors.Is(err, dbErr) {
		t.Fatalf("err = %v; want %v", err, dbErr)
	}
	if !reflect.DeepEqual(f.blobs.Deleted(), model.MediaSet{"C"}) {
		t.Errorf("deleted = %v; only the new upload may go", f.blobs.Deleted())
	}
	if f.cache.DeleteCalled {
		t.Error("cache should not be invalidated on failure")
	}
}

func TestUpdate_CleanupFailureDoesNotFailRequest(t *testing.T) {
	f := siteFixture()
	seedSite(f, "A")
	f.blobs.DeleteErr = errors.New("minio unreachable")
	f.cache.DeleteErr = errors.New("redis unreachable")

	got, err := f.tx.Update(context.Background(), UpdateInput[*model.ArtsCulture]{
		ID:      recordID,
		Record:  newSite(),
		Uploads: RawUploads{"images": "C"},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !reflect.DeepEqual(got.Images, model.MediaSet{"C"}) {
		t.Errorf("media = %v", got.Images)
	}
}

func TestCommittedCleanupSurvivesCancelledRequest(t *testing.T) {
	tests := []struct {
		name        string
		run         func(ctx context.Context, f fixture[*model.ArtsCulture]) error
		wantDeleted model.MediaSet
	}{
		{
			name: "update prunes replaced media",
			run: func(ctx context.Context, f fixture[*model.ArtsCulture]) error {
				_, err := f.tx.Update(ctx, UpdateInput[*model.ArtsCulture]{
					ID:      recordID,
					Record:  newSite(),
					Uploads: RawUploads{"images": "new.png"},
				})
				return err
			},
			wantDeleted: model.MediaSet{"old-a.png", "old-b.png"},
		},
		{
			name: "update discards the losing slot",
			run: func(ctx context.Context, f fixture[*model.ArtsCulture]) error {
				keep := model.MediaSet{"old-a.png", "old-b.png"}
				_, err := f.tx.Update(ctx, UpdateInput[*model.ArtsCulture]{
					ID:      recordID,
					Record:  newSite(),
					Uploads: RawUploads{"images": "new.png", "videos": "clip.mp4"},
					Keep:    &keep,
				})
				return err
			},
			wantDeleted: model.MediaSet{"clip.mp4"},
		},
		{
			name: "delete removes media",
			run: func(ctx context.Context, f fixture[*model.ArtsCulture]) error {
				return f.tx.Delete(ctx, recordID)
			},
			wantDeleted: model.MediaSet{"old-a.png", "old-b.png"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := siteFixture()
			seedSite(f, "old-a.png", "old-b.png")
			f.blobs.RejectCancelled = true
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if err := tc.run(ctx, f); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(f.blobs.Rejected) != 0 {
				t.Errorf("deletes ran on the cancelled context: %v", f.blobs.Rejected)
			}
			if !reflect.DeepEqual(f.blobs.Deleted(), tc.wantDeleted) {
				t.Errorf("deleted = %v; want %v", f.blobs.Deleted(), tc.wantDeleted)
			}
		})
	}
}

func TestUpdate_SingleMediaCapCountsKeptMedia(t *testing.T) {
	f := cafeFixture()
	existing := newCafe()
	existing.ID = recordID
	existing.Image = "old.png"
	f.records.Records[recordID] = existing
	keep := model.MediaSet{"old.png"}

	_, err := f.tx.Update(context.Background(), UpdateInput[*model.Cafeteria]{
		ID:      recordID,
		Record:  newCafe(),
		Uploads: RawUploads{"image": "new.png"},
		Keep:    &keep,
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Fields["image"] != "max" {
		t.Fatalf("err = %v; want image=max", err)
	}
	if len(f.records.Updated) != 0 {
		t.Error("records.Update should not be called")
	}
	if !reflect.DeepEqual(f.blobs.Deleted(), model.MediaSet{"new.png"}) {
		t.Errorf("deleted = %v", f.blobs.Deleted())
	}
}

func TestDelete(t *testing.T) {
	dbErr := errors.New("fk violation")

	tests := []struct {
		name        string
		media       []string
		seed        bool
		setup       func(f fixture[*model.ArtsCulture])
		wantClass   Class
		wantErr     bool
		wantDeleted model.MediaSet
		wantRecDel  int
	}{
		{
			name:        "removes media then record",
			media:       []string{"A", "B"},
			seed:        true,
			wantDeleted: model.MediaSet{"A", "B"},
			wantRecDel:  1,
		},
		{
			name:       "no media skips storage",
			seed:       true,
			wantRecDel: 1,
		},
		{
			name:        "storage failure still deletes record",
			media:       []string{"A"},
			seed:        true,
			setup:       func(f fixture[*model.ArtsCulture]) { f.blobs.DeleteErr = errors.New("minio down") },
			wantDeleted: model.MediaSet{"A"},
			wantRecDel:  1,
		},
		{
			name:        "record failure propagates",
			media:       []string{"A"},
			seed:        true,
			setup:       func(f fixture[*model.ArtsCulture]) { f.records.DeleteErr = dbErr },
			wantErr:     true,
			wantClass:   ClassInternal,
			wantDeleted: model.MediaSet{"A"},
			wantRecDel:  1,
		},
		{
			name:      "not found",
			wantErr:   true,
			wantClass: ClassNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := siteFixture()
			if tc.seed {
				seedSite(f, tc.media...)
			}
			if tc.setup != nil {
				tc.setup(f)
			}

			err := f.tx.Delete(context.Background(), recordID)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if Classify(err) != tc.wantClass {
					t.Errorf("class = %v; want %v", Classify(err), tc.wantClass)
				}
			} else if err != nil {
				t.Fatalf("Delete returned error: %v", err)
			}
			if !reflect.DeepEqual(f.blobs.Deleted(), tc.wantDeleted) {
				t.Errorf("deleted = %v; want %v", f.blobs.Deleted(), tc.wantDeleted)
			}
			if f.records.DeleteCalls != tc.wantRecDel {
				t.Errorf("records.Delete called %d times; want %d", f.records.DeleteCalls, tc.wantRecDel)
			}
			if f.cache.DeleteCalled != (err == nil) {
				t.Errorf("cache invalidated = %v", f.cache.DeleteCalled)
			}
		})
	}
}

func TestGet(t *testing.T) {
	f := siteFixture()
	seedSite(f, "A")

	got, err := f.tx.Get(context.Background(), recordID)
	if err != nil || got.ID != recordID {
		t.Fatalf("Get = %v, %v", got, err)
	}

	_, err = f.tx.Get(context.Background(), cityID)
	if Classify(err) != ClassNotFound {
		t.Errorf("err = %v; want not found", err)
	}
}
