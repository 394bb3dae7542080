package tourism

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/tourism-ms-go/internal/mock"
	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/resource"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

func TestCreateCity(t *testing.T) {
	tests := []struct {
		name      string
		in        *model.City
		repoErr   error
		wantClass resource.Class
		wantErr   bool
	}{
		{name: "valid", in: &model.City{NameEn: "Jeddah", NameAr: "جدة"}},
		{name: "missing arabic name", in: &model.City{NameEn: "Jeddah"}, wantErr: true, wantClass: resource.ClassValidation},
		{name: "nil body", in: nil, wantErr: true, wantClass: resource.ClassValidation},
		{name: "repo failure", in: &model.City{NameEn: "Jeddah", NameAr: "جدة"}, repoErr: errors.New("db down"), wantErr: true, wantClass: resource.ClassInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := mock.NewRecordStore[*model.City]()
			repo.CreateErr = tc.repoErr
			svc := NewCityService(repo, nil)

			got, err := svc.CreateCity(context.Background(), tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if resource.Classify(err) != tc.wantClass {
					t.Errorf("class = %v; want %v (%v)", resource.Classify(err), tc.wantClass, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateCity returned error: %v", err)
			}
			if got.ID.IsZero() || got.CreatedAt.IsZero() {
				t.Errorf("bookkeeping not set: %+v", got)
			}
			if len(repo.Created) != 1 {
				t.Errorf("repo.Create called %d times", len(repo.Created))
			}
		})
	}
}

func TestDeleteCity(t *testing.T) {
	id := uuid.NewUUID()
	repo := mock.NewRecordStore[*model.City]()
	repo.Records[id] = &model.City{ID: id, NameEn: "Abha", NameAr: "أبها"}
	cache := &mock.Cache{}
	svc := NewCityService(repo, cache)

	if err := svc.DeleteCity(context.Background(), id); err != nil {
		t.Fatalf("DeleteCity returned error: %v", err)
	}
	if cache.DeletedKind != KindCity || cache.DeletedID != id {
		t.Errorf("cache invalidation = %s #%s", cache.DeletedKind, cache.DeletedID)
	}

	err := svc.DeleteCity(context.Background(), uuid.NewUUID())
	var nfErr *resource.NotFoundError
	if !errors.As(err, &nfErr) || nfErr.Kind != KindCity {
		t.Fatalf("err = %v; want city not found", err)
	}
	if repo.DeleteCalls != 1 {
		t.Errorf("repo.Delete called %d times; want 1", repo.DeleteCalls)
	}
}
