package tourism

import (
	"context"
	"errors"
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/resource"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
	"github.com/fhuszti/tourism-ms-go/internal/validation"
)

// CityService manages cities. They carry no media, so no transaction is needed.
type CityService struct {
	repo  port.RecordStore[*model.City]
	cache resource.Invalidator
	newID port.UUIDGen
	now   func() time.Time
}

func NewCityService(repo port.RecordStore[*model.City], cache resource.Invalidator) *CityService {
	return &CityService{
		repo:  repo,
		cache: cache,
		newID: uuid.NewUUID,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *CityService) CreateCity(ctx context.Context, c *model.City) (*model.City, error) {
	if err := validation.ValidateStruct(c); err != nil {
		fields, ok := validation.Fields(err)
		if !ok {
			fields = map[string]string{"body": "required"}
		}
		return nil, &resource.ValidationError{Fields: fields}
	}

	c.ID = s.newID()
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.Infof(ctx, "created city #%s (%s)", c.ID, c.NameEn)
	return c, nil
}

func (s *CityService) GetCity(ctx context.Context, id uuid.UUID) (*model.City, error) {
	c, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, port.ErrRecordNotFound) {
		return nil, &resource.NotFoundError{Kind: KindCity, ID: id}
	}
	return c, err
}

func (s *CityService) DeleteCity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCity(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.DeleteRecord(ctx, KindCity, id); err != nil {
			logger.Warnf(ctx, "failed deleting cache for city #%s: %v", id, err)
		}
	}
	logger.Infof(ctx, "deleted city #%s", id)
	return nil
}
