package tourism

import (
	"context"

	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/resource"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// CafeteriaSchema accepts a picture under image or images, one at most.
var CafeteriaSchema = resource.Schema[*model.Cafeteria]{
	Kind:       KindCafeteria,
	Category:   CategoryCafeterias,
	MediaField: "image",
	MaxMedia:   1,
	Slots:      resource.Flatten("image", "images"),
}

type CafeteriaService struct {
	tx *resource.Transaction[*model.Cafeteria]
}

func NewCafeteriaService(
	records port.RecordStore[*model.Cafeteria],
	cities port.RecordStore[*model.City],
	blobs port.BlobStore,
	cache resource.Invalidator,
	opts ...resource.Option[*model.Cafeteria],
) *CafeteriaService {
	return &CafeteriaService{tx: newTx(CafeteriaSchema, records, cities, blobs, cache, opts)}
}

func (s *CafeteriaService) CreateCafeteria(ctx context.Context, in resource.CreateInput[*model.Cafeteria]) (*model.Cafeteria, error) {
	return s.tx.Create(ctx, in)
}

func (s *CafeteriaService) UpdateCafeteria(ctx context.Context, in resource.UpdateInput[*model.Cafeteria]) (*model.Cafeteria, error) {
	return s.tx.Update(ctx, in)
}

func (s *CafeteriaService) DeleteCafeteria(ctx context.Context, id uuid.UUID) error {
	return s.tx.Delete(ctx, id)
}

func (s *CafeteriaService) GetCafeteria(ctx context.Context, id uuid.UUID) (*model.Cafeteria, error) {
	return s.tx.Get(ctx, id)
}
