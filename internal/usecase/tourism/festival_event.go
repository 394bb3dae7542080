package tourism

import (
	"context"

	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/resource"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// FestivalEventSchema stores pictures and videos together, pictures first.
var FestivalEventSchema = resource.Schema[*model.FestivalEvent]{
	Kind:       KindFestivalEvent,
	Category:   CategoryFestivals,
	MediaField: "media",
	Slots:      resource.Flatten("images", "videos"),
}

type FestivalEventService struct {
	tx *resource.Transaction[*model.FestivalEvent]
}

func NewFestivalEventService(
	records port.RecordStore[*model.FestivalEvent],
	cities port.RecordStore[*model.City],
	blobs port.BlobStore,
	cache resource.Invalidator,
	opts ...resource.Option[*model.FestivalEvent],
) *FestivalEventService {
	return &FestivalEventService{tx: newTx(FestivalEventSchema, records, cities, blobs, cache, opts)}
}

func (s *FestivalEventService) CreateFestivalEvent(ctx context.Context, in resource.CreateInput[*model.FestivalEvent]) (*model.FestivalEvent, error) {
	return s.tx.Create(ctx, in)
}

func (s *FestivalEventService) UpdateFestivalEvent(ctx context.Context, in resource.UpdateInput[*model.FestivalEvent]) (*model.FestivalEvent, error) {
	return s.tx.Update(ctx, in)
}

func (s *FestivalEventService) DeleteFestivalEvent(ctx context.Context, id uuid.UUID) error {
	return s.tx.Delete(ctx, id)
}

func (s *FestivalEventService) GetFestivalEvent(ctx context.Context, id uuid.UUID) (*model.FestivalEvent, error) {
	return s.tx.Get(ctx, id)
}
