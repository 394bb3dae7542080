package tourism

import (
	"context"

	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/resource"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// PublicTransportSchema accepts one picture under image or images.
var PublicTransportSchema = resource.Schema[*model.PublicTransport]{
	Kind:       KindPublicTransport,
	Category:   CategoryPublicTransport,
	MediaField: "image",
	MaxMedia:   1,
	Slots:      resource.Flatten("image", "images"),
}

type PublicTransportService struct {
	tx *resource.Transaction[*model.PublicTransport]
}

func NewPublicTransportService(
	records port.RecordStore[*model.PublicTransport],
	cities port.RecordStore[*model.City],
	blobs port.BlobStore,
	cache resource.Invalidator,
	opts ...resource.Option[*model.PublicTransport],
) *PublicTransportService {
	return &PublicTransportService{tx: newTx(PublicTransportSchema, records, cities, blobs, cache, opts)}
}

func (s *PublicTransportService) CreatePublicTransport(ctx context.Context, in resource.CreateInput[*model.PublicTransport]) (*model.PublicTransport, error) {
	return s.tx.Create(ctx, in)
}

func (s *PublicTransportService) UpdatePublicTransport(ctx context.Context, in resource.UpdateInput[*model.PublicTransport]) (*model.PublicTransport, error) {
	return s.tx.Update(ctx, in)
}

func (s *PublicTransportService) DeletePublicTransport(ctx context.Context, id uuid.UUID) error {
	return s.tx.Delete(ctx, id)
}

func (s *PublicTransportService) GetPublicTransport(ctx context.Context, id uuid.UUID) (*model.PublicTransport, error) {
	return s.tx.Get(ctx, id)
}
