package tourism

import (
	"context"

	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/resource"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// ArtsCultureSchema keeps the first non-empty of images, image and videos.
var ArtsCultureSchema = resource.Schema[*model.ArtsCulture]{
	Kind:       KindArtsCulture,
	Category:   CategoryArtsCulture,
	MediaField: "images",
	Slots:      resource.Precedence("images", "image", "videos"),
}

type ArtsCultureService struct {
	tx *resource.Transaction[*model.ArtsCulture]
}

func NewArtsCultureService(
	records port.RecordStore[*model.ArtsCulture],
	cities port.RecordStore[*model.City],
	blobs port.BlobStore,
	cache resource.Invalidator,
	opts ...resource.Option[*model.ArtsCulture],
) *ArtsCultureService {
	return &ArtsCultureService{tx: newTx(ArtsCultureSchema, records, cities, blobs, cache, opts)}
}

func (s *ArtsCultureService) CreateArtsCulture(ctx context.Context, in resource.CreateInput[*model.ArtsCulture]) (*model.ArtsCulture, error) {
	return s.tx.Create(ctx, in)
}

func (s *ArtsCultureService) UpdateArtsCulture(ctx context.Context, in resource.UpdateInput[*model.ArtsCulture]) (*model.ArtsCulture, error) {
	return s.tx.Update(ctx, in)
}

func (s *ArtsCultureService) DeleteArtsCulture(ctx context.Context, id uuid.UUID) error {
	return s.tx.Delete(ctx, id)
}

func (s *ArtsCultureService) GetArtsCulture(ctx context.Context, id uuid.UUID) (*model.ArtsCulture, error) {
	return s.tx.Get(ctx, id)
}
