package port

import (
	"context"

	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// RecordLoader fetches a record for rendering.
type RecordLoader func(ctx context.Context, id uuid.UUID) (any, error)

// HTTPRenderer returns the JSON representation of a record along with an ETag,
// serving it from cache when possible.
type HTTPRenderer interface {
	RenderRecord(ctx context.Context, kind string, id uuid.UUID, load RecordLoader) ([]byte, string, error)
}
