package port

import (
	"context"

	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// Cache keeps the rendered JSON of a record and its ETag.
type Cache interface {
	GetRecord(ctx context.Context, kind string, id uuid.UUID) ([]byte, string, error)
	SetRecord(ctx context.Context, kind string, id uuid.UUID, data []byte, etag string)
	DeleteRecord(ctx context.Context, kind string, id uuid.UUID) error
}
