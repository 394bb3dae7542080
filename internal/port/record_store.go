package port

import (
	"context"
	"errors"

	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

var ErrRecordNotFound = errors.New("repository: record not found")

// RecordStore persists one kind of resource record.
type RecordStore[R any] interface {
	Create(ctx context.Context, rec R) error
	GetByID(ctx context.Context, id uuid.UUID) (R, error)
	Update(ctx context.Context, rec R) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UUIDGen func() uuid.UUID
