package resource

import (
	"context"
	"errors"
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// Resource is a persisted record whose media lives in the blob store.
type Resource interface {
	RecordID() uuid.UUID
	SetRecordID(id uuid.UUID)
	Created() time.Time
	Stamp(created, updated time.Time)
	Media() model.MediaSet
	SetMedia(m model.MediaSet)
}

// Reference is a foreign key that must point to an existing record.
type Reference[R Resource] struct {
	Field  string
	Kind   string
	ID     func(R) uuid.UUID
	Exists func(ctx context.Context, id uuid.UUID) (bool, error)
}

// ReferenceTo builds a Reference resolved through the referent's record store.
func ReferenceTo[R Resource, T any](field, kind string, id func(R) uuid.UUID, store port.RecordStore[T]) Reference[R] {
	return Reference[R]{
		Field: field,
		Kind:  kind,
		ID:    id,
		Exists: func(ctx context.Context, refID uuid.UUID) (bool, error) {
			_, err := store.GetByID(ctx, refID)
			if errors.Is(err, port.ErrRecordNotFound) {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			return true, nil
		},
	}
}

// Schema is everything that differs between two media-bearing resources.
type Schema[R Resource] struct {
	// Kind names the resource in errors, logs and cache keys.
	Kind string
	// Category is the blob store category (bucket) holding the media.
	Category string
	// MediaField is the JSON name of the media field, used in validation errors.
	MediaField string
	// MaxMedia caps the number of media files; 0 means no cap.
	MaxMedia   int
	Slots      SlotRule
	References []Reference[R]
}
