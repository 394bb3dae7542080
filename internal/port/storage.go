package port

import (
	"context"
	"io"

	"github.com/fhuszti/tourism-ms-go/internal/model"
)

// BlobStore stores uploaded media files, one bucket per resource category.
type BlobStore interface {
	InitBucket(ctx context.Context, category string) error
	SaveFile(ctx context.Context, category, key string, reader io.Reader, size int64, contentType string) error
	// DeleteMany removes every reference it can. Objects that are already gone
	// are not reported; the returned error aggregates the keys that could not
	// be removed.
	DeleteMany(ctx context.Context, refs model.MediaSet, category string) error
}
