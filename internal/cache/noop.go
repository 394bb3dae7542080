package cache

import (
	"context"

	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// NoopCache is used when no Redis address is configured.
type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetRecord(ctx context.Context, kind string, id uuid.UUID) ([]byte, string, error) {
	return nil, "", nil // always cache miss
}

func (n *NoopCache) SetRecord(ctx context.Context, kind string, id uuid.UUID, data []byte, etag string) {
}

func (n *NoopCache) DeleteRecord(ctx context.Context, kind string, id uuid.UUID) error { return nil }
