package mock

import (
	"context"

	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// Cache implements port.Cache for tests.
type Cache struct {
	// stored values
	Out  []byte
	Etag string

	// errors
	GetErr    error
	DeleteErr error

	// call flags
	GetCalled    bool
	SetCalled    bool
	DeleteCalled bool
	DeletedKind  string
	DeletedID    uuid.UUID
}

func (c *Cache) GetRecord(ctx context.Context, kind string, id uuid.UUID) ([]byte, string, error) {
	c.GetCalled = true
	if c.GetErr != nil {
		return nil, "", c.GetErr
	}
	return c.Out, c.Etag, nil
}

func (c *Cache) SetRecord(ctx context.Context, kind string, id uuid.UUID, data []byte, etag string) {
	c.SetCalled = true
	c.Out = data
	c.Etag = etag
}

func (c *Cache) DeleteRecord(ctx context.Context, kind string, id uuid.UUID) error {
	c.DeleteCalled = true
	c.DeletedKind = kind
	c.DeletedID = id
	return c.DeleteErr
}
