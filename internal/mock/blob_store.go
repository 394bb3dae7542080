package mock

import (
	"context"
	"io"
	"sync"

	"github.com/fhuszti/tourism-ms-go/internal/model"
)

// DeleteManyCall captures one DeleteMany invocation.
type DeleteManyCall struct {
	Refs     model.MediaSet
	Category string
}

// SaveFileCall captures one SaveFile invocation.
type SaveFileCall struct {
	Category    string
	Key         string
	Size        int64
	ContentType string
	Body        []byte
}

// BlobStore implements port.BlobStore for tests.
type BlobStore struct {
	mu sync.Mutex

	// errors
	InitBucketErr error
	SaveErr       error
	// SaveErrAfter makes SaveFile fail once that many files were saved (0 disables).
	SaveErrAfter int
	DeleteErr    error
	// RejectCancelled makes DeleteMany fail with ctx.Err() on a done context,
	// the way the MinIO client does.
	RejectCancelled bool

	// captured calls
	InitBuckets []string
	Saved       []SaveFileCall
	DeleteCalls []DeleteManyCall
	Rejected    []DeleteManyCall
}

func (m *BlobStore) InitBucket(ctx context.Context, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitBuckets = append(m.InitBuckets, category)
	return m.InitBucketErr
}

func (m *BlobStore) SaveFile(ctx context.Context, category, key string, reader io.Reader, size int64, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil && (m.SaveErrAfter == 0 || len(m.Saved) >= m.SaveErrAfter) {
		return m.SaveErr
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.Saved = append(m.Saved, SaveFileCall{Category: category, Key: key, Size: size, ContentType: contentType, Body: body})
	return nil
}

func (m *BlobStore) DeleteMany(ctx context.Context, refs model.MediaSet, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	call := DeleteManyCall{Refs: append(model.MediaSet{}, refs...), Category: category}
	if m.RejectCancelled && ctx.Err() != nil {
		m.Rejected = append(m.Rejected, call)
		return ctx.Err()
	}
	m.DeleteCalls = append(m.DeleteCalls, call)
	return m.DeleteErr
}

// Deleted returns every reference passed to DeleteMany, in call order.
func (m *BlobStore) Deleted() model.MediaSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out model.MediaSet
	for _, c := range m.DeleteCalls {
		out = append(out, c.Refs...)
	}
	return out
}

// SavedKeys returns the keys passed to SaveFile, in call order.
func (m *BlobStore) SavedKeys() model.MediaSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(model.MediaSet, 0, len(m.Saved))
	for _, s := range m.Saved {
		out = append(out, s.Key)
	}
	return out
}
