package mock

import (
	"context"

	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// RecordStore implements port.RecordStore for tests. Records are kept by ID.
type RecordStore[R any] struct {
	Records map[uuid.UUID]R

	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error

	GetCalls    []uuid.UUID
	Created     []R
	Updated     []R
	DeletedIDs  []uuid.UUID
	DeleteCalls int
}

func NewRecordStore[R any]() *RecordStore[R] {
	return &RecordStore[R]{Records: map[uuid.UUID]R{}}
}

func (m *RecordStore[R]) Create(ctx context.Context, rec R) error {
	m.Created = append(m.Created, rec)
	return m.CreateErr
}

func (m *RecordStore[R]) GetByID(ctx context.Context, id uuid.UUID) (R, error) {
	m.GetCalls = append(m.GetCalls, id)
	var zero R
	if m.GetErr != nil {
		return zero, m.GetErr
	}
	rec, ok := m.Records[id]
	if !ok {
		return zero, port.ErrRecordNotFound
	}
	return rec, nil
}

func (m *RecordStore[R]) Update(ctx context.Context, rec R) error {
	m.Updated = append(m.Updated, rec)
	return m.UpdateErr
}

func (m *RecordStore[R]) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalls++
	m.DeletedIDs = append(m.DeletedIDs, id)
	return m.DeleteErr
}
