package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"testing"

	"github.com/fhuszti/tourism-ms-go/internal/mock"
	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

type loader struct {
	out    any
	err    error
	called bool
}

func (l *loader) load(ctx context.Context, id uuid.UUID) (any, error) {
	l.called = true
	return l.out, l.err
}

func TestRenderRecord_Cases(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewUUID()

	t.Run("cache hit", func(t *testing.T) {
		c := &mock.Cache{Out: []byte(`{"ok":true}`), Etag: "\"1234\""}
		r := NewHTTPRenderer(c)
		l := &loader{}

		out, etag, err := r.RenderRecord(ctx, "city", id, l.load)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != string(c.Out) {
			t.Errorf("raw mismatch: got %s want %s", out, c.Out)
		}
		if etag != c.Etag {
			t.Errorf("etag mismatch: got %s want %s", etag, c.Etag)
		}
		if l.called {
			t.Error("loader should not be called on cache hit")
		}
		if c.SetCalled {
			t.Error("cache should not be set on hit")
		}
	})

	t.Run("cache miss", func(t *testing.T) {
		c := &mock.Cache{}
		rec := &model.City{ID: id, NameEn: "Taif", NameAr: "الطائف"}
		l := &loader{out: rec}
		r := NewHTTPRenderer(c)

		out, etag, err := r.RenderRecord(ctx, "city", id, l.load)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected, _ := json.Marshal(rec)
		if string(out) != string(expected) {
			t.Errorf("raw mismatch: got %s want %s", out, expected)
		}
		expEtag := fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(expected))
		if etag != expEtag {
			t.Errorf("etag mismatch: got %s want %s", etag, expEtag)
		}
		if !l.called {
			t.Error("loader should be called on cache miss")
		}
		if !c.SetCalled || string(c.Out) != string(expected) || c.Etag != expEtag {
			t.Errorf("cache not written as expected: %+v", c)
		}
	})

	t.Run("loader error", func(t *testing.T) {
		c := &mock.Cache{}
		l := &loader{err: errors.New("fail")}
		r := NewHTTPRenderer(c)

		_, _, err := r.RenderRecord(ctx, "city", id, l.load)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if c.SetCalled {
			t.Error("cache should not be written on error")
		}
	})

	t.Run("cache error", func(t *testing.T) {
		c := &mock.Cache{GetErr: errors.New("boom")}
		l := &loader{out: map[string]string{"name_en": "x"}}
		r := NewHTTPRenderer(c)

		if _, _, err := r.RenderRecord(ctx, "city", id, l.load); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !l.called {
			t.Error("loader should be called when cache returns error")
		}
		if !c.SetCalled {
			t.Error("cache should be written when missing due to error")
		}
	})
}
