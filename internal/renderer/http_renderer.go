package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

type httpRenderer struct {
	cache port.Cache
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

// NewHTTPRenderer creates a new HTTPRenderer implementation.
func NewHTTPRenderer(cache port.Cache) port.HTTPRenderer {
	return &httpRenderer{cache: cache}
}

// RenderRecord serves a record's JSON from cache, or loads, encodes and caches
// it. The ETag is the quoted CRC32 of the JSON.
func (r *httpRenderer) RenderRecord(ctx context.Context, kind string, id uuid.UUID, load port.RecordLoader) ([]byte, string, error) {
	raw, etag, err := r.cache.GetRecord(ctx, kind, id)
	if err != nil {
		logger.Warnf(ctx, "⚠️  cache lookup for %s #%s failed: %v", kind, id, err)
	}
	if err == nil && raw != nil && etag != "" {
		return raw, etag, nil
	}

	rec, err := load(ctx, id)
	if err != nil {
		return nil, "", err
	}

	raw, err = json.Marshal(rec)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}

	etag = fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
	r.cache.SetRecord(ctx, kind, id, raw, etag)

	return raw, etag, nil
}
