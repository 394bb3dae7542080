package api

import (
	"context"

	"github.com/fhuszti/tourism-ms-go/internal/api_context"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/resource"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	return api_context.IDFromContext(ctx)
}

// UploadsFromContext returns what the upload middleware staged for the
// request, nil when it did not run.
func UploadsFromContext(ctx context.Context) resource.RawUploads {
	up, _ := ctx.Value(api_context.UploadsKey).(resource.RawUploads)
	return up
}
