package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/resource"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// CreateHandler decodes the submitted fields and hands them, with the staged
// uploads, to create. An unreadable body still goes through create as a nil
// record so the staged uploads are cleaned up.
func CreateHandler[R resource.Resource](
	kind string,
	decode Decoder[R],
	create func(context.Context, resource.CreateInput[R]) (R, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec R
		values, err := readForm(r)
		if err != nil {
			logger.Warnf(r.Context(), "❌  Could not read %s body: %v", kind, err)
		} else {
			rec = decode(values)
		}

		out, err := create(r.Context(), resource.CreateInput[R]{Record: rec, Uploads: UploadsFromContext(r.Context())})
		if err != nil {
			WriteResourceError(w, r, err, "Failed to create "+humanize(kind))
			return
		}

		RespondSuccess(w, http.StatusCreated, humanize(kind)+" created successfully", out)
		logger.Infof(r.Context(), "✅  Successfully created %s #%s", kind, out.RecordID())
	}
}

// UpdateHandler is CreateHandler for an existing record. keepField names the
// form field listing the current media to retain.
func UpdateHandler[R resource.Resource](
	kind string,
	decode Decoder[R],
	keepField string,
	update func(context.Context, resource.UpdateInput[R]) (R, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		in := resource.UpdateInput[R]{ID: id, Uploads: UploadsFromContext(r.Context())}
		values, err := readForm(r)
		if err != nil {
			logger.Warnf(r.Context(), "❌  Could not read %s body: %v", kind, err)
		} else {
			in.Record = decode(values)
			in.Keep = keepList(values, keepField)
		}

		out, err := update(r.Context(), in)
		if err != nil {
			WriteResourceError(w, r, err, "Failed to update "+humanize(kind))
			return
		}

		RespondSuccess(w, http.StatusOK, humanize(kind)+" updated successfully", out)
		logger.Infof(r.Context(), "✅  Successfully updated %s #%s", kind, id)
	}
}

func DeleteHandler(kind string, del func(context.Context, uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := del(r.Context(), id); err != nil {
			WriteResourceError(w, r, err, "Failed to delete "+humanize(kind))
			return
		}

		RespondSuccess(w, http.StatusOK, humanize(kind)+" deleted successfully", nil)
		logger.Infof(r.Context(), "✅  Successfully deleted %s #%s", kind, id)
	}
}

// GetHandler serves a record through the renderer, answering 304 when the
// client already holds the current version.
func GetHandler[R any](kind string, renderer port.HTTPRenderer, get func(context.Context, uuid.UUID) (R, error)) http.HandlerFunc {
	load := func(ctx context.Context, id uuid.UUID) (any, error) {
		return get(ctx, id)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		raw, etag, err := renderer.RenderRecord(r.Context(), kind, id, load)
		if err != nil {
			WriteResourceError(w, r, err, "Could not get "+humanize(kind)+" details")
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=300")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Infof(r.Context(), "✅  Returning cached %s #%s", kind, id)
			return
		}

		RespondSuccess(w, http.StatusOK, humanize(kind)+" retrieved successfully", json.RawMessage(raw))
		logger.Infof(r.Context(), "✅  Successfully returned details for %s #%s", kind, id)
	}
}
