package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/resource"
	"github.com/fhuszti/tourism-ms-go/internal/validation"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, msg string, err error) {
	ctx := context.Background()
	if err != nil {
		logger.Errorf(ctx, "❌  %s: %v", msg, err)
	} else {
		logger.Error(ctx, "❌  "+msg)
	}
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, status, ErrorResponse{Error: msg})
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to encode JSON response: %v", err)
	}
}

func RespondRawJSON(w http.ResponseWriter, status int, raw []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(raw); err != nil {
		logger.Errorf(context.Background(), "❌  Failed to write JSON payload: %v", err)
	}
}

func RespondSuccess(w http.ResponseWriter, status int, msg string, data any) {
	RespondJSON(w, status, SuccessResponse{Status: "success", Message: msg, Data: data})
}

// WriteUploadError reports a rejected upload with its code.
func WriteUploadError(w http.ResponseWriter, r *http.Request, err *resource.UploadError) {
	logger.Warnf(r.Context(), "❌  Upload rejected: %v", err)
	w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
	RespondJSON(w, err.Status(), ErrorResponse{Error: uploadMessage(err), Code: err.Code})
}

// WriteResourceError maps an error from a resource service to its response.
// fallback is the message used for unexpected failures.
func WriteResourceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch resource.Classify(err) {
	case resource.ClassValidation:
		var vErr *resource.ValidationError
		errors.As(err, &vErr)
		errsJSON, encErr := validation.FieldsToJson(vErr.Fields)
		if encErr != nil {
			WriteError(w, http.StatusInternalServerError, "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", encErr))
			return
		}
		RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
		logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
	case resource.ClassNotFound:
		var nfErr *resource.NotFoundError
		errors.As(err, &nfErr)
		WriteError(w, http.StatusNotFound, humanize(nfErr.Kind)+" not found", nil)
	case resource.ClassUpload:
		var upErr *resource.UploadError
		errors.As(err, &upErr)
		WriteUploadError(w, r, upErr)
	default:
		WriteError(w, http.StatusInternalServerError, fallback, err)
	}
}

func uploadMessage(err *resource.UploadError) string {
	var msg string
	switch err.Code {
	case resource.UploadLimitFileSize:
		msg = "File too large"
	case resource.UploadLimitFileCount:
		msg = "Too many files"
	case resource.UploadUnexpectedFile:
		msg = "Unexpected file field"
	case resource.UploadInvalidType:
		msg = "Invalid file type"
	default:
		msg = "Malformed upload"
	}
	if err.Field != "" {
		msg += fmt.Sprintf(" (%s)", err.Field)
	}
	return msg
}

// humanize turns a resource kind into a sentence-case label.
func humanize(kind string) string {
	label := strings.ReplaceAll(kind, "_", " ")
	if label == "" {
		return "Record"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
