package resource

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/fhuszti/tourism-ms-go/internal/uuid"
)

// ValidationError lists the offending fields and the rule each one broke.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NotFoundError reports a missing target record or a missing referent.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s #%s not found", e.Kind, e.ID)
}

const (
	UploadLimitFileSize  = "LIMIT_FILE_SIZE"
	UploadLimitFileCount = "LIMIT_FILE_COUNT"
	UploadUnexpectedFile = "LIMIT_UNEXPECTED_FILE"
	UploadInvalidType    = "INVALID_FILE_TYPE"
	UploadMalformed      = "MALFORMED_MULTIPART"
)

// UploadError is raised by the upload layer for size, count or type violations.
type UploadError struct {
	Code  string
	Field string
	Err   error
}

func (e *UploadError) Error() string {
	msg := "upload rejected (" + e.Code + ")"
	if e.Field != "" {
		msg += " on field " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UploadError) Unwrap() error { return e.Err }

// Status is the HTTP status matching the violation.
func (e *UploadError) Status() int {
	if e.Code == UploadLimitFileSize {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

type Class int

const (
	ClassInternal Class = iota
	ClassValidation
	ClassNotFound
	ClassUpload
)

// Classify maps an error returned by the lifecycle or the upload layer to its class.
func Classify(err error) Class {
	var vErr *ValidationError
	var nfErr *NotFoundError
	var upErr *UploadError
	switch {
	case err == nil:
		return ClassInternal
	case errors.As(err, &upErr) && upErr.Code != "":
		return ClassUpload
	case errors.As(err, &vErr):
		return ClassValidation
	case errors.As(err, &nfErr):
		return ClassNotFound
	default:
		return ClassInternal
	}
}
