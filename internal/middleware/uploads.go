package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/fhuszti/tourism-ms-go/internal/api_context"
	"github.com/fhuszti/tourism-ms-go/internal/handler/api"
	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/resource"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

const maxFieldSize = 1 << 20

var (
	imageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	videoTypes = []string{"video/mp4", "video/webm", "video/quicktime"}
)

// UploadSlot is a multipart file field accepted by a route.
type UploadSlot struct {
	Name string
	// MaxCount caps the files in this field; 0 leaves only the request cap.
	// A slot capped at 1 is handed on as a single key instead of a list.
	MaxCount int
	// Video slots take video files instead of images.
	Video bool
}

type UploadLimits struct {
	MaxFileSize int64
	MaxFiles    int
}

// WithUploads streams the multipart files of a request into the blob store
// under category and hands the stored keys on through the request context.
// The text fields are made available as the request's parsed form. Requests
// that are not multipart pass through untouched.
func WithUploads(blobs port.BlobStore, category string, slots []UploadSlot, limits UploadLimits) func(http.Handler) http.Handler {
	bySlot := make(map[string]UploadSlot, len(slots))
	for _, s := range slots {
		bySlot[s.Name] = s
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if ct != "multipart/form-data" {
				next.ServeHTTP(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limits.MaxFileSize*int64(limits.MaxFiles)+maxFieldSize)

			u := &uploader{blobs: blobs, category: category, slots: bySlot, limits: limits, files: map[string]model.MediaSet{}}
			values, err := u.consume(r)
			if err != nil {
				u.discard(r.Context())
				var upErr *resource.UploadError
				if errors.As(err, &upErr) {
					api.WriteUploadError(w, r, upErr)
					return
				}
				api.WriteError(w, http.StatusInternalServerError, "Failed to store upload", err)
				return
			}

			raw := resource.RawUploads{}
			for name, keys := range u.files {
				if bySlot[name].MaxCount == 1 {
					raw[name] = keys[0]
				} else {
					raw[name] = []string(keys)
				}
			}
			logger.Debugf(r.Context(), "stored %d upload(s) in %s", len(u.saved), category)

			r.PostForm = values
			r.Form = values
			r.MultipartForm = &multipart.Form{Value: values}
			ctx := context.WithValue(r.Context(), api_context.UploadsKey, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type uploader struct {
	blobs    port.BlobStore
	category string
	slots    map[string]UploadSlot
	limits   UploadLimits

	files map[string]model.MediaSet
	saved model.MediaSet
}

func (u *uploader) consume(r *http.Request) (url.Values, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, &resource.UploadError{Code: resource.UploadMalformed, Err: err}
	}

	values := url.Values{}
	for {
		part, err := mr.NextPart()
		// a truncated body surfaces as a wrapped EOF
		if err == io.EOF {
			return values, nil
		}
		if err != nil {
			return nil, readError("", err)
		}

		name := part.FormName()
		if part.FileName() == "" {
			b, err := io.ReadAll(io.LimitReader(part, maxFieldSize+1))
			_ = part.Close()
			if err != nil {
				return nil, readError(name, err)
			}
			if len(b) > maxFieldSize {
				return nil, &resource.UploadError{Code: resource.UploadLimitFileSize, Field: name}
			}
			values.Add(name, string(b))
			continue
		}

		err = u.store(r.Context(), name, part)
		_ = part.Close()
		if err != nil {
			return nil, err
		}
	}
}

func (u *uploader) store(ctx context.Context, field string, part io.Reader) error {
	slot, ok := u.slots[field]
	if !ok || (slot.MaxCount > 0 && len(u.files[field]) >= slot.MaxCount) {
		return &resource.UploadError{Code: resource.UploadUnexpectedFile, Field: field}
	}
	if len(u.saved) >= u.limits.MaxFiles {
		return &resource.UploadError{Code: resource.UploadLimitFileCount, Field: field}
	}

	data, err := io.ReadAll(io.LimitReader(part, u.limits.MaxFileSize+1))
	if err != nil {
		return readError(field, err)
	}
	if int64(len(data)) > u.limits.MaxFileSize {
		return &resource.UploadError{Code: resource.UploadLimitFileSize, Field: field}
	}

	mtype, err := checkType(data, slot.Video)
	if err != nil {
		return &resource.UploadError{Code: resource.UploadInvalidType, Field: field, Err: err}
	}

	key := uuid.NewUUID().String() + mtype.Extension()
	if err := u.blobs.SaveFile(ctx, u.category, key, bytes.NewReader(data), int64(len(data)), mtype.String()); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	u.saved = append(u.saved, key)
	u.files[field] = append(u.files[field], key)
	return nil
}

// discard removes what was stored before the request failed.
func (u *uploader) discard(ctx context.Context) {
	if len(u.saved) == 0 {
		return
	}
	if err := u.blobs.DeleteMany(context.WithoutCancel(ctx), u.saved, u.category); err != nil {
		logger.Errorf(ctx, "❌  Failed to discard uploads %v from %s: %v", u.saved, u.category, err)
	}
}

// checkType sniffs the content and, for images, makes sure it decodes.
func checkType(data []byte, video bool) (*mimetype.MIME, error) {
	mtype := mimetype.Detect(data)
	allowed := imageTypes
	if video {
		allowed = videoTypes
	}
	if !mimetype.EqualsAny(mtype.String(), allowed...) {
		return nil, fmt.Errorf("content type %s not allowed", mtype.String())
	}
	if strings.HasPrefix(mtype.String(), "image/") {
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("undecodable image: %w", err)
		}
	}
	return mtype, nil
}

func readError(field string, err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return &resource.UploadError{Code: resource.UploadLimitFileSize, Field: field, Err: err}
	}
	return &resource.UploadError{Code: resource.UploadMalformed, Field: field, Err: err}
}
