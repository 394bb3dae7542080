package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/model"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/multierr"
)

// MinioStorage keeps each resource category in its own bucket, named after
// the category.
type MinioStorage struct {
	client minioClient
}

// compile-time check: *MinioStorage must satisfy port.BlobStore
var _ port.BlobStore = (*MinioStorage)(nil)

func NewMinioStorage(endpoint, accessKey, secretKey string, useSSL bool) (*MinioStorage, error) {
	logger.Info(context.Background(), "initialising minio client...")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, mapMinioErr(err)
	}
	return &MinioStorage{client: client}, nil
}

// InitBucket creates the category's bucket if it does not exist yet.
func (s *MinioStorage) InitBucket(ctx context.Context, category string) error {
	ok, err := s.client.BucketExists(ctx, category)
	if err != nil {
		return mapMinioErr(err)
	}
	if !ok {
		logger.Infof(ctx, "bucket %q does not exist, creating it...", category)
		if err := s.client.MakeBucket(ctx, category, minio.MakeBucketOptions{}); err != nil {
			return mapMinioErr(err)
		}
	}
	return nil
}

func (s *MinioStorage) SaveFile(ctx context.Context, category, key string, reader io.Reader, size int64, contentType string) error {
	logger.Debugf(ctx, "saving file %q into bucket %q...", key, category)

	_, err := s.client.PutObject(ctx, category, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	return mapMinioErr(err)
}

// DeleteFile removes one object. A missing object is not an error.
func (s *MinioStorage) DeleteFile(ctx context.Context, category, key string) error {
	logger.Debugf(ctx, "removing file %q from bucket %q...", key, category)

	err := mapMinioErr(s.client.RemoveObject(ctx, category, key, minio.RemoveObjectOptions{}))
	if errors.Is(err, ErrObjectNotFound) {
		return nil
	}
	return err
}

// DeleteMany removes refs from the category's bucket in a single batch and
// reports every object that could not be removed.
func (s *MinioStorage) DeleteMany(ctx context.Context, refs model.MediaSet, category string) error {
	refs = refs.Dedupe()
	switch len(refs) {
	case 0:
		return nil
	case 1:
		if err := s.DeleteFile(ctx, category, refs[0]); err != nil {
			return fmt.Errorf("remove %q: %w", refs[0], err)
		}
		return nil
	}

	logger.Debugf(ctx, "removing %d files from bucket %q...", len(refs), category)

	objects := make(chan minio.ObjectInfo, len(refs))
	for _, ref := range refs {
		objects <- minio.ObjectInfo{Key: ref}
	}
	close(objects)

	var errs error
	for rErr := range s.client.RemoveObjects(ctx, category, objects, minio.RemoveObjectsOptions{}) {
		if rErr.Err == nil {
			continue
		}
		mapped := mapMinioErr(rErr.Err)
		if errors.Is(mapped, ErrObjectNotFound) {
			continue
		}
		errs = multierr.Append(errs, fmt.Errorf("remove %q: %w", rErr.ObjectName, mapped))
	}
	return errs
}
