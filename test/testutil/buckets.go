package testutil

import (
	"context"
	"fmt"

	"github.com/fhuszti/tourism-ms-go/internal/storage"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/tourism"
	"github.com/minio/minio-go/v7"
)

type TestBuckets struct {
	Client  *minio.Client
	Cleanup func() error
}

// SetupTestBuckets creates one bucket per resource category through the
// storage under test, and empties and drops them on cleanup.
func SetupTestBuckets(strg *storage.MinioStorage, client *minio.Client) (*TestBuckets, error) {
	ctx := context.Background()
	buckets := tourism.Categories()

	for _, b := range buckets {
		if err := strg.InitBucket(ctx, b); err != nil {
			return nil, fmt.Errorf("could not create bucket %q: %w", b, err)
		}
	}

	cleanup := func() error {
		for _, b := range buckets {
			for obj := range client.ListObjects(ctx, b, minio.ListObjectsOptions{Recursive: true}) {
				if obj.Err != nil {
					continue
				}
				_ = client.RemoveObject(ctx, b, obj.Key, minio.RemoveObjectOptions{})
			}
			if err := client.RemoveBucket(ctx, b); err != nil {
				return fmt.Errorf("could not remove bucket %q: %w", b, err)
			}
		}
		return nil
	}

	return &TestBuckets{Client: client, Cleanup: cleanup}, nil
}

// ObjectExists reports whether key is stored in bucket.
func ObjectExists(ctx context.Context, client *minio.Client, bucket, key string) (bool, error) {
	_, err := client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, err
}

// ListObjects returns every key stored in bucket.
func ListObjects(ctx context.Context, client *minio.Client, bucket string) []string {
	var keys []string
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err == nil {
			keys = append(keys, obj.Key)
		}
	}
	return keys
}
