package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/storage"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/ory/dockertest/v3"
)

type MinIOContainerInfo struct {
	Endpoint string
	// Strg is the storage under test; Client inspects buckets directly.
	Strg    *storage.MinioStorage
	Client  *minio.Client
	Cleanup func()
}

const (
	minioRootUser     = "minioadmin"
	minioRootPassword = "minioadmin"
)

func StartMinIOContainer() (*MinIOContainerInfo, error) {
	var client *minio.Client
	c, endpoint, err := startContainer("minio", &dockertest.RunOptions{
		Repository: "minio/minio",
		Tag:        "latest",
		Env: []string{
			"MINIO_ROOT_USER=" + minioRootUser,
			"MINIO_ROOT_PASSWORD=" + minioRootPassword,
		},
		Cmd: []string{"server", "/data"},
	}, "9000/tcp", func(hostPort string) error {
		var err error
		client, err = NewMinioClient(hostPort, minioRootUser, minioRootPassword, false)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err = client.ListBuckets(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	strg, err := storage.NewMinioStorage(endpoint, minioRootUser, minioRootPassword, false)
	if err != nil {
		c.purge()
		return nil, fmt.Errorf("could not create minio storage: %w", err)
	}

	return &MinIOContainerInfo{
		Endpoint: endpoint,
		Strg:     strg,
		Client:   client,
		Cleanup:  c.purge,
	}, nil
}

func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
}
