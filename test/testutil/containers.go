package testutil

import (
	"context"
	"fmt"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
)

// container is a throwaway dependency started for a test run.
type container struct {
	name     string
	pool     *dockertest.Pool
	resource *dockertest.Resource
}

// startContainer runs opts and retries ready against "localhost:<mapped port>"
// until it succeeds or the pool gives up. A container that never becomes
// ready is purged before returning.
func startContainer(name string, opts *dockertest.RunOptions, port string, ready func(hostPort string) error) (*container, string, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, "", fmt.Errorf("could not connect to docker: %w", err)
	}

	resource, err := pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, "", fmt.Errorf("could not start %s container: %w", name, err)
	}

	c := &container{name: name, pool: pool, resource: resource}
	hostPort := "localhost:" + resource.GetPort(port)
	if err := pool.Retry(func() error { return ready(hostPort) }); err != nil {
		c.purge()
		return nil, "", fmt.Errorf("%s did not become ready: %w", name, err)
	}
	return c, hostPort, nil
}

func (c *container) purge() {
	if err := c.pool.Purge(c.resource); err != nil {
		logger.Warnf(context.Background(), "could not purge %s container: %s", c.name, err)
	}
}
