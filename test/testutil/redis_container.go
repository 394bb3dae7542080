package testutil

import (
	"context"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
)

type RedisContainerInfo struct {
	Addr    string
	Cleanup func()
}

func StartRedisContainer() (*RedisContainerInfo, error) {
	c, addr, err := startContainer("redis", &dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	}, "6379/tcp", func(hostPort string) error {
		rdb := redis.NewClient(&redis.Options{Addr: hostPort})
		defer rdb.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		return nil, err
	}

	return &RedisContainerInfo{Addr: addr, Cleanup: c.purge}, nil
}
