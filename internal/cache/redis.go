// Package cache stores short-lived keys in Redis, such as checkout idempotency keys.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/garage-sale/internal/port"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedis wraps a connected client. Keys are prefixed with namespace.
func NewRedis(client redis.UniversalClient, namespace string) (port.Cache, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if namespace == "" {
		return nil, fmt.Errorf("namespace is empty")
	}

	return &redisCache{
		client:    client,
		namespace: namespace,
	}, nil
}

// Connect dials addr and pings it.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(fmt.Errorf("client.Ping: %w", err), client.Close())
	}

	return client, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}
	return nil
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("client.Get: %w", err)
	}

	return value, nil
}

func (c *redisCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, operation, key)
}
