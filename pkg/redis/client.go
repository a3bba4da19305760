package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ishankgp/MF-return-tracker/pkg/config"
	"github.com/ishankgp/MF-return-tracker/pkg/logger"
)

// Client holds the connection behind the provider payload cache.
// A disabled client has no connection and makes every cache call a no-op.
type Client struct {
	rdb *redis.Client
}

// New connects when Redis is enabled in cfg and fails if the server does not
// answer a ping
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if !cfg.Redis.Enabled {
		return &Client{}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", cfg.RedisAddr(), err)
	}

	return &Client{rdb: rdb}, nil
}

// Connect is New for callers that treat Redis as optional. An unreachable
// server is logged and yields a disabled client.
func Connect(ctx context.Context, cfg *config.Config, log *logger.Logger) *Client {
	c, err := New(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, fund payloads cached in memory")
		return &Client{}
	}
	return c
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// Enabled reports whether payloads go to Redis
func (c *Client) Enabled() bool {
	return c.rdb != nil
}
