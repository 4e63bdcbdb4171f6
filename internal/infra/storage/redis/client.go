// Package redis implements the storage and messaging adapters backed by Redis.
package redis

import (
	"context"

	redis "github.com/redis/go-redis/v9"
)

// client wraps a Redis connection shared by every adapter of this package.
type client struct {
	conn *redis.Client
}

// Close releases the underlying connection pool.
func (c *client) Close() error {
	return c.conn.Close()
}

// NewClient connects to Redis and checks the connection with a PING.
func NewClient(ctx context.Context, addr, username, password string, db int) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		conn.Close()
		return nil, err
	}

	return &client{
		conn: conn,
	}, nil
}
