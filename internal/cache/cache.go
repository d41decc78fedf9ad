package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// IncrWindow increments a fixed-window counter, setting the window TTL on
// first increment. Returns the count after the increment. A count of 0 with
// no error means redis was unreachable; callers treat that as "no data".
func (c *Client) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, nil
	}
	if n == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			// a counter with no TTL would throttle the key forever
			_ = c.client.Del(ctx, key).Err()
			return 0, nil
		}
	}
	return n, nil
}
