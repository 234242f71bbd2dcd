package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates and pings a Redis client with optional password auth.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// RedisCounter is an httprate.LimitCounter backed by Redis, so every
// replica shares one budget per client.
type RedisCounter struct {
	rdb    redis.UniversalClient
	prefix string
	window time.Duration
}

var _ httprate.LimitCounter = (*RedisCounter)(nil)

func NewRedisCounter(rdb redis.UniversalClient, prefix string) *RedisCounter {
	return &RedisCounter{rdb: rdb, prefix: prefix, window: time.Minute}
}

func (c *RedisCounter) Config(_ int, windowLength time.Duration) {
	c.window = windowLength
}

func (c *RedisCounter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

func (c *RedisCounter) IncrementBy(key string, currentWindow time.Time, amount int) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	k := c.key(key, currentWindow)
	pipe := c.rdb.TxPipeline()
	pipe.IncrBy(ctx, k, int64(amount))
	// the previous window is still read for the sliding estimate
	pipe.Expire(ctx, k, 3*c.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("increment %s: %w", k, err)
	}
	return nil
}

func (c *RedisCounter) Get(key string, currentWindow, previousWindow time.Time) (int, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	vals, err := c.rdb.MGet(ctx, c.key(key, currentWindow), c.key(key, previousWindow)).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("get %s: %w", key, err)
	}
	curr, err := toInt(vals[0])
	if err != nil {
		return 0, 0, err
	}
	prev, err := toInt(vals[1])
	if err != nil {
		return 0, 0, err
	}
	return curr, prev, nil
}

func (c *RedisCounter) key(key string, window time.Time) string {
	return fmt.Sprintf("%s:%s:%d", c.prefix, key, window.Unix())
}

func toInt(v any) (int, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, errors.New("unexpected counter value")
	}
}
