package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisPrefix     = "vitrine:slug:"
	redisVersionKey = "vitrine:slug:version"
)

// Redis caches slugs in Redis. Keys carry a version number; Purge bumps the
// version so older keys are never read again and expire on their own.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis wraps an existing client.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// DialRedis connects to the server at url (redis://...) and pings it.
func DialRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedis(client, ttl), nil
}

// Close closes the underlying client.
func (r *Redis) Close() error { return r.client.Close() }

func (r *Redis) GetMulti(ctx context.Context, keys []string) (map[string]int64, error) {
	out := make(map[string]int64, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	version, err := r.version(ctx)
	if err != nil {
		return nil, err
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(version, k)
	}
	values, err := r.client.MGet(ctx, full...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		out[keys[i]] = id
	}
	return out, nil
}

func (r *Redis) SetMulti(ctx context.Context, entries map[string]int64) error {
	if len(entries) == 0 {
		return nil
	}
	version, err := r.version(ctx)
	if err != nil {
		return err
	}
	_, err = r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for k, v := range entries {
			p.Set(ctx, r.key(version, k), strconv.FormatInt(v, 10), r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis) Purge(ctx context.Context) error {
	if err := r.client.Incr(ctx, redisVersionKey).Err(); err != nil {
		return fmt.Errorf("redis purge: %w", err)
	}
	return nil
}

// version returns the current key version; a missing version key is 0.
func (r *Redis) version(ctx context.Context) (int64, error) {
	v, err := r.client.Get(ctx, redisVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis version: %w", err)
	}
	return v, nil
}

func (r *Redis) key(version int64, k string) string {
	return redisPrefix + "v" + strconv.FormatInt(version, 10) + ":" + k
}
