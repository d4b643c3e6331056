// Package redis keeps bridge values as plain Redis strings.
package redis

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/bridge"
	"github.com/redis/go-redis/v9"
)

// Options configure the Redis bridge. A zero TTL keeps keys forever; a
// positive TTL gets up to Jitter added per write so visitor snapshots do not
// all expire together.
type Options struct {
	Prefix string
	TTL    time.Duration
	Jitter time.Duration
}

type Bridge struct {
	client *redis.Client
	opts   Options
}

var _ bridge.Batcher = (*Bridge)(nil)

func New(client *redis.Client, opts Options) *Bridge {
	return &Bridge{client: client, opts: opts}
}

// Open connects to addr and pings the server.
func Open(ctx context.Context, addr, password string, db int, opts Options) (*Bridge, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return New(client, opts), nil
}

func (r *Bridge) Close() error {
	return r.client.Close()
}

func (r *Bridge) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *Bridge) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *Bridge) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// SetMany writes all entries in one MULTI/EXEC transaction.
func (r *Bridge) SetMany(ctx context.Context, entries []bridge.Entry) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, e := range entries {
			pipe.Set(ctx, r.key(e.Key), e.Value, r.ttl())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis multi set failed: %w", err)
	}
	return nil
}

func (r *Bridge) DeleteMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *Bridge) key(k string) string {
	return r.opts.Prefix + k
}

func (r *Bridge) ttl() time.Duration {
	if r.opts.TTL <= 0 {
		return 0
	}
	if r.opts.Jitter <= 0 {
		return r.opts.TTL
	}
	return r.opts.TTL + time.Duration(rand.Int63n(int64(r.opts.Jitter)))
}
