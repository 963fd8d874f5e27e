package report

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheVersionKey = "report:version"
	bumpChannel     = "report.bump"
)

// LoaderFunc computes the value to cache on a miss.
type LoaderFunc func(context.Context) (interface{}, error)

// Cache memoises computed summaries in Redis. The computation is a pure
// function of the snapshot, so the cache is a transparent read-through
// layer: losing it only costs recomputation. A nil client degrades to
// always calling the loader.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

// Version returns the current cache version, initialising it to 1 when
// the key is missing or damaged.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	if err := c.client.SetNX(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
		return 0, err
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if err != nil {
		return 0, err
	}
	if ver > 0 {
		return ver, nil
	}
	if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
		return 0, err
	}
	return 1, nil
}

// BuildKey composes a cache key with the current version appended, so a
// version bump orphans every older entry at once.
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	key := ""
	for i, part := range parts {
		if i > 0 {
			key += ":"
		}
		key += part
	}
	if !c.enabled() {
		return key, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return key + ":" + strconv.FormatInt(ver, 10), nil
}

// FetchJSON loads a cached value into dest, calling the loader and
// storing its result on a miss.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest interface{}, loader LoaderFunc) error {
	if loader == nil {
		return errors.New("report: cache loader required")
	}
	if c.enabled() {
		payload, err := c.client.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			return json.Unmarshal(payload, dest)
		case !errors.Is(err, redis.Nil):
			return err
		}
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.enabled() {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return err
		}
	}
	// Round-tripping the loader result through JSON keeps the miss path
	// and the hit path byte-for-byte identical.
	return json.Unmarshal(raw, dest)
}

// Bump invalidates every cached summary by incrementing the global
// version, then tells the other instances about it.
func (c *Cache) Bump(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	ver, err := c.client.Incr(ctx, cacheVersionKey).Result()
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, bumpChannel, strconv.FormatInt(ver, 10)).Err()
}

// ListenForInvalidation follows version bump notifications from other
// instances until the context is cancelled.
func (c *Cache) ListenForInvalidation(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	pubsub := c.client.Subscribe(ctx, bumpChannel)
	go func() {
		defer func() { _ = pubsub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				c.applyBump(ctx, msg.Payload)
			}
		}
	}()
	return nil
}

// applyBump fast-forwards the local version to the published one, or
// increments blindly when the payload is unreadable.
func (c *Cache) applyBump(ctx context.Context, payload string) {
	if ver, err := strconv.ParseInt(payload, 10, 64); err == nil && ver > 0 {
		_ = c.client.Set(ctx, cacheVersionKey, ver, 0).Err()
		return
	}
	_ = c.client.Incr(ctx, cacheVersionKey).Err()
}
