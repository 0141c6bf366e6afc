package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"

	"github.com/redis/go-redis/v9"
)

// Cache is the Redis adapter for the three key families:
//
//	media:{id}:descriptor   serialised descriptor payload
//	media:{id}:{purpose}    one public variant URL
//	profile:{owner}:{purpose}  profile-picture URL keyed by owner
//
// plus media:{id}:etag, set alongside the descriptor payload. A cache
// outage never fails a request: Get returns the error for the caller to
// ignore, Set logs and moves on.
type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetDescriptor(ctx context.Context, id int64) ([]byte, error) {
	logger.Infof(ctx, "getting cache entry for descriptor of media #%d...", id)

	val, err := c.client.Get(ctx, descriptorKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) GetEtagDescriptor(ctx context.Context, id int64) (string, error) {
	logger.Infof(ctx, "getting cache entry for etag of media #%d...", id)

	val, err := c.client.Get(ctx, etagKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetDescriptor(ctx context.Context, id int64, data []byte, ttl time.Duration) {
	logger.Infof(ctx, "creating cache entry for descriptor of media #%d...", id)

	if err := c.client.Set(ctx, descriptorKey(id), data, ttl).Err(); err != nil {
		logger.Warnf(ctx, "redis set failed for media #%d: %v", id, err)
	}
}

func (c *Cache) SetEtagDescriptor(ctx context.Context, id int64, etag string, ttl time.Duration) {
	logger.Infof(ctx, "creating cache entry for etag of media #%d...", id)

	if err := c.client.Set(ctx, etagKey(id), etag, ttl).Err(); err != nil {
		logger.Warnf(ctx, "redis set failed for etag of media #%d: %v", id, err)
	}
}

func (c *Cache) GetVariantURL(ctx context.Context, id int64, purpose model.Purpose) (string, error) {
	logger.Infof(ctx, "getting cache entry for variant %q of media #%d...", purpose, id)

	val, err := c.client.Get(ctx, variantKey(id, purpose)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetVariantURL(ctx context.Context, id int64, purpose model.Purpose, url string, ttl time.Duration) {
	logger.Infof(ctx, "creating cache entry for variant %q of media #%d...", purpose, id)

	if err := c.client.Set(ctx, variantKey(id, purpose), url, ttl).Err(); err != nil {
		logger.Warnf(ctx, "redis set failed for variant %q of media #%d: %v", purpose, id, err)
	}
}

func (c *Cache) GetProfileURL(ctx context.Context, owner string, purpose model.Purpose) (string, error) {
	logger.Infof(ctx, "getting cache entry for profile variant %q of owner %q...", purpose, owner)

	val, err := c.client.Get(ctx, profileKey(owner, purpose)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetProfileURL(ctx context.Context, owner string, purpose model.Purpose, url string, ttl time.Duration) {
	logger.Infof(ctx, "creating cache entry for profile variant %q of owner %q...", purpose, owner)

	if err := c.client.Set(ctx, profileKey(owner, purpose), url, ttl).Err(); err != nil {
		logger.Warnf(ctx, "redis set failed for profile variant %q of owner %q: %v", purpose, owner, err)
	}
}

// InvalidateDescriptor deletes every key the cache could hold for one
// descriptor. The purpose set is closed, so the keys are enumerable and no
// SCAN is needed.
func (c *Cache) InvalidateDescriptor(ctx context.Context, id int64, owner string) error {
	logger.Infof(ctx, "invalidating cache entries for media #%d...", id)

	keys := []string{descriptorKey(id), etagKey(id)}
	for _, p := range model.AllPurposes {
		keys = append(keys, variantKey(id, p))
	}
	for _, p := range model.AllPurposes {
		keys = append(keys, profileKey(owner, p))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func descriptorKey(id int64) string {
	return "media:" + strconv.FormatInt(id, 10) + ":descriptor"
}

func etagKey(id int64) string {
	return "media:" + strconv.FormatInt(id, 10) + ":etag"
}

func variantKey(id int64, purpose model.Purpose) string {
	return "media:" + strconv.FormatInt(id, 10) + ":" + string(purpose)
}

func profileKey(owner string, purpose model.Purpose) string {
	return "profile:" + owner + ":" + string(purpose)
}
