package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
)

const (
	cacheKeyPrefix = "portal:cache:"
	// cacheFormat is bumped whenever a cached payload changes shape.
	cacheFormat = 1
)

type cacheEntry struct {
	Format   int             `json:"format"`
	StoredAt time.Time       `json:"stored_at"`
	Payload  json.RawMessage `json:"payload"`
}

// CacheRepository keeps JSON snapshots in Redis. Entries written in another
// format read as misses and get replaced on the next write.
type CacheRepository struct {
	client *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewCacheRepository wires the snapshot store. A nil client turns every read
// into a miss and every write into a no-op.
func NewCacheRepository(client *redis.Client, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{client: client, logger: logger, now: time.Now}
}

func (r *CacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return appErrors.ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := decodeCacheEntry(raw, dest); err != nil {
		r.logger.Debug("discarding cache entry", zap.String("key", key), zap.Error(err))
		return appErrors.ErrCacheMiss
	}
	return nil
}

func (r *CacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}

	raw, err := encodeCacheEntry(value, r.now().UTC())
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.client.Set(ctx, cacheKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func encodeCacheEntry(value interface{}, storedAt time.Time) ([]byte, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(cacheEntry{Format: cacheFormat, StoredAt: storedAt, Payload: payload})
}

func decodeCacheEntry(raw []byte, dest interface{}) error {
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return err
	}
	if entry.Format != cacheFormat {
		return fmt.Errorf("format %d, want %d", entry.Format, cacheFormat)
	}
	return json.Unmarshal(entry.Payload, dest)
}
