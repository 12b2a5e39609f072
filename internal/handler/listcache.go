package handler

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const listCacheKey = "projects:all"

// ListCache keeps the serialized GET /projects response in redis for a
// short TTL. Every mutation invalidates it, so the client's
// refetch-after-mutation contract is unaffected. All methods are
// nil-receiver safe; a nil cache means caching is disabled.
type ListCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewListCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *ListCache {
	if rdb == nil {
		return nil
	}
	return &ListCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (lc *ListCache) Get(ctx context.Context) ([]byte, bool) {
	if lc == nil {
		return nil, false
	}
	body, err := lc.rdb.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			lc.logger.Warn("List cache read failed", zap.Error(err))
		}
		return nil, false
	}
	return body, true
}

func (lc *ListCache) Set(ctx context.Context, body []byte) {
	if lc == nil {
		return
	}
	if err := lc.rdb.Set(ctx, listCacheKey, body, lc.ttl).Err(); err != nil {
		lc.logger.Warn("List cache write failed", zap.Error(err))
	}
}

func (lc *ListCache) Invalidate(ctx context.Context) {
	if lc == nil {
		return
	}
	if err := lc.rdb.Del(ctx, listCacheKey).Err(); err != nil {
		lc.logger.Warn("List cache invalidation failed", zap.Error(err))
	}
}
