package redis

import (
	"github.com/redis/go-redis/v9"

	"projectboard/internal/config"
)

// NewClient returns nil when no address is configured; callers treat a
// nil client as "list caching disabled".
func NewClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
