package analytics

import (
	"context"
	"time"

	"businessconnect/utils"

	"github.com/go-redis/redis/v8"
)

// Deduper reports whether a view key is new within its window.
type Deduper interface {
	FirstView(ctx context.Context, key string, window time.Duration) (bool, error)
}

// RedisDeduper marks views with SETNX so a key counts once per window.
type RedisDeduper struct {
	Client *redis.Client
}

func (d RedisDeduper) FirstView(ctx context.Context, key string, window time.Duration) (bool, error) {
	if d.Client == nil {
		return true, nil
	}
	return d.Client.SetNX(ctx, utils.ViewDedupPrefix+key, 1, window).Result()
}
