package registry

import (
	"context"
	"encoding/json"
	"time"

	"bulkpay-backend/internal/domain/registry"

	"github.com/redis/go-redis/v9"
)

// CachedLookup is a read-through cache over another Lookup. Hits and
// misses are both cached; transport errors are not, so a retry after
// an outage goes back to the source.
type CachedLookup struct {
	next registry.Lookup
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCachedLookup(next registry.Lookup, rdb *redis.Client, ttl time.Duration) *CachedLookup {
	return &CachedLookup{next: next, rdb: rdb, ttl: ttl}
}

func cacheKey(phoneNumber string) string { return "registry:msisdn:" + phoneNumber }

func (c *CachedLookup) Lookup(ctx context.Context, phoneNumber string) (registry.LookupResult, error) {
	key := cacheKey(phoneNumber)

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var res registry.LookupResult
		if json.Unmarshal(raw, &res) == nil {
			return res, nil
		}
		// unreadable entry: fall through and overwrite
	}

	res, err := c.next.Lookup(ctx, phoneNumber)
	if err != nil {
		return res, err
	}

	if raw, err := json.Marshal(res); err == nil {
		_ = c.rdb.Set(ctx, key, raw, c.ttl).Err()
	}
	return res, nil
}
