package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hbsystem/booking-api/internal/core/domain"
	"github.com/hbsystem/booking-api/internal/metrics"
)

const defaultCacheTTL = 30 * time.Second

// AvailabilityCache caches the per-category availability aggregate in Redis.
// Key format: availability:<hotel_id>:<yyyy-mm-dd>
// The TTL is short on purpose: the aggregate is best-effort and the ledger is
// the only source of truth.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailabilityCache wraps the given Redis client. A non-positive ttl
// falls back to the default.
func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &AvailabilityCache{client: client, ttl: ttl}
}

func (c *AvailabilityCache) Get(ctx context.Context, hotelID int64, day time.Time) ([]domain.CategoryAvailability, bool, error) {
	val, err := c.client.Get(ctx, c.key(hotelID, day)).Result()
	if err == redis.Nil {
		metrics.AvailabilityCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.AvailabilityCacheTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("availability cache get: %w", err)
	}

	var rows []domain.CategoryAvailability
	if err := json.Unmarshal([]byte(val), &rows); err != nil {
		metrics.AvailabilityCacheTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("availability cache decode: %w", err)
	}

	metrics.AvailabilityCacheTotal.WithLabelValues("hit").Inc()
	return rows, true, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, hotelID int64, day time.Time, rows []domain.CategoryAvailability) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("availability cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(hotelID, day), data, c.ttl).Err()
}

func (c *AvailabilityCache) key(hotelID int64, day time.Time) string {
	return fmt.Sprintf("availability:%d:%s", hotelID, day.Format("2006-01-02"))
}
