package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AvailabilityCache keeps resolved day views in Redis for the browse
// path. Misses and Redis failures both fall through to a live resolve;
// a write invalidates every cached variant of the outlet-day.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl, logger: logger}
}

func (c *AvailabilityCache) GetDay(ctx context.Context, key string) (*queries.DayAvailabilityView, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("availability cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var view queries.DayAvailabilityView
	if err := json.Unmarshal(raw, &view); err != nil {
		c.logger.Warn("availability cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return &view, true
}

func (c *AvailabilityCache) SetDay(ctx context.Context, key string, view *queries.DayAvailabilityView) {
	raw, err := json.Marshal(view)
	if err != nil {
		c.logger.Warn("availability cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("availability cache write failed", "key", key, "error", err)
	}
}

// InvalidateDay drops every party-size and preference variant cached
// for the outlet-day.
func (c *AvailabilityCache) InvalidateDay(ctx context.Context, outletID uuid.UUID, date string) {
	pattern := "availability:" + outletID.String() + ":" + date + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("availability cache scan failed", "pattern", pattern, "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("availability cache invalidation failed", "pattern", pattern, "error", err)
	}
}
