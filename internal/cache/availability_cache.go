package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityCache memoizes availability responses for a short TTL.
// The scans behind them issue several queries per request and the same
// (barber, service, date) tuples are hammered while a client picks a
// slot. A nil *AvailabilityCache is a valid no-op cache.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func New(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *AvailabilityCache {
	if rdb == nil {
		return nil
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl, log: log}
}

func slotsKey(barberID, serviceID uint, date string) string {
	return fmt.Sprintf("avail:%d:slots:%d:%s", barberID, serviceID, date)
}

func datesKey(barberID, serviceID uint) string {
	return fmt.Sprintf("avail:%d:dates:%d", barberID, serviceID)
}

func (c *AvailabilityCache) GetSlots(ctx context.Context, barberID, serviceID uint, date string) ([]string, bool) {
	return c.get(ctx, slotsKey(barberID, serviceID, date))
}

func (c *AvailabilityCache) SetSlots(ctx context.Context, barberID, serviceID uint, date string, slots []string) {
	c.set(ctx, slotsKey(barberID, serviceID, date), slots)
}

func (c *AvailabilityCache) GetDates(ctx context.Context, barberID, serviceID uint) ([]string, bool) {
	return c.get(ctx, datesKey(barberID, serviceID))
}

func (c *AvailabilityCache) SetDates(ctx context.Context, barberID, serviceID uint, dates []string) {
	c.set(ctx, datesKey(barberID, serviceID), dates)
}

// InvalidateBarber drops every cached scan for the barber. Called after
// any write that changes their availability.
func (c *AvailabilityCache) InvalidateBarber(ctx context.Context, barberID uint) {
	if c == nil {
		return
	}

	pattern := fmt.Sprintf("avail:%d:*", barberID)
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("cache invalidation failed", zap.Error(err))
			return
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("cache scan failed", zap.Error(err))
	}
}

func (c *AvailabilityCache) get(ctx context.Context, key string) ([]string, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false
	}
	return values, true
}

func (c *AvailabilityCache) set(ctx context.Context, key string, values []string) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(values)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
