// Package storage caches assembled monthly reports in Redis so repeated
// dashboard loads within the TTL skip the connector round-trips. The cache
// is strictly best-effort: any Redis failure reads as a miss and writes
// are fire-and-forget, so a cache outage can slow reports down but never
// break them.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightpulse/social-monitor/internal/config"
	"github.com/brightpulse/social-monitor/internal/pkg/logger"
	"github.com/brightpulse/social-monitor/internal/report"
)

// Cache is a Redis-backed report cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache connects to Redis and verifies the connection.
func NewCache(cfg config.CacheConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("storage: redis ping: %w", err)
	}

	return &Cache{client: client, ttl: cfg.TTL()}, nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

func reportKey(company, platform, month string) string {
	return fmt.Sprintf("report:%s:%s:%s", company, platform, month)
}

// GetReport returns the cached report for (company, platform, month), or
// false on a miss. Redis errors count as misses.
func (c *Cache) GetReport(ctx context.Context, company, platform, month string) (*report.Report, bool) {
	key := reportKey(company, platform, month)
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("report cache read failed", "key", key, "error", err.Error())
		return nil, false
	}

	var rpt report.Report
	if err := json.Unmarshal(data, &rpt); err != nil {
		// A corrupt entry is useless; drop it so the next write replaces it.
		logger.Warn("report cache entry corrupt, evicting", "key", key)
		c.client.Del(ctx, key)
		return nil, false
	}
	return &rpt, true
}

// SetReport stores a report under its (company, platform, month) key with
// the configured TTL.
func (c *Cache) SetReport(ctx context.Context, rpt *report.Report) {
	key := reportKey(rpt.Company, rpt.Platform, rpt.Month)
	data, err := json.Marshal(rpt)
	if err != nil {
		logger.Error("report cache marshal failed", "key", key, "error", err.Error())
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn("report cache write failed", "key", key, "error", err.Error())
	}
}
