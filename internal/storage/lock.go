package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightpulse/social-monitor/internal/pkg/logger"
)

// BuildLock dedupes concurrent assembly of the same report across server
// instances. Assembly fans out several connector requests, so two dashboards
// opening the same report at once would double the connector load for an
// identical result. The lock uses SET NX with a TTL and a random ownership
// value; release is atomic via a Lua script so one instance cannot drop a
// lock another instance holds.
//
// Like the cache itself it is best-effort: a Redis error reads as
// not-acquired and the caller computes anyway.
type BuildLock struct {
	client *redis.Client
	key    string
	owner  string
	ttl    time.Duration
}

// BuildLock returns the build lock guarding one (company, platform, month)
// report.
func (c *Cache) BuildLock(company, platform, month string) *BuildLock {
	b := make([]byte, 16)
	rand.Read(b)
	return &BuildLock{
		client: c.client,
		key:    fmt.Sprintf("lock:%s", reportKey(company, platform, month)),
		owner:  hex.EncodeToString(b),
		ttl:    30 * time.Second,
	}
}

// TryAcquire attempts to take the lock without blocking.
func (l *BuildLock) TryAcquire(ctx context.Context) bool {
	ok, err := l.client.SetNX(ctx, l.key, l.owner, l.ttl).Result()
	if err != nil {
		logger.Warn("build lock unavailable", "key", l.key, "error", err.Error())
		return false
	}
	return ok
}

var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Release drops the lock if this instance still owns it.
func (l *BuildLock) Release(ctx context.Context) {
	if _, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.owner).Result(); err != nil {
		logger.Warn("build lock release failed", "key", l.key, "error", err.Error())
	}
}
