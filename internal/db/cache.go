package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raushan22882917/f-7556/internal/models"
)

const leaderboardCacheKey = "leaderboard:global"

// LeaderboardCache keeps the ranked global leaderboard in redis for a short
// TTL so every page load does not hit Postgres. A nil receiver or a redis
// error degrades to a miss; the caller falls back to the store.
type LeaderboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLeaderboardCache(rdb *redis.Client, ttl time.Duration) *LeaderboardCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &LeaderboardCache{rdb: rdb, ttl: ttl}
}

func (c *LeaderboardCache) Get(ctx context.Context, limit int) ([]models.LeaderboardEntry, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, cacheKey(limit)).Bytes()
	if err != nil {
		return nil, false
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *LeaderboardCache) Set(ctx context.Context, limit int, entries []models.LeaderboardEntry) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	// Best effort: a failed SET just means the next read queries Postgres.
	c.rdb.Set(ctx, cacheKey(limit), raw, c.ttl)
}

func cacheKey(limit int) string {
	return fmt.Sprintf("%s:%d", leaderboardCacheKey, limit)
}
