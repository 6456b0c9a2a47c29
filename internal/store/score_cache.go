// internal/store/score_cache.go
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"loanpath-api/internal/common/database"
)

// ScoreCache keeps each user's latest readiness score in Redis so the
// marketplace can price range offers without recomputing. Misses are normal;
// callers fall back to profile-less pricing.
type ScoreCache struct {
	redis *database.RedisClient
	ttl   time.Duration
}

func NewScoreCache(rdb *database.RedisClient, ttl time.Duration) *ScoreCache {
	return &ScoreCache{redis: rdb, ttl: ttl}
}

func scoreKey(userID uuid.UUID) string {
	return "lrs:latest:" + userID.String()
}

// SetLatest stores the score under the user's key with the configured TTL.
func (c *ScoreCache) SetLatest(ctx context.Context, userID uuid.UUID, score float64) error {
	if err := c.redis.Set(ctx, scoreKey(userID), strconv.FormatFloat(score, 'f', -1, 64), c.ttl); err != nil {
		return fmt.Errorf("caching latest score: %w", err)
	}
	return nil
}

// GetLatest returns (score, true) on a hit, (0, false) on a miss.
func (c *ScoreCache) GetLatest(ctx context.Context, userID uuid.UUID) (float64, bool, error) {
	raw, err := c.redis.Get(ctx, scoreKey(userID))
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading latest score: %w", err)
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parsing cached score %q: %w", raw, err)
	}
	return score, true, nil
}

// Invalidate drops the cached score. Called on profile changes so stale
// scores never drive offer pricing.
func (c *ScoreCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.redis.Del(ctx, scoreKey(userID)); err != nil {
		return fmt.Errorf("invalidating latest score: %w", err)
	}
	return nil
}
