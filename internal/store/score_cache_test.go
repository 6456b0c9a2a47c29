// internal/store/score_cache_test.go
package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanpath-api/internal/common/database"
)

func newTestScoreCache(t *testing.T) (*ScoreCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewScoreCache(database.NewRedisFromClient(client), time.Hour), mr
}

func TestScoreCache_SetAndGet(t *testing.T) {
	cache, _ := newTestScoreCache(t)
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, cache.SetLatest(ctx, userID, 72.5))

	score, ok, err := cache.GetLatest(ctx, userID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 72.5, score)
}

func TestScoreCache_Miss(t *testing.T) {
	cache, _ := newTestScoreCache(t)

	score, ok, err := cache.GetLatest(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0.0, score)
}

func TestScoreCache_Invalidate(t *testing.T) {
	cache, _ := newTestScoreCache(t)
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, cache.SetLatest(ctx, userID, 55))
	require.NoError(t, cache.Invalidate(ctx, userID))

	_, ok, err := cache.GetLatest(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScoreCache_TTLExpiry(t *testing.T) {
	cache, mr := newTestScoreCache(t)
	userID := uuid.New()
	ctx := context.Background()

	require.NoError(t, cache.SetLatest(ctx, userID, 90))
	mr.FastForward(2 * time.Hour)

	_, ok, err := cache.GetLatest(ctx, userID)
	require.NoError(t, err)
	assert.False(t, ok)
}
