package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/pkg/redis"
)

func setupLimiter(t *testing.T, window time.Duration, max int64) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	t.Cleanup(func() { _ = client.Close() })
	limiter := New(redis.NewAdapterWithClient(client, "test"), window, max)
	// pin the clock so tests never straddle a window boundary
	frozen := time.Unix(1_700_000_000, 0)
	limiter.now = func() time.Time { return frozen }
	return limiter, mr
}

func TestLimiter_AllowsUpToMax(t *testing.T) {
	limiter, _ := setupLimiter(t, time.Minute, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Allow(ctx, 7))
	}

	err := limiter.Allow(ctx, 7)
	assert.ErrorIs(t, err, apperr.ErrRateLimited)
}

func TestLimiter_WindowsArePerProfile(t *testing.T) {
	limiter, _ := setupLimiter(t, time.Minute, 1)
	ctx := context.Background()

	require.NoError(t, limiter.Allow(ctx, 7))
	assert.ErrorIs(t, limiter.Allow(ctx, 7), apperr.ErrRateLimited)

	// a different profile has its own window
	require.NoError(t, limiter.Allow(ctx, 8))
}

func TestLimiter_WindowExpires(t *testing.T) {
	limiter, mr := setupLimiter(t, time.Minute, 1)
	ctx := context.Background()

	require.NoError(t, limiter.Allow(ctx, 7))
	assert.ErrorIs(t, limiter.Allow(ctx, 7), apperr.ErrRateLimited)

	// the counter key carries a TTL so stale windows clean themselves up
	mr.FastForward(2 * time.Minute)
	keys := mr.Keys()
	assert.Empty(t, keys)
}

func TestLimiter_FailsOpenWhenRedisDown(t *testing.T) {
	limiter, mr := setupLimiter(t, time.Minute, 1)
	mr.Close()

	assert.NoError(t, limiter.Allow(context.Background(), 7))
}
