// Package ratelimit implements a fixed-window counter over redis. Windows are
// keyed per profile, so one heavy user cannot starve the rest.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/acolin/asso-ledger/internal/apperr"
	"github.com/acolin/asso-ledger/pkg/logger"
	"github.com/acolin/asso-ledger/pkg/prom"
	"github.com/acolin/asso-ledger/pkg/redis"
)

type Limiter struct {
	redis  redis.Adapter
	window time.Duration
	max    int64
	now    func() time.Time
}

func New(adapter redis.Adapter, window time.Duration, max int64) *Limiter {
	return &Limiter{
		redis:  adapter,
		window: window,
		max:    max,
		now:    time.Now,
	}
}

// Allow counts one hit against the caller's current window and reports
// whether it fits. Redis being down fails open: availability of the ledger
// wins over precise throttling.
func (l *Limiter) Allow(ctx context.Context, profileID int64) error {
	window := l.now().Unix() / int64(l.window.Seconds())
	key := fmt.Sprintf("ratelimit:%d:%d", profileID, window)

	count, err := l.redis.Incr(ctx, key)
	if err != nil {
		logger.Warn("rate limiter unavailable, failing open", "error", err)
		return nil
	}
	if count == 1 {
		if _, err := l.redis.Expire(ctx, key, l.window); err != nil {
			logger.Warn("failed to set rate limit window expiry", "key", key, "error", err)
		}
	}
	if count > l.max {
		prom.IncCounter(prom.SystemHTTP, prom.MetricRateLimitRejects)
		return fmt.Errorf("%w: %d writes per %s", apperr.ErrRateLimited, l.max, l.window)
	}
	return nil
}
