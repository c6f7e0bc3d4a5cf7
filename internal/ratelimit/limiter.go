package ratelimit

import (
	"context"
	"fmt"
	"time"
)

const keyPrefix = "rate_limit"

// Decision результат проверки лимита
type Decision struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	ResetAfter time.Duration
}

type Limiter struct {
	store  Store
	limits map[Tier]Limit
	logger Logger
}

// NewLimiter creates a limiter; tiers missing from limits fall back to DefaultLimits
func NewLimiter(store Store, limits map[Tier]Limit, logger Logger) *Limiter {
	merged := DefaultLimits()
	for tier, limit := range limits {
		if limit.Window <= 0 {
			limit.Window = DefaultWindow
		}
		merged[tier] = limit
	}

	return &Limiter{
		store:  store,
		limits: merged,
		logger: logger,
	}
}

// Limit returns the configured limit of tier
func (l *Limiter) Limit(tier Tier) (Limit, bool) {
	limit, ok := l.limits[tier]
	return limit, ok
}

// Allow counts one request of identity against tier.
// The (count+1)-th request within a window of limit count is denied with *LimitError.
// Store failures are logged and the request is allowed.
func (l *Limiter) Allow(ctx context.Context, identity string, tier Tier) (*Decision, error) {
	limit, ok := l.limits[tier]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTier, tier)
	}

	key := fmt.Sprintf("%s:%s:%s", keyPrefix, tier, identity)
	count, ttl, err := l.store.Increment(ctx, key, limit.Window)
	if err != nil {
		l.logger.Warn("Rate limit store unavailable, allowing request: tier=%s, error=%v", tier, err)
		return &Decision{Allowed: true, Limit: limit.Max, Remaining: limit.Max, ResetAfter: limit.Window}, nil
	}

	if ttl <= 0 {
		ttl = limit.Window
	}

	decision := &Decision{
		Allowed:    count <= limit.Max,
		Limit:      limit.Max,
		Remaining:  max(limit.Max-count, 0),
		ResetAfter: ttl,
	}

	if !decision.Allowed {
		return decision, &LimitError{RetryAfter: ttl}
	}
	return decision, nil
}
