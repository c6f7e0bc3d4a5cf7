package ratelimit

import (
	"context"
	"time"
)

// Store атомарно увеличивает счётчик и при первом обращении выставляет ему срок жизни
type Store interface {
	// Increment returns the counter value after the increment and the time left until it resets
	Increment(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type TimeProvider interface {
	Now() time.Time
}
