package ratelimit

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRateLimited is matched by every *LimitError through errors.Is
	ErrRateLimited = errors.New("ratelimit: too many requests")
	ErrUnknownTier = errors.New("ratelimit: unknown tier")
	ErrStore       = errors.New("ratelimit: counter store failure")
)

// LimitError отказ из-за превышения лимита.
// Не раскрывает, какой именно счётчик сработал.
type LimitError struct {
	RetryAfter time.Duration
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrRateLimited, e.RetryAfter)
}

func (e *LimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds, never below 1
func (e *LimitError) RetryAfterSeconds() int {
	secs := int((e.RetryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
