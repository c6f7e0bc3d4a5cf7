// Package ratelimit ограничивает число запросов на вызывающего в фиксированном окне
// по уровням (tier) до того, как начнётся валидация.
package ratelimit

import "time"

// Tier именованный профиль ограничения
type Tier string

const (
	TierStrict   Tier = "strict"
	TierStandard Tier = "standard"
	TierLenient  Tier = "lenient"
)

// DefaultWindow окно счётчика для всех уровней
const DefaultWindow = 15 * time.Minute

// Limit максимальное число запросов за окно
type Limit struct {
	Max    int64
	Window time.Duration
}

// DefaultLimits returns strict 5, standard 100 and lenient 1000 requests per 15 minutes
func DefaultLimits() map[Tier]Limit {
	return map[Tier]Limit{
		TierStrict:   {Max: 5, Window: DefaultWindow},
		TierStandard: {Max: 100, Window: DefaultWindow},
		TierLenient:  {Max: 1000, Window: DefaultWindow},
	}
}

func (t Tier) String() string {
	return string(t)
}
