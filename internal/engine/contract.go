package engine

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/ratelimit"
	"github.com/m04kA/SMC-BookingEngine/internal/validation"
)

// RateLimiter интерфейс ограничителя частоты запросов
type RateLimiter interface {
	Allow(ctx context.Context, identity string, tier ratelimit.Tier) (*ratelimit.Decision, error)
}

// Validator интерфейс реестра цепочек валидации
type Validator interface {
	Validate(op domain.Operation, raw map[string]any, now time.Time, extra ...validation.CrossRule) (validation.Values, error)
}

// Metrics учитывает исходы решений движка
type Metrics interface {
	ObserveDecision(operation, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

type nopMetrics struct{}

func (nopMetrics) ObserveDecision(string, string) {}
