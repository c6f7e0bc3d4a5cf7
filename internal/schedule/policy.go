// Package schedule implements the time window policy for booking scheduled times.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Коды нарушений временного окна
const (
	CodeScheduledInPast  = "SCHEDULED_IN_PAST"
	CodeLeadTimeTooShort = "LEAD_TIME_TOO_SHORT"
	CodeBeyondHorizon    = "BEYOND_HORIZON"
)

// ErrOutsideWindow is matched by every *WindowError through errors.Is
var ErrOutsideWindow = errors.New("schedule: scheduled time is outside the booking window")

// WindowError описывает конкретное нарушение политики временного окна
type WindowError struct {
	Code    string
	Message string
	Limit   time.Time // Граница, которую нарушило значение (для длительности - нулевое)
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOutsideWindow, e.Message)
}

func (e *WindowError) Is(target error) bool {
	return target == ErrOutsideWindow
}

// Policy задаёт временные ограничения для scheduledAt.
// Нулевые MinLead и MaxHorizon отключают соответствующую проверку.
type Policy struct {
	SkewBuffer time.Duration // Допустимое отставание от now (рассинхрон часов, задержка сети)
	MinLead    time.Duration // Минимальное время до начала
	MaxHorizon time.Duration // Максимальная глубина бронирования
}

// DefaultPolicy returns the strict variant: 5 minute skew buffer, 1 hour lead, 90 day horizon
func DefaultPolicy() Policy {
	return Policy{
		SkewBuffer: domain.DefaultSkewBuffer,
		MinLead:    domain.DefaultMinLead,
		MaxHorizon: domain.DefaultMaxHorizon,
	}
}

// Check decides whether scheduledAt is acceptable at now.
// Bounds are inclusive: now-SkewBuffer, now+MinLead and now+MaxHorizon are all accepted.
func (p Policy) Check(scheduledAt, now time.Time) error {
	earliest := now.Add(-p.SkewBuffer)
	if scheduledAt.Before(earliest) {
		return &WindowError{
			Code:    CodeScheduledInPast,
			Message: "scheduled time must be in the future",
			Limit:   earliest,
		}
	}

	if p.MinLead > 0 {
		minStart := now.Add(p.MinLead)
		if scheduledAt.Before(minStart) {
			return &WindowError{
				Code:    CodeLeadTimeTooShort,
				Message: fmt.Sprintf("scheduled time must be at least %s from now", formatDuration(p.MinLead)),
				Limit:   minStart,
			}
		}
	}

	if p.MaxHorizon > 0 {
		maxStart := now.Add(p.MaxHorizon)
		if scheduledAt.After(maxStart) {
			return &WindowError{
				Code:    CodeBeyondHorizon,
				Message: fmt.Sprintf("scheduled time must be within %s from now", formatDuration(p.MaxHorizon)),
				Limit:   maxStart,
			}
		}
	}

	return nil
}

// formatDuration печатает длительность в днях/часах/минутах
func formatDuration(d time.Duration) string {
	switch {
	case d%(24*time.Hour) == 0:
		days := int(d / (24 * time.Hour))
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	case d%time.Hour == 0:
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	default:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
}
