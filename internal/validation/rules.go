package validation

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/schedule"
)

// ScheduledWithin checks field against the time window policy at now
func ScheduledWithin(policy schedule.Policy, field string) CrossRule {
	return func(values Values, now time.Time) []FieldError {
		at, ok := values.Time(field)
		if !ok {
			return nil
		}

		err := policy.Check(at, now)
		if err == nil {
			return nil
		}

		fe := FieldError{Field: field, Message: err.Error(), Code: CodeOutOfRange, Value: at.Format(time.RFC3339)}
		var wErr *schedule.WindowError
		if errors.As(err, &wErr) {
			fe.Code = wErr.Code
			fe.Message = wErr.Message
		}
		return []FieldError{fe}
	}
}

// After requires values[later] to be strictly after values[earlier] when both are present
func After(earlier, later string) CrossRule {
	return func(values Values, _ time.Time) []FieldError {
		from, okFrom := values.Time(earlier)
		to, okTo := values.Time(later)
		if !okFrom || !okTo {
			return nil
		}
		if !to.After(from) {
			return []FieldError{{
				Field:   later,
				Message: later + " must be after " + earlier,
				Code:    CodeInvalidRange,
				Value:   to.Format(time.RFC3339),
			}}
		}
		return nil
	}
}

// StatusRequirements enforces the fields each target status of updateStatus needs
func StatusRequirements() CrossRule {
	required := map[domain.BookingStatus]string{
		domain.StatusCancelled: FieldReason,
		domain.StatusCompleted: FieldActualDuration,
		domain.StatusRefunded:  FieldRefundAmount,
	}

	return func(values Values, _ time.Time) []FieldError {
		raw, ok := values.String(FieldStatus)
		if !ok {
			return nil
		}
		field, needs := required[domain.BookingStatus(raw)]
		if !needs || values.Has(field) {
			return nil
		}
		return []FieldError{{
			Field:   field,
			Message: "is required when status is " + raw,
			Code:    CodeRequired,
		}}
	}
}

// NotAbove requires values[field] <= limit; used with booking context known only at runtime
func NotAbove(field string, limit float64) CrossRule {
	return func(values Values, _ time.Time) []FieldError {
		amount, ok := values.Float(field)
		if !ok || amount <= limit {
			return nil
		}
		return []FieldError{{
			Field:   field,
			Message: field + " must not exceed " + formatFloat(limit),
			Code:    CodeExceedsTotal,
			Value:   amount,
		}}
	}
}
