package validation

import (
	"time"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// CrossRule проверка, зависящая от нескольких полей или от текущего времени.
// Получает только поля, успешно прошедшие свои правила.
type CrossRule func(values Values, now time.Time) []FieldError

// Chain упорядоченный набор правил одной операции
type Chain struct {
	op     domain.Operation
	fields []*FieldRule
	rules  []CrossRule
}

func NewChain(op domain.Operation, fields ...*FieldRule) *Chain {
	return &Chain{op: op, fields: fields}
}

// With appends cross-field rules evaluated after all field rules
func (c *Chain) With(rules ...CrossRule) *Chain {
	c.rules = append(c.rules, rules...)
	return c
}

func (c *Chain) Operation() domain.Operation {
	return c.op
}

// Validate runs every field rule and then every cross rule, the chain's own first
// and then extra (request context rules, e.g. limits taken from the stored booking).
// It returns either the normalized values or an *Error listing all violations, never both.
// Fields not declared in the chain are dropped.
func (c *Chain) Validate(raw map[string]any, now time.Time, extra ...CrossRule) (Values, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	values := make(Values, len(c.fields))
	var errs []FieldError
	failed := make(map[string]struct{})

	// 1. Правила полей, без остановки на первой ошибке
	for _, rule := range c.fields {
		value, ok, fieldErr := rule.apply(raw)
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
			failed[rule.name] = struct{}{}
			continue
		}
		if ok {
			values[rule.name] = value
		}
	}

	// 2. Перекрёстные правила; по одной ошибке на поле
	rules := c.rules
	if len(extra) > 0 {
		rules = append(append([]CrossRule{}, c.rules...), extra...)
	}
	for _, rule := range rules {
		for _, fe := range rule(values, now) {
			if _, seen := failed[fe.Field]; seen {
				continue
			}
			if fe.Value == nil {
				fe.Value = raw[fe.Field]
			}
			errs = append(errs, fe)
			failed[fe.Field] = struct{}{}
		}
	}

	if len(errs) > 0 {
		return nil, NewError(c.op, errs...)
	}
	return values, nil
}
