package validation

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/sanitize"
)

// Step один шаг правила поля: приводит значение к типу, нормализует или проверяет его.
// Возвращённое значение передаётся следующему шагу.
type Step func(value any) (any, error)

// AsString requires a JSON string
func AsString() Step {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(CodeInvalidType, "must be a string")
		}
		return s, nil
	}
}

// Sanitize applies a string transform; the value must already be a string
func Sanitize(fn func(string) string) Step {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(CodeInvalidType, "must be a string")
		}
		return fn(s), nil
	}
}

// AsInt coerces JSON numbers and numeric strings to int
func AsInt() Step {
	return func(value any) (any, error) {
		switch v := value.(type) {
		case int:
			return v, nil
		case int32:
			return int(v), nil
		case int64:
			return int(v), nil
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
				return nil, fail(CodeInvalidType, "must be an integer")
			}
			if v > math.MaxInt32 || v < math.MinInt32 {
				return nil, fail(CodeOutOfRange, "integer is out of range")
			}
			return int(v), nil
		case json.Number:
			i, err := strconv.Atoi(v.String())
			if err != nil {
				return nil, fail(CodeInvalidType, "must be an integer")
			}
			return i, nil
		case string:
			i, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, fail(CodeInvalidType, "must be an integer")
			}
			return i, nil
		default:
			return nil, fail(CodeInvalidType, "must be an integer")
		}
	}
}

// AsFloat coerces JSON numbers and numeric strings to float64
func AsFloat() Step {
	return func(value any) (any, error) {
		var f float64
		switch v := value.(type) {
		case float64:
			f = v
		case int:
			f = float64(v)
		case int64:
			f = float64(v)
		case json.Number:
			parsed, err := v.Float64()
			if err != nil {
				return nil, fail(CodeInvalidType, "must be a number")
			}
			f = parsed
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fail(CodeInvalidType, "must be a number")
			}
			f = parsed
		default:
			return nil, fail(CodeInvalidType, "must be a number")
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fail(CodeInvalidType, "must be a finite number")
		}
		return f, nil
	}
}

// AsBool accepts JSON booleans and "true"/"false" strings
func AsBool() Step {
	return func(value any) (any, error) {
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fail(CodeInvalidType, "must be a boolean")
			}
			return b, nil
		default:
			return nil, fail(CodeInvalidType, "must be a boolean")
		}
	}
}

// AsMoney coerces to a decimal amount, checks the raw value against [0.01, 100000]
// and only then rounds it to cents
func AsMoney() Step {
	return func(value any) (any, error) {
		var d decimal.Decimal
		switch v := value.(type) {
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fail(CodeInvalidType, "must be a finite number")
			}
			d = decimal.NewFromFloat(v)
		case int:
			d = decimal.NewFromInt(int64(v))
		case json.Number:
			parsed, err := decimal.NewFromString(v.String())
			if err != nil {
				return nil, fail(CodeInvalidType, "must be a monetary amount")
			}
			d = parsed
		case string:
			parsed, err := decimal.NewFromString(strings.TrimSpace(v))
			if err != nil {
				return nil, fail(CodeInvalidType, "must be a monetary amount")
			}
			d = parsed
		default:
			return nil, fail(CodeInvalidType, "must be a monetary amount")
		}

		// Граница проверяется до округления: 0.005 и 100000.004 вне диапазона
		if d.LessThan(decimal.NewFromFloat(domain.MinMoneyAmount)) ||
			d.GreaterThan(decimal.NewFromInt(domain.MaxMoneyAmount)) {
			return nil, fail(CodeOutOfRange, "must be between %s and %s",
				formatFloat(domain.MinMoneyAmount), formatFloat(domain.MaxMoneyAmount))
		}
		return sanitize.MoneyDecimal(d).InexactFloat64(), nil
	}
}

// AsDateTime parses an ISO-8601 (RFC 3339) date-time and converts it to UTC
func AsDateTime() Step {
	return func(value any) (any, error) {
		switch v := value.(type) {
		case time.Time:
			return v.UTC(), nil
		case string:
			t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
			if err != nil {
				return nil, fail(CodeInvalidFormat, "must be an ISO-8601 date-time with timezone")
			}
			return t.UTC(), nil
		default:
			return nil, fail(CodeInvalidType, "must be an ISO-8601 date-time string")
		}
	}
}

// AsUUID requires the canonical 8-4-4-4-12 UUID form and lowercases it
func AsUUID() Step {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(CodeInvalidType, "must be a string")
		}
		s = strings.TrimSpace(s)
		if len(s) != 36 {
			return nil, fail(CodeInvalidFormat, "must be a UUID")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fail(CodeInvalidFormat, "must be a UUID")
		}
		return id.String(), nil
	}
}

// AsStrings accepts an array of strings or a comma separated string
func AsStrings() Step {
	return func(value any) (any, error) {
		switch v := value.(type) {
		case []string:
			out := make([]string, len(v))
			copy(out, v)
			return out, nil
		case []any:
			out := make([]string, 0, len(v))
			for i, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fail(CodeInvalidType, "item %d must be a string", i)
				}
				out = append(out, s)
			}
			return out, nil
		case string:
			if strings.TrimSpace(v) == "" {
				return []string{}, nil
			}
			parts := strings.Split(v, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				out = append(out, strings.TrimSpace(p))
			}
			return out, nil
		default:
			return nil, fail(CodeInvalidType, "must be an array of strings")
		}
	}
}

// Length checks the rune length of a string, inclusive
func Length(min, max int) Step {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(CodeInvalidType, "must be a string")
		}
		n := utf8.RuneCountInString(s)
		if n < min {
			if min == 1 {
				return nil, fail(CodeTooShort, "must not be empty")
			}
			return nil, fail(CodeTooShort, "must be at least %d characters", min)
		}
		if max > 0 && n > max {
			return nil, fail(CodeTooLong, "must be at most %d characters", max)
		}
		return s, nil
	}
}

// Range checks an int or float64 against inclusive bounds
func Range(min, max float64) Step {
	return func(value any) (any, error) {
		var f float64
		switch v := value.(type) {
		case int:
			f = float64(v)
		case float64:
			f = v
		default:
			return nil, fail(CodeInvalidType, "must be a number")
		}
		if f < min || f > max {
			return nil, fail(CodeOutOfRange, "must be between %s and %s", formatFloat(min), formatFloat(max))
		}
		return value, nil
	}
}

// Min checks an int or float64 against an inclusive lower bound
func Min(min float64) Step {
	return func(value any) (any, error) {
		var f float64
		switch v := value.(type) {
		case int:
			f = float64(v)
		case float64:
			f = v
		default:
			return nil, fail(CodeInvalidType, "must be a number")
		}
		if f < min {
			return nil, fail(CodeOutOfRange, "must be at least %s", formatFloat(min))
		}
		return value, nil
	}
}

// OneOf checks enum membership of a string
func OneOf(allowed ...string) Step {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	list := strings.Join(allowed, ", ")

	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(CodeInvalidType, "must be a string")
		}
		if _, ok := set[s]; !ok {
			return nil, fail(CodeNotAllowed, "must be one of: %s", list)
		}
		return s, nil
	}
}

// Match checks a string against a pattern
func Match(re *regexp.Regexp, message string) Step {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, fail(CodeInvalidType, "must be a string")
		}
		if !re.MatchString(s) {
			return nil, fail(CodeInvalidFormat, "%s", message)
		}
		return s, nil
	}
}

// NonEmpty rejects empty arrays and empty strings
func NonEmpty() Step {
	return func(value any) (any, error) {
		switch v := value.(type) {
		case []string:
			if len(v) == 0 {
				return nil, fail(CodeEmpty, "must contain at least one item")
			}
		case string:
			if v == "" {
				return nil, fail(CodeEmpty, "must not be empty")
			}
		}
		return value, nil
	}
}

// MaxItems bounds the number of array elements
func MaxItems(n int) Step {
	return func(value any) (any, error) {
		items, ok := value.([]string)
		if !ok {
			return nil, fail(CodeInvalidType, "must be an array of strings")
		}
		if len(items) > n {
			return nil, fail(CodeTooMany, "must contain at most %d items", n)
		}
		return items, nil
	}
}

// Each runs steps on every element of a string array; elements must stay strings
func Each(steps ...Step) Step {
	return func(value any) (any, error) {
		items, ok := value.([]string)
		if !ok {
			return nil, fail(CodeInvalidType, "must be an array of strings")
		}

		out := make([]string, len(items))
		for i, item := range items {
			var current any = item
			for _, step := range steps {
				next, err := step(current)
				if err != nil {
					code := CodeInvalidFormat
					if v, ok := err.(*violation); ok {
						code = v.code
					}
					return nil, fail(code, "item %d: %s", i, err.Error())
				}
				current = next
			}
			s, ok := current.(string)
			if !ok {
				return nil, fail(CodeInvalidType, "item %d must be a string", i)
			}
			out[i] = s
		}
		return out, nil
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
