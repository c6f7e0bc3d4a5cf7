package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
)

// Коды ошибок уровня поля
const (
	CodeRequired      = "REQUIRED"
	CodeInvalidType   = "INVALID_TYPE"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeOutOfRange    = "OUT_OF_RANGE"
	CodeTooShort      = "TOO_SHORT"
	CodeTooLong       = "TOO_LONG"
	CodeNotAllowed    = "NOT_ALLOWED"
	CodeEmpty         = "EMPTY"
	CodeTooMany       = "TOO_MANY_ITEMS"
	CodeInvalidRange  = "INVALID_RANGE"
	CodeExceedsTotal  = "EXCEEDS_TOTAL"
)

var (
	// ErrValidation is matched by every *Error through errors.Is
	ErrValidation = errors.New("validation: payload is invalid")

	// ErrUnknownOperation возвращается, когда для операции нет цепочки
	ErrUnknownOperation = errors.New("validation: unknown operation")
)

// FieldError одно нарушение правила для конкретного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Value   any    `json:"value,omitempty"`
}

// Error collects every failing rule of a single chain run
type Error struct {
	Operation domain.Operation
	Errors    []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Operation, strings.Join(parts, "; "))
}

func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

// Fields returns the names of the failing fields in report order
func (e *Error) Fields() []string {
	names := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		names[i] = fe.Field
	}
	return names
}

// NewError builds an *Error from one or more field errors
func NewError(op domain.Operation, errs ...FieldError) *Error {
	return &Error{Operation: op, Errors: errs}
}

// violation результат неуспешного шага правила, до привязки к имени поля
type violation struct {
	code    string
	message string
}

func (v *violation) Error() string {
	return v.message
}

func fail(code, format string, args ...any) *violation {
	return &violation{code: code, message: fmt.Sprintf(format, args...)}
}
