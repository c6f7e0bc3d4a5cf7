// Package handlers содержит общие хелперы HTTP слоя; сами обработчики лежат в подпакетах.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/ratelimit"
	"github.com/m04kA/SMC-BookingEngine/internal/validation"
)

// Коды ошибок в теле ответа
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeRateLimited       = "RATE_LIMITED"
	CodeMalformedRequest  = "MALFORMED_REQUEST"
	CodeNotFound          = "NOT_FOUND"
	CodeConcurrentUpdate  = "CONCURRENT_UPDATE"
	CodeInternalError     = "INTERNAL_ERROR"
)

const maxBodyBytes = 1 << 20

const msgInternalError = "внутренняя ошибка сервера"

// ErrMalformedBody возвращается, когда тело запроса не является JSON объектом
var ErrMalformedBody = errors.New("handlers: request body must be a JSON object")

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse тело ответа VALIDATION_ERROR
type ValidationErrorResponse struct {
	Code      string                  `json:"code"`
	RequestID string                  `json:"requestId"`
	Errors    []validation.FieldError `json:"errors"`
}

// TransitionErrorResponse тело ответа INVALID_TRANSITION
type TransitionErrorResponse struct {
	Code            string `json:"code"`
	Message         string `json:"message"`
	CurrentStatus   string `json:"currentStatus"`
	RequestedStatus string `json:"requestedStatus"`
}

// RateLimitedResponse тело ответа RATE_LIMITED
type RateLimitedResponse struct {
	Code              string `json:"code"`
	Message           string `json:"message"`
	RetryAfterSeconds int    `json:"retryAfterSeconds"`
}

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}

// DecodePayload декодирует тело запроса как JSON объект; пустое тело даёт пустой payload
func DecodePayload(r *http.Request) (map[string]any, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return map[string]any{}, nil
	}

	var payload map[string]any
	if err := DecodeJSON(r, &payload); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if payload == nil {
		return nil, ErrMalformedBody
	}
	return payload, nil
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError отправляет ответ с кодом и сообщением об ошибке
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// RespondMalformed отправляет 400 MALFORMED_REQUEST
func RespondMalformed(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeMalformedRequest, message)
}

// RespondNotFound отправляет 404 NOT_FOUND
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondConflict отправляет 409 CONCURRENT_UPDATE
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, CodeConcurrentUpdate, message)
}

// RespondInternalError отправляет 500 без деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, msgInternalError)
}

// RespondRejection отвечает на отказ движка: лимит, валидация или недопустимый переход.
// Возвращает false, если err не является отказом; тогда ответ не отправлен.
func RespondRejection(w http.ResponseWriter, requestID string, err error) bool {
	var (
		limitErr      *ratelimit.LimitError
		validationErr *validation.Error
		transitionErr *domain.TransitionError
	)

	switch {
	case errors.As(err, &limitErr):
		seconds := limitErr.RetryAfterSeconds()
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		RespondJSON(w, http.StatusTooManyRequests, RateLimitedResponse{
			Code:              CodeRateLimited,
			Message:           "слишком много запросов",
			RetryAfterSeconds: seconds,
		})

	case errors.As(err, &validationErr):
		RespondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Code:      CodeValidationError,
			RequestID: requestID,
			Errors:    validationErr.Errors,
		})

	case errors.As(err, &transitionErr):
		RespondJSON(w, http.StatusConflict, TransitionErrorResponse{
			Code:            CodeInvalidTransition,
			Message:         transitionErr.Error(),
			CurrentStatus:   transitionErr.Current.String(),
			RequestedStatus: transitionErr.Requested.String(),
		})

	default:
		return false
	}
	return true
}
