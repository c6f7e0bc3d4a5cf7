package engine

import (
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/validation"
)

// Request входные данные одной операции
type Request struct {
	Operation domain.Operation
	Caller    string          // Идентификатор для счётчиков лимита (пользователь, IP, API key)
	Booking   *domain.Booking // Текущее состояние бронирования, обязательно для операций над существующим
	Payload   map[string]any  // Сырые поля запроса, включая bookingId из пути
}

// Decision решение движка, без побочных эффектов
type Decision struct {
	Operation     domain.Operation
	BookingID     string
	Values        validation.Values // Нормализованный payload
	From          domain.BookingStatus
	To            domain.BookingStatus
	ChangesStatus bool
}

// Исходы решений для метрик
const (
	OutcomeAccepted          = "accepted"
	OutcomeRateLimited       = "rate_limited"
	OutcomeInvalid           = "invalid"
	OutcomeInvalidTransition = "invalid_transition"
	OutcomeError             = "error"
)
