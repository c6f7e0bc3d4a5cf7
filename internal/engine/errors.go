package engine

import "errors"

var (
	// ErrBookingRequired возвращается, когда операции над существующим бронированием не передан его снимок
	ErrBookingRequired = errors.New("engine: current booking is required for this operation")

	// ErrBookingMismatch возвращается, когда снимок не соответствует bookingId из запроса
	ErrBookingMismatch = errors.New("engine: booking snapshot does not match requested id")

	// ErrMissingCaller возвращается, когда не указан идентификатор вызывающего
	ErrMissingCaller = errors.New("engine: caller identity is required")

	// ErrInternal возвращается при внутренних ошибках движка
	ErrInternal = errors.New("engine: internal error")
)
