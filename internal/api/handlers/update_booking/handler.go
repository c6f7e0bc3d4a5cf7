// Package update_booking обслуживает все операции над существующим бронированием:
// смену статуса, cancel, confirm, start, complete, refund и reschedule.
package update_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgConcurrentUpdate   = "бронирование было изменено другим запросом, повторите попытку"
)

type Handler struct {
	service BookingService
	op      domain.Operation
	route   string
	logger  Logger
}

// NewHandler создает обработчик операции op; route используется только в логах
func NewHandler(service BookingService, op domain.Operation, route string, logger Logger) *Handler {
	return &Handler{
		service: service,
		op:      op,
		route:   route,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/{operation} и PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	payload, err := handlers.DecodePayload(r)
	if err != nil {
		h.logger.Warn("%s - Invalid request body: booking_id=%s, error=%v", h.route, bookingID, err)
		handlers.RespondMalformed(w, msgInvalidRequestBody)
		return
	}

	caller := middleware.CallerID(r)

	booking, err := h.service.Apply(r.Context(), h.op, caller, bookingID, payload)
	if err != nil {
		switch {
		case handlers.RespondRejection(w, middleware.GetRequestID(r.Context()), err):
			h.logger.Warn("%s - Rejected: booking_id=%s, caller=%s, error=%v", h.route, bookingID, caller, err)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%s", h.route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrConcurrentUpdate):
			h.logger.Warn("%s - Concurrent update: booking_id=%s", h.route, bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("%s - Failed to apply %s: booking_id=%s, error=%v", h.route, h.op, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking updated successfully: booking_id=%s, status=%s", h.route, booking.ID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
