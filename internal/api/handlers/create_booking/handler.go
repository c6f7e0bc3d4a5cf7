package create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := handlers.DecodePayload(r)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondMalformed(w, msgInvalidRequestBody)
		return
	}

	caller := middleware.CallerID(r)

	booking, err := h.service.Create(r.Context(), caller, payload)
	if err != nil {
		if handlers.RespondRejection(w, middleware.GetRequestID(r.Context()), err) {
			h.logger.Warn("POST /bookings - Rejected: caller=%s, error=%v", caller, err)
			return
		}
		h.logger.Error("POST /bookings - Failed to create booking: caller=%s, error=%v", caller, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, caller=%s", booking.ID, caller)
	handlers.RespondJSON(w, http.StatusCreated, booking)
}
