package list_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
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

// Handle GET /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r)

	result, err := h.service.List(r.Context(), caller, queryPayload(r.URL.Query()))
	if err != nil {
		if handlers.RespondRejection(w, middleware.GetRequestID(r.Context()), err) {
			h.logger.Warn("GET /bookings - Rejected: caller=%s, error=%v", caller, err)
			return
		}
		h.logger.Error("GET /bookings - Failed to list bookings: caller=%s, error=%v", caller, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d, total=%d", len(result.Bookings), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
